// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yeetrun/optbind/pkg/optbind"
	"github.com/yeetrun/optbind/pkg/tui"
)

// Text renders a plain console layout: messages, then detected errors,
// then one row per option with its flags, description, optionality and
// default.
type Text struct {
	w     io.Writer
	color tui.Colorizer
}

// NewText returns a Text formatter writing to w. Colors are applied only
// when c is enabled.
func NewText(w io.Writer, c tui.Colorizer) *Text {
	return &Text{w: w, color: c}
}

func (t *Text) Format(info optbind.FormatInfo) {
	var buf bytes.Buffer
	buf.WriteString("\n")

	if len(info.Messages) > 0 {
		for _, m := range info.Messages {
			fmt.Fprintln(&buf, t.color.Bold(m))
		}
		buf.WriteString("\n")
	}

	if len(info.Errors) > 0 {
		fmt.Fprintln(&buf, t.color.Red("Error(s) has been detected:"))
		for _, e := range info.Errors {
			fmt.Fprintln(&buf, e)
		}
		buf.WriteString("\n")
	}

	flagWidth, descWidth := columnWidths(info.Options)
	for _, o := range info.Options {
		desc := o.Description()
		if strings.TrimSpace(desc) == "" {
			desc = noDescription
		}
		presence := "Optional"
		if !o.IsOptional() {
			presence = "Required"
		}
		def := formatValue(o.DefaultValue())
		if def == "" {
			def = t.color.Dim(noDefault)
		}
		fmt.Fprintf(&buf, "%s%s%-13s%s\n", pad(flagColumn(o), flagWidth), pad(desc, descWidth), presence, def)
	}

	t.w.Write(buf.Bytes())
}

// columnWidths returns the flag and description column widths: the longest
// single flag or description plus five.
func columnWidths(opts []*optbind.Option) (flags, desc int) {
	for _, o := range opts {
		flags = max(flags, len(o.ShortFlag()), len(o.LongFlag()))
		d := o.Description()
		if strings.TrimSpace(d) == "" {
			d = noDescription
		}
		desc = max(desc, len(d))
	}
	return flags + 5, desc + 5
}

// pad left-aligns s in a column of width n, keeping at least one space
// after it.
func pad(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
