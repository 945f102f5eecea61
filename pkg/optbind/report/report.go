// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders optbind help and error output.
package report

import (
	"fmt"
	"strings"

	"github.com/yeetrun/optbind/pkg/optbind"
)

const (
	noDescription = "[No description]"
	noDefault     = "[No default]"
)

// Multi returns a formatter that calls each of fs in order.
func Multi(fs ...optbind.Formatter) optbind.Formatter {
	return optbind.FormatterFunc(func(info optbind.FormatInfo) {
		for _, f := range fs {
			if f != nil {
				f.Format(info)
			}
		}
	})
}

// flagColumn returns the flags of o as shown in help output.
func flagColumn(o *optbind.Option) string {
	return strings.Join(o.Flags(), "|")
}

// formatValue renders a default value. It returns "" for nil.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ",")
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
