// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds small helpers for terminal output.
package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// Colorizer applies ANSI colors to text when enabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only if enabled is true,
// NO_COLOR is unset and TERM names a capable terminal.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	name := os.Getenv("TERM")
	if name == "" || name == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter is like NewColorizer but additionally requires w to be a
// terminal.
func ForWriter(w io.Writer, enabled bool) Colorizer {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return NewColorizer(enabled)
}

// Wrap renders text with the given attributes.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	if c.Enabled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
	return col.Sprint(text)
}

func (c Colorizer) Red(text string) string    { return c.Wrap(text, color.FgRed) }
func (c Colorizer) Green(text string) string  { return c.Wrap(text, color.FgGreen) }
func (c Colorizer) Yellow(text string) string { return c.Wrap(text, color.FgYellow) }
func (c Colorizer) Dim(text string) string    { return c.Wrap(text, color.FgHiBlack) }
func (c Colorizer) Bold(text string) string   { return c.Wrap(text, color.Bold) }
