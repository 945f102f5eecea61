// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

// FormatInfo is what a Formatter receives when help is requested or errors
// occurred. Errors is empty for help output.
type FormatInfo struct {
	Options  []*Option
	Messages []string
	Errors   []string
}

// Formatter renders help and error output. Implementations live in the
// report package.
type Formatter interface {
	Format(info FormatInfo)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(info FormatInfo)

func (f FormatterFunc) Format(info FormatInfo) { f(info) }

// DiscardFormatter ignores everything it is given.
var DiscardFormatter Formatter = FormatterFunc(func(FormatInfo) {})
