// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"reflect"
	"strings"
)

// Option describes a single registered option. It is created by
// Parser.Set, completed by OptionSetup.AsOptional or OptionSetup.AsRequired
// and is read-only afterwards.
type Option struct {
	name        string
	typ         reflect.Type
	index       []int
	description string
	optional    bool
	short       string
	long        string
	def         any
	help        bool
	configured  bool

	translatorName string
	translate      func(string) (any, error)
}

// Name returns the name of the field the option is bound to.
func (o *Option) Name() string { return o.name }

// Type returns the static type of the bound field.
func (o *Option) Type() reflect.Type { return o.typ }

func (o *Option) Description() string { return o.description }

func (o *Option) IsOptional() bool { return o.optional }

func (o *Option) ShortFlag() string { return o.short }

func (o *Option) LongFlag() string { return o.long }

// DefaultValue returns the default value converted to the field type, or nil
// when none was configured.
func (o *Option) DefaultValue() any { return o.def }

// IsHelp reports whether the option requests help output when present.
func (o *Option) IsHelp() bool { return o.help }

// TranslatorName identifies the translator used for the option: "default"
// for the built-in conversions, otherwise the custom translator's type name.
func (o *Option) TranslatorName() string { return o.translatorName }

// IsConfigured reports whether AsOptional or AsRequired completed
// successfully for the option.
func (o *Option) IsConfigured() bool { return o.configured }

// Flags returns the non-blank flag spellings of the option, short first.
func (o *Option) Flags() []string {
	var flags []string
	if !isBlank(o.short) {
		flags = append(flags, o.short)
	}
	if !isBlank(o.long) {
		flags = append(flags, o.long)
	}
	return flags
}

// matches reports whether arg is one of the option's flags.
func (o *Option) matches(arg string) bool {
	return (!isBlank(o.short) && arg == o.short) || (!isBlank(o.long) && arg == o.long)
}

// occurrence returns the index of the first argument that matches one of the
// option's flags, or -1.
func (o *Option) occurrence(args []string) int {
	for i, arg := range args {
		if o.matches(arg) {
			return i
		}
	}
	return -1
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
