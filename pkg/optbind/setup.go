// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"fmt"
	"reflect"
)

// SetOption modifies an option as it is registered with Parser.Set.
type SetOption func(*Option)

// AsHelp marks the option as a help option. When one of its flags appears
// in the arguments, parsing stops and the formatter is asked to render help.
func AsHelp() SetOption {
	return func(o *Option) { o.help = true }
}

// OptionSetup completes a registered option. It is returned by Parser.Set
// and may be used once.
type OptionSetup[T any] struct {
	parser *Parser[T]
	opt    *Option
}

// Option returns the descriptor being configured.
func (s *OptionSetup[T]) Option() *Option { return s.opt }

// configState collects ConfigOptions before they are validated against the
// option's field type.
type configState struct {
	def    any
	hasDef bool

	// Set by Translate and TranslateFunc.
	trName string
	trOut  reflect.Type
	bindTr func(field reflect.Type) func(string) (any, error)
}

// ConfigOption modifies how an option is configured by AsOptional or
// AsRequired.
type ConfigOption func(*configState)

// Default sets the option's default value. For optional options the default
// is used when the flag is absent. Required options record it for help
// output only.
func Default(v any) ConfigOption {
	return func(c *configState) {
		c.def = v
		c.hasDef = v != nil
	}
}

// Translate configures a custom translator for the option. Values of type V
// must be assignable to the option's field.
func Translate[V any](tr Translator[V]) ConfigOption {
	return func(c *configState) {
		c.trName = translatorName(tr)
		c.trOut = reflect.TypeFor[V]()
		c.bindTr = func(field reflect.Type) func(string) (any, error) {
			return erase(tr, field)
		}
	}
}

// TranslateFunc is like Translate but takes a plain function.
func TranslateFunc[V any](fn func(value string) (V, error)) ConfigOption {
	return Translate[V](TranslatorFunc[V](fn))
}

// AsOptional completes the option as optional and returns the parser so more
// options can be registered.
func (s *OptionSetup[T]) AsOptional(description, shortFlag, longFlag string, opts ...ConfigOption) (*Parser[T], error) {
	return s.configure(true, description, shortFlag, longFlag, opts)
}

// AsRequired completes the option as required and returns the parser so more
// options can be registered.
func (s *OptionSetup[T]) AsRequired(description, shortFlag, longFlag string, opts ...ConfigOption) (*Parser[T], error) {
	return s.configure(false, description, shortFlag, longFlag, opts)
}

func (s *OptionSetup[T]) configure(optional bool, description, shortFlag, longFlag string, opts []ConfigOption) (*Parser[T], error) {
	o := s.opt
	if o.configured {
		return s.parser, fmt.Errorf("option %s: %w", o.name, ErrAlreadyConfigured)
	}
	if isBlank(shortFlag) && isBlank(longFlag) {
		return s.parser, &InvalidFlagError{Name: o.name}
	}
	if isBlank(shortFlag) {
		shortFlag = ""
	}
	if isBlank(longFlag) {
		longFlag = ""
	}
	for _, other := range s.parser.options {
		if shortFlag != "" && other.short == shortFlag {
			return s.parser, &DuplicateFlagError{Kind: "short", Flag: shortFlag, Name: o.name}
		}
		if longFlag != "" && other.long == longFlag {
			return s.parser, &DuplicateFlagError{Kind: "long", Flag: longFlag, Name: o.name}
		}
	}

	var c configState
	for _, opt := range opts {
		opt(&c)
	}

	var def any
	if c.hasDef {
		v, err := convertDefault(c.def, o.typ)
		if err != nil {
			return s.parser, &DefaultTypeError{Name: o.name, Want: o.typ, Got: reflect.TypeOf(c.def)}
		}
		def = v
	}

	translate := defaultTranslate(o.typ)
	trName := defaultTranslatorName
	if c.bindTr != nil {
		if c.trOut.Kind() != reflect.Interface && !c.trOut.AssignableTo(o.typ) {
			return s.parser, &TranslatorTypeError{Name: o.name, Translator: c.trName, Want: o.typ, Got: c.trOut}
		}
		translate = c.bindTr(o.typ)
		trName = c.trName
	} else if !translatorSupports(o.typ) {
		s.parser.logger.Warn("option type has no default translation", "option", o.name, "type", o.typ.String())
	}

	o.description = description
	o.optional = optional
	o.short = shortFlag
	o.long = longFlag
	o.def = def
	o.translate = translate
	o.translatorName = trName
	o.configured = true

	s.parser.logger.Debug("configured option",
		"option", o.name,
		"optional", optional,
		"short", shortFlag,
		"long", longFlag,
		"translator", trName,
	)
	return s.parser, nil
}

// convertDefault returns v as a value of type typ. Values are accepted when
// assignable, or convertible without changing their kind (numeric kinds may
// convert between each other as long as the value fits).
func convertDefault(v any, typ reflect.Type) (any, error) {
	rv := reflect.ValueOf(v)
	out := reflect.New(typ).Elem()
	if rv.Type().AssignableTo(typ) {
		out.Set(rv)
		return out.Interface(), nil
	}
	if !rv.Type().ConvertibleTo(typ) {
		return nil, ErrDefaultType
	}
	from, to := rv.Kind(), typ.Kind()
	switch {
	case from == to && !isNumeric(from):
	case isNumeric(from) && isNumeric(to):
		if overflows(rv, typ) {
			return nil, ErrDefaultType
		}
	default:
		return nil, ErrDefaultType
	}
	out.Set(rv.Convert(typ))
	return out.Interface(), nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// overflows reports whether converting the numeric value rv to typ loses
// its integral value.
func overflows(rv reflect.Value, typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.CanInt() && rv.Int() < 0 || rv.CanFloat() && rv.Float() < 0 {
			return true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.CanUint() && rv.Convert(typ).Int() < 0 {
			return true
		}
	}
	conv := rv.Convert(typ).Convert(rv.Type())
	return !conv.Equal(rv)
}
