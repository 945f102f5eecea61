// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	// Registration time.
	ErrDuplicateOption   = errors.New("duplicate option")
	ErrInvalidFlag       = errors.New("invalid flag")
	ErrDuplicateFlag     = errors.New("duplicate flag")
	ErrReadOnlyField     = errors.New("read-only field")
	ErrUnknownField      = errors.New("unknown field")
	ErrDefaultType       = errors.New("default value type mismatch")
	ErrTranslatorType    = errors.New("translator type mismatch")
	ErrAlreadyConfigured = errors.New("option already configured")

	// Parse time.
	ErrMissingRequiredOption = errors.New("missing required option")
	ErrMissingValue          = errors.New("missing flag value")
	ErrConversion            = errors.New("conversion failed")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrUnexpectedProcessing  = errors.New("unexpected processing error")
)

// DuplicateOptionError is returned by Set when an option is already bound to
// the same field.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("the option %s already exists", e.Name)
}

func (e *DuplicateOptionError) Is(target error) bool { return target == ErrDuplicateOption }

// InvalidFlagError is returned when an option is configured without any flag.
type InvalidFlagError struct {
	Name string
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("you must provide either a short and/or long flag for option %s", e.Name)
}

func (e *InvalidFlagError) Is(target error) bool { return target == ErrInvalidFlag }

// DuplicateFlagError is returned when a short or long flag is already used by
// another option in the same parser.
type DuplicateFlagError struct {
	Kind string // "short" or "long"
	Flag string
	Name string // option being configured
}

func (e *DuplicateFlagError) Error() string {
	return fmt.Sprintf("%s flag %s for option %s already exists", e.Kind, e.Flag, e.Name)
}

func (e *DuplicateFlagError) Is(target error) bool { return target == ErrDuplicateFlag }

// ReadOnlyFieldError is returned when the target field cannot be written,
// e.g. it is unexported or tagged `optbind:"-"`.
type ReadOnlyFieldError struct {
	Field string
}

func (e *ReadOnlyFieldError) Error() string {
	return fmt.Sprintf("field %s is read-only", e.Field)
}

func (e *ReadOnlyFieldError) Is(target error) bool { return target == ErrReadOnlyField }

// UnknownFieldError is returned when the target type has no field with the
// requested name.
type UnknownFieldError struct {
	Field string
	Type  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("type %s has no field %s", e.Type, e.Field)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// DefaultTypeError is returned when a default value cannot be stored in the
// option's field.
type DefaultTypeError struct {
	Name string
	Want reflect.Type
	Got  reflect.Type
}

func (e *DefaultTypeError) Error() string {
	return fmt.Sprintf("default value of type %s is not assignable to option %s of type %s", e.Got, e.Name, e.Want)
}

func (e *DefaultTypeError) Is(target error) bool { return target == ErrDefaultType }

// TranslatorTypeError is returned when a custom translator produces values
// that cannot be stored in the option's field.
type TranslatorTypeError struct {
	Name       string
	Translator string
	Want       reflect.Type
	Got        reflect.Type
}

func (e *TranslatorTypeError) Error() string {
	return fmt.Sprintf("translator %s produces %s, which is not assignable to option %s of type %s", e.Translator, e.Got, e.Name, e.Want)
}

func (e *TranslatorTypeError) Is(target error) bool { return target == ErrTranslatorType }

// MissingRequiredOptionError is recorded when a required option's flag does
// not appear in the arguments.
type MissingRequiredOptionError struct {
	Name string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("Required option %s is missing.", e.Name)
}

func (e *MissingRequiredOptionError) Is(target error) bool { return target == ErrMissingRequiredOption }

// MissingValueError is produced when a flag is the last argument and has no
// value to pair with.
type MissingValueError struct {
	Flag string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("flag %s has no value", e.Flag)
}

func (e *MissingValueError) Is(target error) bool { return target == ErrMissingValue }

// ConversionError is returned by translators when a raw string cannot be
// interpreted as the target type.
type ConversionError struct {
	Value string
	Type  reflect.Type
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %q to %s", e.Value, e.Type)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Type, e.Err)
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

func (e *ConversionError) Unwrap() error { return e.Err }

// UnexpectedProcessingError wraps any failure raised while resolving,
// translating or assigning a single option.
type UnexpectedProcessingError struct {
	Name string
	Err  error
}

func (e *UnexpectedProcessingError) Error() string {
	return fmt.Sprintf("Unexpected error occurred processing %s: %v", e.Name, e.Err)
}

func (e *UnexpectedProcessingError) Is(target error) bool { return target == ErrUnexpectedProcessing }

func (e *UnexpectedProcessingError) Unwrap() error { return e.Err }
