// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"encoding"
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// Translator converts a raw argument string into a value of type V.
// Implementations must be deterministic and free of side effects.
type Translator[V any] interface {
	Translate(value string) (V, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc[V any] func(value string) (V, error)

func (f TranslatorFunc[V]) Translate(value string) (V, error) { return f(value) }

const defaultTranslatorName = "default"

var (
	durationType        = reflect.TypeFor[time.Duration]()
	urlType             = reflect.TypeFor[url.URL]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// DefaultTranslator converts strings into scalar Go types: strings, bools,
// integers, floats, time.Duration, url.URL, types implementing
// encoding.TextUnmarshaler, named types over those and pointers to any of
// them. Slices, maps and structs need a custom translator.
type DefaultTranslator struct{}

// Translate converts value into a value of type typ.
func (DefaultTranslator) Translate(value string, typ reflect.Type) (any, error) {
	v := reflect.New(typ).Elem()
	if err := setValue(v, value); err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &ConversionError{Value: value, Type: typ, Err: err}
	}
	return v.Interface(), nil
}

// setValue parses value into v, which must be settable.
func setValue(v reflect.Value, value string) error {
	typ := v.Type()
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
	}
	if typ == urlType {
		u, err := url.Parse(value)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(*u))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return numError(err)
		}
		v.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if typ == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return numError(err)
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return numError(err)
		}
		v.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return numError(err)
		}
		v.SetFloat(f)
		return nil

	case reflect.Pointer:
		elem := reflect.New(typ.Elem())
		if err := setValue(elem.Elem(), value); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	}

	return &ConversionError{Value: value, Type: typ, Err: ErrUnsupportedType}
}

// numError drops the function name and input that strconv adds to its
// errors; ConversionError already carries the input.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

// defaultTranslate returns the type-erased conversion used for options of
// type typ when no custom translator is configured.
func defaultTranslate(typ reflect.Type) func(string) (any, error) {
	return func(value string) (any, error) {
		return DefaultTranslator{}.Translate(value, typ)
	}
}

// translatorSupports reports whether DefaultTranslator can convert into typ.
func translatorSupports(typ reflect.Type) bool {
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) || typ == urlType {
		return true
	}
	switch typ.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Pointer:
		return translatorSupports(typ.Elem())
	}
	return false
}

// erase wraps a typed translator in the type-erased form stored on an
// Option. Results that are not already conversion errors are wrapped so the
// failing input and target type are preserved.
func erase[V any](tr Translator[V], typ reflect.Type) func(string) (any, error) {
	return func(value string) (any, error) {
		v, err := tr.Translate(value)
		if err != nil {
			var ce *ConversionError
			if errors.As(err, &ce) {
				return nil, err
			}
			return nil, &ConversionError{Value: value, Type: typ, Err: err}
		}
		return v, nil
	}
}

func translatorName(tr any) string {
	t := reflect.TypeOf(tr)
	if t == nil {
		return defaultTranslatorName
	}
	return t.String()
}
