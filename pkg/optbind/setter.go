// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"fmt"
	"log/slog"
	"reflect"
)

// resolution holds the state of a single parse call.
type resolution struct {
	args     []string
	target   reflect.Value
	fallback bool
	logger   *slog.Logger
}

// setter resolves one option against the arguments and writes the result
// into the target. occurrence is the index of the option's flag in args, or
// -1 when absent.
type setter interface {
	set(o *Option, occurrence int) error
}

func setterFor(r *resolution, o *Option) setter {
	if o.optional {
		return optionalSetter{r}
	}
	return requiredSetter{r}
}

// run calls s.set, turning a panic raised by a translator into an error.
func (r *resolution) run(s setter, o *Option, occurrence int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return s.set(o, occurrence)
}

// lookupValue returns the argument following the flag at occurrence.
func (r *resolution) lookupValue(occurrence int) (string, bool) {
	if occurrence+1 >= len(r.args) {
		return "", false
	}
	return r.args[occurrence+1], true
}

func (r *resolution) assign(o *Option, v any) error {
	field, ok := fieldFor(r.target, o.index)
	if !ok {
		r.logger.Debug("no writable field", "option", o.name)
		return nil
	}
	if v == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("cannot assign %s to field of type %s", rv.Type(), field.Type())
	}
	field.Set(rv)
	return nil
}

type optionalSetter struct{ r *resolution }

func (s optionalSetter) set(o *Option, occurrence int) error {
	r := s.r
	value, source := o.def, "default"
	if occurrence >= 0 {
		raw, ok := r.lookupValue(occurrence)
		switch {
		case ok:
			v, err := o.translate(raw)
			if err != nil {
				return err
			}
			if v != nil {
				value, source = v, "argument"
			}
		case !r.fallback:
			return &MissingValueError{Flag: r.args[occurrence]}
		}
	}
	if value == nil {
		r.logger.Debug("resolved option", "option", o.name, "source", "none")
		return nil
	}
	r.logger.Debug("resolved option", "option", o.name, "flag", flagAt(r.args, occurrence), "source", source)
	return r.assign(o, value)
}

type requiredSetter struct{ r *resolution }

func (s requiredSetter) set(o *Option, occurrence int) error {
	r := s.r
	raw, ok := r.lookupValue(occurrence)
	if !ok {
		return &MissingValueError{Flag: r.args[occurrence]}
	}
	v, err := o.translate(raw)
	if err != nil {
		return err
	}
	r.logger.Debug("resolved option", "option", o.name, "flag", r.args[occurrence], "source", "argument")
	return r.assign(o, v)
}

func flagAt(args []string, i int) string {
	if i < 0 {
		return ""
	}
	return args[i]
}
