// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"reflect"
	"strings"
)

// tagName is the struct tag consulted when binding option names to fields.
const tagName = "optbind"

type fieldBinding struct {
	Name     string
	Type     reflect.Type
	Index    []int
	Writable bool
}

// bindField resolves name to a field of the struct type t. A field matches
// when its `optbind` tag equals name, or when it has no tag and its Go name
// equals name. Fields tagged `optbind:"-"` are reported as read-only.
func bindField(t reflect.Type, name string) (fieldBinding, error) {
	var hidden *reflect.StructField
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			continue
		}
		tag, hasTag := f.Tag.Lookup(tagName)
		tag, _, _ = strings.Cut(tag, ",")
		key := f.Name
		if hasTag && tag != "" && tag != "-" {
			key = tag
		}
		if key != name {
			continue
		}
		if tag == "-" {
			hidden = &f
			continue
		}
		return fieldBinding{
			Name:     name,
			Type:     f.Type,
			Index:    f.Index,
			Writable: f.IsExported() && settablePath(t, f.Index),
		}, nil
	}
	if hidden != nil {
		return fieldBinding{Name: name, Type: hidden.Type, Index: hidden.Index}, nil
	}
	return fieldBinding{}, &UnknownFieldError{Field: name, Type: t.String()}
}

// settablePath reports whether every hop along index can be written through
// without crossing an unexported embedded pointer.
func settablePath(t reflect.Type, index []int) bool {
	for i, x := range index {
		f := t.Field(x)
		if i < len(index)-1 && f.Type.Kind() == reflect.Pointer && !f.IsExported() {
			return false
		}
		t = f.Type
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	return true
}

// fieldFor returns the addressable field at index within v, allocating nil
// embedded struct pointers along the way. ok is false when the field cannot
// be set.
func fieldFor(v reflect.Value, index []int) (f reflect.Value, ok bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}
