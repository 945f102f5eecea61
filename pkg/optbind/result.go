// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import "errors"

// ParseResult is the outcome of a single parse call.
type ParseResult[T any] struct {
	// Options is the populated target. It is nil when help was requested.
	Options *T
	// Errors holds one message per problem, in option order.
	Errors []string
	// Problems holds the errors behind Errors.
	Problems []error
}

// HasOptions reports whether the result carries a target.
func (r *ParseResult[T]) HasOptions() bool { return r.Options != nil }

// HasErrors reports whether any option failed.
func (r *ParseResult[T]) HasErrors() bool { return len(r.Errors) > 0 }

// HelpRequested reports whether parsing stopped at a help option.
func (r *ParseResult[T]) HelpRequested() bool { return r.Options == nil && len(r.Errors) == 0 }

// Err returns all problems joined, or nil.
func (r *ParseResult[T]) Err() error { return errors.Join(r.Problems...) }
