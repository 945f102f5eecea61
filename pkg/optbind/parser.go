// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
)

// Parser binds command-line arguments to the fields of a T, which must be a
// struct type. Options are registered with Set and completed through the
// returned OptionSetup. Registration is not safe for concurrent use; once
// all options are configured, Parse and ParseInto may be called
// concurrently with distinct targets.
type Parser[T any] struct {
	typ     reflect.Type
	options []*Option

	messages  []string
	formatter Formatter
	logger    *slog.Logger

	missingValueFallback bool
}

type settings struct {
	messages             []string
	formatter            Formatter
	logger               *slog.Logger
	missingValueFallback bool
}

// ParserOption configures a Parser created by New.
type ParserOption func(*settings)

// WithMessages sets the messages passed to the formatter along with help
// and error output, typically a tool name and short usage line.
func WithMessages(msgs ...string) ParserOption {
	return func(s *settings) { s.messages = append(s.messages, msgs...) }
}

// WithFormatter sets the formatter invoked when help is requested or parse
// errors occurred. The default discards everything.
func WithFormatter(f Formatter) ParserOption {
	return func(s *settings) { s.formatter = f }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) ParserOption {
	return func(s *settings) { s.logger = l }
}

// WithMissingValueFallback makes an optional option whose flag is the last
// argument fall back to its default value instead of failing. Required
// options still fail.
func WithMissingValueFallback() ParserOption {
	return func(s *settings) { s.missingValueFallback = true }
}

// New returns a parser for T. It panics if T is not a struct type.
func New[T any](opts ...ParserOption) *Parser[T] {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("optbind: %s is not a struct type", typ))
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.formatter == nil {
		s.formatter = DiscardFormatter
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return &Parser[T]{
		typ:                  typ,
		messages:             s.messages,
		formatter:            s.formatter,
		logger:               s.logger,
		missingValueFallback: s.missingValueFallback,
	}
}

// Must returns p and panics if err is non-nil. It is meant to wrap the last
// AsOptional or AsRequired call of a statically known option set.
func Must[T any](p *Parser[T], err error) *Parser[T] {
	if err != nil {
		panic(err)
	}
	return p
}

// Set registers an option for the field called fieldName and returns the
// setup used to complete it.
func (p *Parser[T]) Set(fieldName string, opts ...SetOption) (*OptionSetup[T], error) {
	if p.lookup(fieldName) != nil {
		return nil, &DuplicateOptionError{Name: fieldName}
	}
	b, err := bindField(p.typ, fieldName)
	if err != nil {
		return nil, err
	}
	if !b.Writable {
		return nil, &ReadOnlyFieldError{Field: fieldName}
	}
	o := &Option{
		name:  b.Name,
		typ:   b.Type,
		index: b.Index,
	}
	for _, opt := range opts {
		opt(o)
	}
	p.options = append(p.options, o)
	p.logger.Debug("registered option", "option", o.name, "type", o.typ.String(), "help", o.help)
	return &OptionSetup[T]{parser: p, opt: o}, nil
}

// Options returns the registered options in registration order.
func (p *Parser[T]) Options() []*Option {
	return slices.Clone(p.options)
}

// Option returns the option registered under name, or nil.
func (p *Parser[T]) Option(name string) *Option {
	return p.lookup(name)
}

// Messages returns the messages configured with WithMessages.
func (p *Parser[T]) Messages() []string {
	return slices.Clone(p.messages)
}

func (p *Parser[T]) lookup(name string) *Option {
	for _, o := range p.options {
		if o.name == name {
			return o
		}
	}
	return nil
}

// Parse parses args into a new T.
func (p *Parser[T]) Parse(args []string) *ParseResult[T] {
	return p.ParseWith(args, new(T), p.formatter)
}

// ParseInto parses args into target. Fields without a matching argument or
// default keep their current value.
func (p *Parser[T]) ParseInto(args []string, target *T) *ParseResult[T] {
	return p.ParseWith(args, target, p.formatter)
}

// ParseWith is like ParseInto but reports help and errors to f instead of
// the parser's formatter.
func (p *Parser[T]) ParseWith(args []string, target *T, f Formatter) *ParseResult[T] {
	if f == nil {
		f = DiscardFormatter
	}
	if target == nil {
		target = new(T)
	}

	for _, o := range p.options {
		if !o.help || !o.configured {
			continue
		}
		if i := o.occurrence(args); i >= 0 {
			p.logger.Debug("help requested", "option", o.name, "flag", args[i])
			f.Format(p.formatInfo(nil))
			return &ParseResult[T]{Errors: []string{}, Problems: []error{}}
		}
	}

	r := &resolution{
		args:     args,
		target:   reflect.ValueOf(target).Elem(),
		fallback: p.missingValueFallback,
		logger:   p.logger,
	}
	var problems []error
	for _, o := range p.options {
		if !o.configured {
			p.logger.Warn("skipping unconfigured option", "option", o.name)
			continue
		}
		occ := o.occurrence(args)
		if occ < 0 && !o.optional {
			problems = append(problems, &MissingRequiredOptionError{Name: o.name})
			continue
		}
		if err := r.run(setterFor(r, o), o, occ); err != nil {
			problems = append(problems, &UnexpectedProcessingError{Name: o.name, Err: err})
		}
	}

	res := &ParseResult[T]{
		Options:  target,
		Errors:   make([]string, 0, len(problems)),
		Problems: make([]error, 0, len(problems)),
	}
	for _, err := range problems {
		res.Errors = append(res.Errors, err.Error())
		res.Problems = append(res.Problems, err)
	}
	if len(problems) > 0 {
		f.Format(p.formatInfo(res.Errors))
	}
	return res
}

func (p *Parser[T]) formatInfo(errs []string) FormatInfo {
	return FormatInfo{
		Options:  p.Options(),
		Messages: p.Messages(),
		Errors:   append([]string{}, errs...),
	}
}
