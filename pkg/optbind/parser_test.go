// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optbind

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type toolOptions struct {
	Path    string
	Loggers []string
	Help    bool
}

func splitComma(value string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// newToolParser builds the catalog used throughout these tests: an optional
// path with a default, required loggers split on commas and a help option.
func newToolParser(t *testing.T, opts ...ParserOption) *Parser[toolOptions] {
	t.Helper()
	p := New[toolOptions](opts...)
	s, err := p.Set("Path")
	if err != nil {
		t.Fatalf("Set(Path) error = %v", err)
	}
	if _, err := s.AsOptional("Output directory", "-p", "--path", Default("/tmp")); err != nil {
		t.Fatalf("AsOptional(Path) error = %v", err)
	}
	s, err = p.Set("Loggers")
	if err != nil {
		t.Fatalf("Set(Loggers) error = %v", err)
	}
	if _, err := s.AsRequired("Loggers to enable", "-l", "--loggers", TranslateFunc(splitComma)); err != nil {
		t.Fatalf("AsRequired(Loggers) error = %v", err)
	}
	s, err = p.Set("Help", AsHelp())
	if err != nil {
		t.Fatalf("Set(Help) error = %v", err)
	}
	if _, err := s.AsOptional("Show help", "-?", "--help"); err != nil {
		t.Fatalf("AsOptional(Help) error = %v", err)
	}
	return p
}

func TestParse_ToolScenario(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       toolOptions
		wantErrors []string
	}{
		{
			name: "default path with loggers",
			args: []string{"-l", "Console,File"},
			want: toolOptions{Path: "/tmp", Loggers: []string{"Console", "File"}},
		},
		{
			name: "long flags",
			args: []string{"--loggers", "Console", "--path", "/var"},
			want: toolOptions{Path: "/var", Loggers: []string{"Console"}},
		},
		{
			name:       "missing required loggers",
			args:       []string{"--path", "/var"},
			want:       toolOptions{Path: "/var"},
			wantErrors: []string{"Required option Loggers is missing."},
		},
		{
			name:       "no arguments",
			args:       nil,
			want:       toolOptions{Path: "/tmp"},
			wantErrors: []string{"Required option Loggers is missing."},
		},
		{
			name: "first occurrence wins",
			args: []string{"-p", "/a", "-l", "x", "--path", "/b"},
			want: toolOptions{Path: "/a", Loggers: []string{"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newToolParser(t)
			res := p.Parse(tt.args)
			if !res.HasOptions() {
				t.Fatalf("HasOptions() = false, want true")
			}
			if diff := cmp.Diff(tt.want, *res.Options); diff != "" {
				t.Fatalf("Options mismatch (-want +got):\n%s", diff)
			}
			wantErrors := tt.wantErrors
			if wantErrors == nil {
				wantErrors = []string{}
			}
			if diff := cmp.Diff(wantErrors, res.Errors); diff != "" {
				t.Fatalf("Errors mismatch (-want +got):\n%s", diff)
			}
			if got, want := res.HasErrors(), len(tt.wantErrors) > 0; got != want {
				t.Fatalf("HasErrors() = %v, want %v", got, want)
			}
		})
	}
}

func TestParse_MissingRequiredLeavesZeroValue(t *testing.T) {
	p := newToolParser(t)
	res := p.Parse([]string{"-p", "/var"})
	if res.Options.Loggers != nil {
		t.Fatalf("Loggers = %q, want nil", res.Options.Loggers)
	}
	if !errors.Is(res.Err(), ErrMissingRequiredOption) {
		t.Fatalf("Err() = %v, want ErrMissingRequiredOption", res.Err())
	}
	var missing *MissingRequiredOptionError
	if !errors.As(res.Problems[0], &missing) || missing.Name != "Loggers" {
		t.Fatalf("Problems[0] = %#v, want MissingRequiredOptionError for Loggers", res.Problems[0])
	}
}

func TestParse_HelpShortCircuits(t *testing.T) {
	for _, args := range [][]string{
		{"-?"},
		{"--help"},
		{"-p", "/var", "--help"},
		{"-l", "bad", "-?", "-p"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var got []FormatInfo
			p := newToolParser(t, WithMessages("My Console Tool"), WithFormatter(FormatterFunc(func(fi FormatInfo) {
				got = append(got, fi)
			})))
			res := p.Parse(args)
			if res.HasOptions() {
				t.Fatalf("HasOptions() = true, want false")
			}
			if res.HasErrors() {
				t.Fatalf("Errors = %q, want none", res.Errors)
			}
			if !res.HelpRequested() {
				t.Fatalf("HelpRequested() = false, want true")
			}
			if len(got) != 1 {
				t.Fatalf("formatter called %d times, want 1", len(got))
			}
			if len(got[0].Options) != 3 || len(got[0].Errors) != 0 {
				t.Fatalf("FormatInfo = %d options, %d errors; want 3, 0", len(got[0].Options), len(got[0].Errors))
			}
			if diff := cmp.Diff([]string{"My Console Tool"}, got[0].Messages); diff != "" {
				t.Fatalf("Messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_FormatterCalledOnErrorsOnly(t *testing.T) {
	calls := 0
	var info FormatInfo
	p := newToolParser(t, WithFormatter(FormatterFunc(func(fi FormatInfo) {
		calls++
		info = fi
	})))

	p.Parse([]string{"-l", "a"})
	if calls != 0 {
		t.Fatalf("formatter called %d times on success, want 0", calls)
	}

	p.Parse(nil)
	if calls != 1 {
		t.Fatalf("formatter called %d times on failure, want 1", calls)
	}
	if diff := cmp.Diff([]string{"Required option Loggers is missing."}, info.Errors); diff != "" {
		t.Fatalf("Errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PartialFailureIsolation(t *testing.T) {
	type opts struct {
		Count int
		Name  string
		Tags  []string
	}
	p := New[opts]()
	s, _ := p.Set("Count")
	Must(s.AsRequired("count", "-c", "", TranslateFunc(func(string) (int, error) {
		return 0, errors.New("boom")
	})))
	s, _ = p.Set("Name")
	Must(s.AsOptional("name", "-n", "--name"))
	s, _ = p.Set("Tags")
	Must(s.AsOptional("tags", "-t", "", TranslateFunc(func(string) ([]string, error) {
		panic("translator exploded")
	})))

	res := p.Parse([]string{"-c", "1", "-n", "bob", "-t", "x"})
	if got := res.Options.Name; got != "bob" {
		t.Fatalf("Name = %q, want %q", got, "bob")
	}
	want := []string{
		`Unexpected error occurred processing Count: cannot convert "1" to int: boom`,
		"Unexpected error occurred processing Tags: panic: translator exploded",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("Errors mismatch (-want +got):\n%s", diff)
	}
	for _, err := range res.Problems {
		if !errors.Is(err, ErrUnexpectedProcessing) {
			t.Fatalf("problem %v is not ErrUnexpectedProcessing", err)
		}
	}
	if !errors.Is(res.Problems[0], ErrConversion) {
		t.Fatalf("Problems[0] = %v, want to wrap ErrConversion", res.Problems[0])
	}
}

func TestParse_DefaultTranslatorFailure(t *testing.T) {
	type opts struct {
		Retries int
		Path    string
	}
	p := New[opts]()
	s, _ := p.Set("Retries")
	Must(s.AsOptional("retries", "-r", "--retries", Default(3)))
	s, _ = p.Set("Path")
	Must(s.AsOptional("path", "-p", "", Default("/tmp")))

	res := p.Parse([]string{"-r", "many", "-p", "/var"})
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %q, want exactly one", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0], "Unexpected error occurred processing Retries: ") {
		t.Fatalf("Errors[0] = %q, want Retries processing error", res.Errors[0])
	}
	if res.Options.Retries != 0 {
		t.Fatalf("Retries = %d, want untouched zero value", res.Options.Retries)
	}
	if res.Options.Path != "/var" {
		t.Fatalf("Path = %q, want %q", res.Options.Path, "/var")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	type opts struct {
		Name    string
		Count   int
		Ratio   float64
		Verbose bool
		Wait    time.Duration
		Limit   *uint16
		Tags    []string
	}
	p := New[opts]()
	for _, reg := range []struct {
		field, short, long string
		optional           bool
		cfg                []ConfigOption
	}{
		{"Name", "-n", "--name", false, nil},
		{"Count", "-c", "--count", true, []ConfigOption{Default(1)}},
		{"Ratio", "", "--ratio", true, nil},
		{"Verbose", "-v", "", false, nil},
		{"Wait", "-w", "--wait", true, []ConfigOption{Default(time.Second)}},
		{"Limit", "", "--limit", true, nil},
		{"Tags", "-t", "--tags", false, []ConfigOption{TranslateFunc(splitComma)}},
	} {
		s, err := p.Set(reg.field)
		if err != nil {
			t.Fatalf("Set(%s) error = %v", reg.field, err)
		}
		if reg.optional {
			_, err = s.AsOptional(reg.field, reg.short, reg.long, reg.cfg...)
		} else {
			_, err = s.AsRequired(reg.field, reg.short, reg.long, reg.cfg...)
		}
		if err != nil {
			t.Fatalf("configure %s error = %v", reg.field, err)
		}
	}

	args := []string{
		"--name", "svc",
		"-c", "42",
		"--ratio", "0.5",
		"-v", "true",
		"--wait", "1m30s",
		"--limit", "8080",
		"--tags", "a,b,,c",
	}
	res := p.Parse(args)
	if res.HasErrors() {
		t.Fatalf("Errors = %q, want none", res.Errors)
	}
	limit := uint16(8080)
	want := opts{
		Name:    "svc",
		Count:   42,
		Ratio:   0.5,
		Verbose: true,
		Wait:    90 * time.Second,
		Limit:   &limit,
		Tags:    []string{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, *res.Options); diff != "" {
		t.Fatalf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TrailingFlag(t *testing.T) {
	t.Run("optional errors by default", func(t *testing.T) {
		p := newToolParser(t)
		res := p.Parse([]string{"-l", "a", "--path"})
		if len(res.Problems) != 1 || !errors.Is(res.Problems[0], ErrMissingValue) {
			t.Fatalf("Problems = %v, want one ErrMissingValue", res.Problems)
		}
		if res.Errors[0] != "Unexpected error occurred processing Path: flag --path has no value" {
			t.Fatalf("Errors[0] = %q", res.Errors[0])
		}
		if res.Options.Path != "" {
			t.Fatalf("Path = %q, want untouched", res.Options.Path)
		}
	})
	t.Run("optional falls back to default", func(t *testing.T) {
		p := newToolParser(t, WithMissingValueFallback())
		res := p.Parse([]string{"-l", "a", "--path"})
		if res.HasErrors() {
			t.Fatalf("Errors = %q, want none", res.Errors)
		}
		if res.Options.Path != "/tmp" {
			t.Fatalf("Path = %q, want %q", res.Options.Path, "/tmp")
		}
	})
	t.Run("required always errors", func(t *testing.T) {
		p := newToolParser(t, WithMissingValueFallback())
		res := p.Parse([]string{"-l"})
		if len(res.Problems) != 1 || !errors.Is(res.Problems[0], ErrMissingValue) {
			t.Fatalf("Problems = %v, want one ErrMissingValue", res.Problems)
		}
	})
}

func TestParse_NilTranslationUsesDefault(t *testing.T) {
	type opts struct {
		Mode string
		Name string
	}
	blankIsNil := func(v string) (any, error) {
		if v == "" {
			return nil, nil
		}
		return v, nil
	}
	p := New[opts]()
	s, _ := p.Set("Mode")
	Must(s.AsOptional("mode", "-m", "", Default("fast"), TranslateFunc(blankIsNil)))
	s, _ = p.Set("Name")
	Must(s.AsOptional("name", "-n", "", TranslateFunc(blankIsNil)))

	target := &opts{Name: "keep"}
	res := p.ParseInto([]string{"-m", "", "-n", ""}, target)
	if res.HasErrors() {
		t.Fatalf("Errors = %q, want none", res.Errors)
	}
	if diff := cmp.Diff(opts{Mode: "fast", Name: "keep"}, *target); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}

	res = p.ParseInto([]string{"-m", "slow"}, target)
	if res.HasErrors() || target.Mode != "slow" {
		t.Fatalf("Mode = %q, errors %q; want %q", target.Mode, res.Errors, "slow")
	}
}

func TestParseInto_KeepsExistingValues(t *testing.T) {
	type opts struct {
		Name  string
		Level string
	}
	p := New[opts]()
	s, _ := p.Set("Name")
	Must(s.AsOptional("name", "-n", ""))
	s, _ = p.Set("Level")
	Must(s.AsOptional("level", "-L", ""))

	target := &opts{Name: "keep", Level: "info"}
	res := p.ParseInto([]string{"-L", "debug"}, target)
	if res.Options != target {
		t.Fatalf("Options = %p, want target %p", res.Options, target)
	}
	if diff := cmp.Diff(opts{Name: "keep", Level: "debug"}, *target); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ErrorsAreCallLocal(t *testing.T) {
	p := newToolParser(t)
	if res := p.Parse(nil); len(res.Errors) != 1 {
		t.Fatalf("first Parse Errors = %q, want one", res.Errors)
	}
	if res := p.Parse([]string{"-l", "x"}); res.HasErrors() {
		t.Fatalf("second Parse Errors = %q, want none", res.Errors)
	}
}

func TestParse_SkipsUnconfiguredOption(t *testing.T) {
	type opts struct {
		A string
		B string
	}
	p := New[opts]()
	if _, err := p.Set("A"); err != nil {
		t.Fatal(err)
	}
	s, _ := p.Set("B")
	Must(s.AsRequired("b", "-b", ""))

	res := p.Parse([]string{"-b", "x"})
	if res.HasErrors() {
		t.Fatalf("Errors = %q, want none", res.Errors)
	}
	if res.Options.B != "x" {
		t.Fatalf("B = %q, want %q", res.Options.B, "x")
	}
}

func TestParse_EmbeddedPointerField(t *testing.T) {
	type Common struct {
		Verbose bool
	}
	type opts struct {
		*Common
		Name string
	}
	p := New[opts]()
	s, err := p.Set("Verbose")
	if err != nil {
		t.Fatalf("Set(Verbose) error = %v", err)
	}
	Must(s.AsOptional("verbose", "-v", ""))

	res := p.Parse([]string{"-v", "true"})
	if res.HasErrors() {
		t.Fatalf("Errors = %q", res.Errors)
	}
	if res.Options.Common == nil || !res.Options.Verbose {
		t.Fatalf("Common = %+v, want Verbose set", res.Options.Common)
	}
}

func TestParseWith_NilFormatter(t *testing.T) {
	p := newToolParser(t)
	res := p.ParseWith([]string{"--help"}, nil, nil)
	if !res.HelpRequested() {
		t.Fatalf("HelpRequested() = false, want true")
	}
}

func TestNew_PanicsOnNonStruct(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New[int]() did not panic")
		}
	}()
	New[int]()
}
