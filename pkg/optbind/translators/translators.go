// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translators provides optbind translators for values that the
// default conversions do not cover.
//
// Each constructor returns a value usable with optbind.Translate:
//
//	s.AsRequired("Loggers to enable", "-l", "--loggers",
//		optbind.Translate(translators.Split(",")))
package translators

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/huandu/xstrings"
	"github.com/yeetrun/optbind/pkg/cronutil"
)

// SplitTranslator splits a value on Sep, dropping empty entries.
type SplitTranslator struct {
	Sep  string
	Trim bool
}

// Split returns a translator that splits on sep, e.g. "Console,File" into
// ["Console" "File"].
func Split(sep string) SplitTranslator { return SplitTranslator{Sep: sep} }

// SplitTrim is like Split but also trims whitespace around each entry.
func SplitTrim(sep string) SplitTranslator { return SplitTranslator{Sep: sep, Trim: true} }

func (t SplitTranslator) Translate(value string) ([]string, error) {
	parts := strings.Split(value, t.Sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t.Trim {
			p = strings.TrimSpace(p)
		}
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// EnumTranslator accepts one of a fixed set of values and returns its
// canonical spelling. Matching ignores case and word separators, so
// "DryRun", "dry_run" and "DRY-RUN" all match "dry-run".
type EnumTranslator struct {
	Allowed []string
}

func Enum(allowed ...string) EnumTranslator { return EnumTranslator{Allowed: allowed} }

func (t EnumTranslator) Translate(value string) (string, error) {
	key := xstrings.ToKebabCase(value)
	for _, a := range t.Allowed {
		if strings.EqualFold(a, value) || xstrings.ToKebabCase(a) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("must be one of %s", strings.Join(t.Allowed, ", "))
}

// RangeTranslator parses a base 10 integer within [Min, Max].
type RangeTranslator struct {
	Min, Max int
}

func IntRange(min, max int) RangeTranslator { return RangeTranslator{Min: min, Max: max} }

func (t RangeTranslator) Translate(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	if n < t.Min || n > t.Max {
		return 0, fmt.Errorf("must be between %d and %d, got %d", t.Min, t.Max, n)
	}
	return n, nil
}

// VersionTranslator parses semantic versions.
type VersionTranslator struct{}

func Semver() VersionTranslator { return VersionTranslator{} }

func (VersionTranslator) Translate(value string) (*semver.Version, error) {
	return semver.NewVersion(value)
}

// ConstraintTranslator parses semantic version constraints such as
// ">= 1.2, < 2".
type ConstraintTranslator struct{}

func Constraint() ConstraintTranslator { return ConstraintTranslator{} }

func (ConstraintTranslator) Translate(value string) (*semver.Constraints, error) {
	return semver.NewConstraint(value)
}

type UUIDTranslator struct{}

func UUID() UUIDTranslator { return UUIDTranslator{} }

func (UUIDTranslator) Translate(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}

// ScheduleTranslator parses five-field cron expressions.
type ScheduleTranslator struct{}

func Schedule() ScheduleTranslator { return ScheduleTranslator{} }

func (ScheduleTranslator) Translate(value string) (cronutil.Schedule, error) {
	return cronutil.Parse(value)
}

// KeyValueTranslator parses "k=v" pairs separated by Sep into a map.
type KeyValueTranslator struct {
	Sep string
}

func KeyValue(sep string) KeyValueTranslator { return KeyValueTranslator{Sep: sep} }

var errEmptyKey = errors.New("empty key")

func (t KeyValueTranslator) Translate(value string) (map[string]string, error) {
	m := make(map[string]string)
	for _, pair := range strings.Split(value, t.Sep) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("missing = in %q", pair)
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("%w in %q", errEmptyKey, pair)
		}
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}
