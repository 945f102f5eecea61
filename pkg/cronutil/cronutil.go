// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cronutil parses five-field cron expressions and converts them to
// systemd calendar events.
package cronutil

import (
	"fmt"
	"strconv"
	"strings"
)

// field bounds in cron order: "m h dom mon dow".
var bounds = [5]struct {
	name     string
	min, max int
}{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day of month", 1, 31},
	{"month", 1, 12},
	{"day of week", 0, 6},
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Schedule is a validated cron expression. The zero value is an empty
// schedule.
type Schedule struct {
	fields [5]string
	set    bool
}

// Parse validates expr and returns it as a Schedule. Each field accepts
// "*", "*/n", a value, a range "a-b" (optionally "/n") or a comma separated
// list of those.
func Parse(expr string) (Schedule, error) {
	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return Schedule{}, fmt.Errorf("invalid cron expression: %q", expr)
	}
	var s Schedule
	for i, p := range parts {
		if err := checkField(p, bounds[i].min, bounds[i].max); err != nil {
			return Schedule{}, fmt.Errorf("invalid cron expression %q: %s: %w", expr, bounds[i].name, err)
		}
		s.fields[i] = p
	}
	s.set = true
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Schedule {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

func checkField(field string, min, max int) error {
	for _, item := range strings.Split(field, ",") {
		rng, step, hasStep := strings.Cut(item, "/")
		if hasStep {
			n, err := strconv.Atoi(step)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid step %q", step)
			}
		}
		if rng == "*" {
			continue
		}
		lo, hi, isRange := strings.Cut(rng, "-")
		if !isRange && hasStep {
			return fmt.Errorf("step requires * or a range: %q", item)
		}
		a, err := checkValue(lo, min, max)
		if err != nil {
			return err
		}
		if !isRange {
			continue
		}
		b, err := checkValue(hi, min, max)
		if err != nil {
			return err
		}
		if a > b {
			return fmt.Errorf("invalid range %q", rng)
		}
	}
	return nil
}

func checkValue(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("value %d out of range %d-%d", n, min, max)
	}
	return n, nil
}

// IsZero reports whether s is the empty schedule.
func (s Schedule) IsZero() bool { return !s.set }

// String returns the expression with fields separated by single spaces.
func (s Schedule) String() string {
	if !s.set {
		return ""
	}
	return strings.Join(s.fields[:], " ")
}

func (s Schedule) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Schedule) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = Schedule{}
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Calendar returns the systemd timer calendar event equivalent to s, of the
// form "dow y-m-d h:M".
func (s Schedule) Calendar() string {
	if !s.set {
		return ""
	}
	if s.String() == "* * * * *" {
		return "*-*-* *:*:00"
	}

	minute, hour, dayOfMonth, month, dayOfWeek := s.fields[0], s.fields[1], s.fields[2], s.fields[3], s.fields[4]
	if minute != "*" {
		minute = pad2(minute)
	}
	if hour != "*" {
		hour = pad2(hour)
	}
	if month != "*" {
		ms := strings.Split(month, ",")
		for i, m := range ms {
			ms[i] = pad2(m)
		}
		month = strings.Join(ms, ",")
	}
	// Day intervals like "*/7" become a repetition on the minute.
	if strings.HasPrefix(dayOfMonth, "*/") {
		minute += strings.TrimPrefix(dayOfMonth, "*")
		dayOfMonth = "*"
	} else if dayOfMonth != "*" {
		dayOfMonth = pad2(dayOfMonth)
	}
	if dayOfWeek == "*" {
		dayOfWeek = ""
	} else {
		dayOfWeek = weekdays(dayOfWeek)
	}

	cal := fmt.Sprintf("%s *-%s-%s %s:%s", dayOfWeek, month, dayOfMonth, hour, minute)
	return strings.TrimSpace(cal)
}

// ToCalendar converts a cron expression to a systemd timer calendar event.
func ToCalendar(expr string) (string, error) {
	s, err := Parse(expr)
	if err != nil {
		return "", err
	}
	return s.Calendar(), nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// weekdays maps cron day numbers to systemd names, including ranges like
// "1-5" (Mon...Fri) and lists like "6,0" (Sat,Sun). Items that cannot be
// mapped are kept as-is.
func weekdays(dow string) string {
	items := strings.Split(dow, ",")
	for i, item := range items {
		if lo, hi, ok := strings.Cut(item, "-"); ok {
			if a, b := dayName(lo), dayName(hi); a != "" && b != "" {
				items[i] = a + "..." + b
			}
			continue
		}
		if d := dayName(item); d != "" {
			items[i] = d
		}
	}
	return strings.Join(items, ",")
}

func dayName(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(dayNames) {
		return ""
	}
	return dayNames[n]
}
