// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command optdemo exercises the optbind parser with a small console tool
// definition. Global flags are only recognized before the tool options.
//
//	optdemo [--config FILE] [--format text|yaml] [--no-color] [--debug] \
//		-l Console,File [-p /var] [-r 3] [-t 30s] [-s "0 9 * * 1-5"] [-?|--help]
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shayne/yargs"
	"github.com/spf13/afero"
	"github.com/yeetrun/optbind/pkg/config"
	"github.com/yeetrun/optbind/pkg/cronutil"
	"github.com/yeetrun/optbind/pkg/optbind"
	"github.com/yeetrun/optbind/pkg/optbind/report"
	"github.com/yeetrun/optbind/pkg/optbind/translators"
	"github.com/yeetrun/optbind/pkg/tui"
)

const (
	exitOK     = 0
	exitParse  = 1
	exitConfig = 2

	defaultTitle   = "My Console Tool"
	defaultPath    = "/tmp"
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
)

type globalFlagsParsed struct {
	Config  string `flag:"config" help:"Path to an optdemo.toml file"`
	Format  string `flag:"format" help:"Help and error output (text|yaml)"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
	Debug   bool   `flag:"debug" help:"Log option resolution to stderr"`
}

// globalValueFlags lists the global flags that take a value; the others are
// booleans.
var globalValueFlags = map[string]bool{
	"config":   true,
	"format":   true,
	"no-color": false,
	"debug":    false,
}

// splitGlobalArgs returns the leading run of global flags in args and the
// arguments after it. Scanning stops at the first token that is not a global
// flag, so option values that look like global flags stay with the options.
func splitGlobalArgs(args []string) (global, rest []string) {
	i := 0
	for i < len(args) {
		name, inline := strings.CutPrefix(args[i], "--")
		if !inline {
			name, inline = strings.CutPrefix(args[i], "-")
		}
		if !inline || name == "" {
			break
		}
		name, _, hasValue := strings.Cut(name, "=")
		takesValue, known := globalValueFlags[name]
		if !known {
			break
		}
		i++
		if takesValue && !hasValue && i < len(args) && !strings.HasPrefix(args[i], "-") {
			i++
		}
	}
	return args[:i], args[i:]
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	global, rest := splitGlobalArgs(args)
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](global, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, append(result.RemainingArgs, rest...), nil
}

type options struct {
	Path     string
	Loggers  []string
	Retries  int
	Timeout  time.Duration
	Schedule cronutil.Schedule
	Help     bool
}

// env is the process state run depends on.
type env struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	dir    string
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	os.Exit(run(os.Args[1:], env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
		dir:    wd,
	}))
}

func run(args []string, e env) int {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return exitParse
	}

	logger := slog.New(slog.DiscardHandler)
	if flags.Debug {
		logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := loadConfig(e, flags.Config)
	if err != nil {
		fmt.Fprintf(e.stderr, "optdemo: %v\n", err)
		return exitConfig
	}

	formatter, err := newFormatter(e.stdout, flags, logger)
	if err != nil {
		fmt.Fprintf(e.stderr, "optdemo: --format: %v\n", err)
		return exitParse
	}

	p, err := newParser(cfg, formatter, logger)
	if err != nil {
		fmt.Fprintf(e.stderr, "optdemo: %v\n", err)
		return exitConfig
	}

	res := p.Parse(rest)
	switch {
	case res.HelpRequested():
		return exitOK
	case res.HasErrors():
		return exitParse
	}

	o := res.Options
	fmt.Fprintf(e.stdout, "%s; %s\n", o.Path, strings.Join(o.Loggers, ","))
	logger.Info("parsed options",
		"retries", o.Retries,
		"timeout", o.Timeout,
		"schedule", o.Schedule.Calendar(),
	)
	return exitOK
}

// loadConfig loads path, or the closest optdemo.toml above e.dir when path
// is empty. It returns an empty config when no file is found.
func loadConfig(e env, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(e.fs, path)
	}
	loc, err := config.LoadFromDir(e.fs, e.dir)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return &config.Config{}, nil
	}
	return loc.Config, nil
}

func newFormatter(w io.Writer, flags globalFlagsParsed, logger *slog.Logger) (optbind.Formatter, error) {
	format := "text"
	if flags.Format != "" {
		var err error
		if format, err = translators.Enum("text", "yaml").Translate(flags.Format); err != nil {
			return nil, err
		}
	}
	var f optbind.Formatter
	switch format {
	case "yaml":
		f = report.NewYAML(w, logger)
	default:
		f = report.NewText(w, tui.ForWriter(w, !flags.NoColor))
	}
	if flags.Debug {
		f = report.Multi(f, report.NewLog(logger))
	}
	return f, nil
}

func newParser(cfg *config.Config, f optbind.Formatter, logger *slog.Logger) (*optbind.Parser[options], error) {
	title := cfg.Title
	if title == "" {
		title = defaultTitle
	}
	p := optbind.New[options](
		optbind.WithMessages(append([]string{title}, cfg.Messages...)...),
		optbind.WithFormatter(f),
		optbind.WithLogger(logger),
	)

	d := cfg.Defaults
	path := defaultPath
	if d.Path != "" {
		path = d.Path
	}
	retries := defaultRetries
	if d.Retries != nil {
		retries = *d.Retries
	}
	timeout := defaultTimeout
	if d.Timeout.Duration != 0 {
		timeout = d.Timeout.Duration
	}

	var loggerOpts []optbind.ConfigOption
	if len(d.Loggers) > 0 {
		loggerOpts = append(loggerOpts, optbind.Default(d.Loggers))
	}
	var scheduleOpts []optbind.ConfigOption
	if !d.Schedule.IsZero() {
		scheduleOpts = append(scheduleOpts, optbind.Default(d.Schedule))
	}

	steps := []struct {
		field    string
		help     bool
		optional bool
		desc     string
		short    string
		long     string
		opts     []optbind.ConfigOption
	}{
		{field: "Path", optional: true, desc: "Directory to process", short: "-p", long: "--path",
			opts: []optbind.ConfigOption{optbind.Default(path)}},
		{field: "Loggers", desc: "Comma-delimited list of loggers", short: "-l", long: "--loggers",
			opts: append(loggerOpts, optbind.Translate(translators.Split(",")))},
		{field: "Retries", optional: true, desc: "Retry attempts (0-10)", short: "-r", long: "--retries",
			opts: []optbind.ConfigOption{optbind.Default(retries), optbind.Translate(translators.IntRange(0, 10))}},
		{field: "Timeout", optional: true, desc: "Time allowed per attempt", short: "-t", long: "--timeout",
			opts: []optbind.ConfigOption{optbind.Default(timeout)}},
		{field: "Schedule", optional: true, desc: "Cron schedule for repeated runs", short: "-s", long: "--schedule",
			opts: scheduleOpts},
		{field: "Help", help: true, optional: true, desc: "Show this help", short: "-?", long: "--help"},
	}
	for _, st := range steps {
		var setOpts []optbind.SetOption
		if st.help {
			setOpts = append(setOpts, optbind.AsHelp())
		}
		s, err := p.Set(st.field, setOpts...)
		if err != nil {
			return nil, err
		}
		if st.optional {
			_, err = s.AsOptional(st.desc, st.short, st.long, st.opts...)
		} else {
			_, err = s.AsRequired(st.desc, st.short, st.long, st.opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", st.field, err)
		}
	}
	return p, nil
}
