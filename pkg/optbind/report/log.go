// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"log/slog"

	"github.com/yeetrun/optbind/pkg/optbind"
)

// Log writes errors as warnings and options as debug records to a
// slog.Logger.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Format(info optbind.FormatInfo) {
	if len(info.Errors) == 0 {
		l.logger.Info("help requested", "options", len(info.Options))
	}
	for _, e := range info.Errors {
		l.logger.Warn("option error", "err", e)
	}
	for _, o := range info.Options {
		l.logger.Debug("option",
			"name", o.Name(),
			"flags", flagColumn(o),
			"optional", o.IsOptional(),
			"default", formatValue(o.DefaultValue()),
		)
	}
}
