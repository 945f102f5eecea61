// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"
	"log/slog"

	"github.com/huandu/xstrings"
	"github.com/yeetrun/optbind/pkg/optbind"
	"gopkg.in/yaml.v3"
)

// Document is the machine readable form of a FormatInfo.
type Document struct {
	Messages []string         `yaml:"messages,omitempty"`
	Errors   []string         `yaml:"errors,omitempty"`
	Options  []OptionDocument `yaml:"options"`
}

type OptionDocument struct {
	Name        string `yaml:"name"`
	Key         string `yaml:"key"`
	Type        string `yaml:"type"`
	Short       string `yaml:"short,omitempty"`
	Long        string `yaml:"long,omitempty"`
	Description string `yaml:"description,omitempty"`
	Optional    bool   `yaml:"optional"`
	Help        bool   `yaml:"help,omitempty"`
	Default     string `yaml:"default,omitempty"`
	Translator  string `yaml:"translator"`
}

// NewDocument converts info into a Document. Option keys are the kebab-case
// form of the option names.
func NewDocument(info optbind.FormatInfo) Document {
	doc := Document{
		Messages: info.Messages,
		Errors:   info.Errors,
		Options:  make([]OptionDocument, 0, len(info.Options)),
	}
	for _, o := range info.Options {
		doc.Options = append(doc.Options, OptionDocument{
			Name:        o.Name(),
			Key:         xstrings.ToKebabCase(o.Name()),
			Type:        o.Type().String(),
			Short:       o.ShortFlag(),
			Long:        o.LongFlag(),
			Description: o.Description(),
			Optional:    o.IsOptional(),
			Help:        o.IsHelp(),
			Default:     formatValue(o.DefaultValue()),
			Translator:  o.TranslatorName(),
		})
	}
	return doc
}

// YAML writes each FormatInfo as a YAML document.
type YAML struct {
	w      io.Writer
	logger *slog.Logger
}

// NewYAML returns a YAML formatter writing to w. Encoding failures are
// logged to logger, which may be nil.
func NewYAML(w io.Writer, logger *slog.Logger) *YAML {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &YAML{w: w, logger: logger}
}

func (y *YAML) Format(info optbind.FormatInfo) {
	out, err := yaml.Marshal(NewDocument(info))
	if err != nil {
		y.logger.Error("encoding report", "err", err)
		return
	}
	if _, err := y.w.Write(out); err != nil {
		y.logger.Error("writing report", "err", err)
	}
}
