// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads optdemo.toml, which supplies messages and option
// defaults for the optdemo command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/yeetrun/optbind/pkg/cronutil"
)

// FileName is the name of the configuration file searched for by Find.
const FileName = "optdemo.toml"

type Config struct {
	Title    string   `toml:"title,omitempty"`
	Messages []string `toml:"messages,omitempty"`
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds option defaults. Zero values mean "not set".
type Defaults struct {
	Path     string            `toml:"path,omitempty"`
	Loggers  []string          `toml:"loggers,omitempty"`
	Retries  *int              `toml:"retries,omitempty"`
	Timeout  Duration          `toml:"timeout,omitempty"`
	Schedule cronutil.Schedule `toml:"schedule,omitempty"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Location is a loaded configuration file.
type Location struct {
	Path   string
	Dir    string
	Config *Config
}

// Load reads and decodes the configuration file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	md, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, nil
}

// LoadFromDir finds the configuration file starting at startDir and loads
// it. It returns nil and no error when there is none.
func LoadFromDir(fs afero.Fs, startDir string) (*Location, error) {
	path, err := Find(fs, startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	cfg, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	return &Location{Path: path, Dir: filepath.Dir(path), Config: cfg}, nil
}

// Find returns the path of the closest FileName in startDir or one of its
// parents. It returns os.ErrNotExist if there is none.
func Find(fs afero.Fs, startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		path := filepath.Join(dir, FileName)
		if _, err := fs.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
