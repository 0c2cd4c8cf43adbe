// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deftable loads option definition tables for the getopt command.
//
// A table maps option definitions to result key names and may carry default
// parser settings and a version constraint on the option engine:
//
//	requires = ">= 1.0, < 2"
//
//	[settings]
//	mode = "bundling"
//	fail_on_unknown = true
//
//	[options]
//	"verbose|v" = "verbose"
//	"output|o=s" = "output"
//	"define|D=s%" = "defines"
//
// The same structure can be written in YAML.
package deftable

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/getoptions/pkg/getoptions"
	"gopkg.in/yaml.v3"
)

// FileNames are the table names Find looks for, in order.
var FileNames = []string{"getopt.toml", "getopt.yaml", "getopt.yml"}

// Format is the encoding of a table file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported definition table %q (expected .toml, .yaml or .yml)", path)
}

type Table struct {
	// Requires is a semver constraint the engine version must satisfy.
	Requires string            `toml:"requires,omitempty" yaml:"requires,omitempty"`
	Settings Settings          `toml:"settings,omitempty" yaml:"settings,omitempty"`
	Options  map[string]string `toml:"options" yaml:"options"`
}

// Settings are parser defaults. Command-line flags can only turn them on or
// change the mode.
type Settings struct {
	Mode          string `toml:"mode,omitempty" yaml:"mode,omitempty"`
	FailOnUnknown bool   `toml:"fail_on_unknown,omitempty" yaml:"fail_on_unknown,omitempty"`
	PassThrough   bool   `toml:"pass_through,omitempty" yaml:"pass_through,omitempty"`
	RequireOrder  bool   `toml:"require_order,omitempty" yaml:"require_order,omitempty"`
	LogLevel      string `toml:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// VersionError is returned when a table's requires constraint does not match
// the engine version.
type VersionError struct {
	Requires string
	Version  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("definition table requires getoptions %s, have %s", e.Requires, e.Version)
}

// Load reads and validates the table at path.
func Load(path string) (*Table, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Decode(bs, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Decode decodes a table without validating it.
func Decode(bs []byte, format Format) (*Table, error) {
	var t Table
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(bs), &t)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(bs))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown table format %q", format)
	}
	return &t, nil
}

// Validate checks the version constraint, the settings and that every
// definition has a key name. It does not compile the definitions.
func (t *Table) Validate() error {
	if err := t.CheckVersion(getoptions.Version); err != nil {
		return err
	}
	if _, err := t.Config(); err != nil {
		return err
	}
	if len(t.Options) == 0 {
		return errors.New("no options defined")
	}
	for def, key := range t.Options {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("option %q has no key name", def)
		}
	}
	return nil
}

// CheckVersion reports whether version satisfies t.Requires. An empty
// constraint accepts every version.
func (t *Table) CheckVersion(version string) error {
	if t.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(t.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires %q: %w", t.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return &VersionError{Requires: t.Requires, Version: version}
	}
	return nil
}

// Definitions returns the option definitions of t, each bound to its key
// name.
func (t *Table) Definitions() getoptions.Definitions {
	defs := make(getoptions.Definitions, len(t.Options))
	for def, key := range t.Options {
		defs[def] = getoptions.Key(key)
	}
	return defs
}

// Keys returns the distinct key names of t, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Options))
	for _, key := range t.Options {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// Config returns the parser configuration described by t.Settings.
func (t *Table) Config() (getoptions.Config, error) {
	mode, err := getoptions.ParseMode(t.Settings.Mode)
	if err != nil {
		return getoptions.Config{}, err
	}
	level, err := getoptions.ParseLogLevel(t.Settings.LogLevel)
	if err != nil {
		return getoptions.Config{}, err
	}
	return getoptions.Config{
		Mode:          mode,
		FailOnUnknown: t.Settings.FailOnUnknown,
		PassThrough:   t.Settings.PassThrough,
		RequireOrder:  t.Settings.RequireOrder,
		LogLevel:      level,
	}, nil
}

// Find looks for one of FileNames in startDir and its parents and returns
// the first path found, or an error matching os.ErrNotExist.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
