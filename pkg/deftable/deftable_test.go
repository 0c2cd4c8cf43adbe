// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deftable

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/getoptions/pkg/getoptions"
)

const tomlTable = `
requires = ">= 1.0, < 2"

[settings]
mode = "bundling"
fail_on_unknown = true

[options]
"verbose|v" = "verbose"
"output|o=s" = "output"
"define|D=s%" = "defines"
`

const yamlTable = `
requires: ">= 1.0, < 2"
settings:
  mode: bundling
  fail_on_unknown: true
options:
  verbose|v: verbose
  output|o=s: output
  define|D=s%: defines
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := &Table{
		Requires: ">= 1.0, < 2",
		Settings: Settings{Mode: "bundling", FailOnUnknown: true},
		Options: map[string]string{
			"verbose|v":   "verbose",
			"output|o=s":  "output",
			"define|D=s%": "defines",
		},
	}
	tests := []struct {
		name    string
		content string
	}{
		{name: "getopt.toml", content: tomlTable},
		{name: "getopt.yaml", content: yamlTable},
		{name: "opts.yml", content: yamlTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.name, tt.content)
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", tt.name, err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load(%s) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "extension", file: "opts.json", content: `{}`},
		{name: "bad toml", file: "a.toml", content: `options = [`},
		{name: "unknown toml key", file: "a.toml", content: "colour = true\n[options]\nx = \"x\"\n"},
		{name: "unknown yaml key", file: "a.yaml", content: "colour: true\noptions:\n  x: x\n"},
		{name: "no options", file: "a.toml", content: "requires = \">= 1\"\n"},
		{name: "empty key name", file: "a.toml", content: "[options]\nx = \" \"\n"},
		{name: "bad mode", file: "a.toml", content: "[settings]\nmode = \"posix\"\n[options]\nx = \"x\"\n"},
		{name: "bad log level", file: "a.yaml", content: "settings:\n  log_level: loud\noptions:\n  x: x\n"},
		{name: "bad constraint", file: "a.toml", content: "requires = \"nope\"\n[options]\nx = \"x\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatalf("Load(%q) error = nil, want error", tt.content)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		wantErr  bool
	}{
		{requires: "", version: "1.0.0"},
		{requires: ">= 1.0", version: "1.0.0"},
		{requires: "^1", version: "1.4.2"},
		{requires: "~1.0", version: "1.0.9"},
		{requires: ">= 2", version: "1.0.0", wantErr: true},
		{requires: "< 1", version: "1.0.0", wantErr: true},
	}
	for _, tt := range tests {
		tbl := &Table{Requires: tt.requires}
		err := tbl.CheckVersion(tt.version)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckVersion(%q, %q) error = %v, wantErr %v", tt.requires, tt.version, err, tt.wantErr)
		}
		if tt.wantErr {
			var verr *VersionError
			if !errors.As(err, &verr) {
				t.Errorf("CheckVersion(%q, %q) error = %T, want *VersionError", tt.requires, tt.version, err)
			}
		}
	}
}

func TestDefinitionsParse(t *testing.T) {
	tbl, err := Decode([]byte(tomlTable), FormatTOML)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	cfg, err := tbl.Config()
	if err != nil {
		t.Fatalf("Config error = %v", err)
	}
	if cfg.Mode != getoptions.ModeBundling || !cfg.FailOnUnknown {
		t.Errorf("Config() = %+v", cfg)
	}

	res, rest, err := getoptions.Parse(
		[]string{"-vo", "out.txt", "--define", "k=v", "in.txt"},
		tbl.Definitions(),
		cfg,
	)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	want := getoptions.Result{
		"verbose": true,
		"output":  "out.txt",
		"defines": map[string]string{"k": "v"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	if !reflect.DeepEqual(rest, []string{"in.txt"}) {
		t.Errorf("remaining = %q, want [in.txt]", rest)
	}
}

func TestKeys(t *testing.T) {
	tbl := &Table{Options: map[string]string{"a": "x", "b": "y", "c|d": "x"}}
	if got, want := tbl.Keys(), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %q, want %q", got, want)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Find(sub); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Find with no table error = %v, want os.ErrNotExist", err)
	}

	want := writeFile(t, filepath.Join(root, "a"), "getopt.yaml", yamlTable)
	got, err := Find(sub)
	if err != nil {
		t.Fatalf("Find error = %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}

	// A TOML table in the same directory wins over YAML.
	want = writeFile(t, filepath.Join(root, "a"), "getopt.toml", tomlTable)
	if got, _ := Find(sub); got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}
