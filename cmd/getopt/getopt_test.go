// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/getoptions/pkg/getoptions"
	"gopkg.in/yaml.v3"
)

const testTable = `
requires = ">= 1.0"

[settings]
mode = "bundling"

[options]
"verbose|v" = "verbose"
"output|o=s" = "output"
"define|D=s%" = "defines"
"size=i@{1,2}" = "sizes"
`

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"--color", "never"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunParseJSON(t *testing.T) {
	path := writeTable(t, "getopt.toml", testTable)
	code, stdout, stderr := runCmd(t, "parse", "-d", path, "--", "-vo", "out.txt", "--define", "k=v", "in.txt", "--size", "3", "4")
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}

	var got struct {
		Options   map[string]any `json:"options"`
		Remaining []string       `json:"remaining"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	want := map[string]any{
		"verbose": true,
		"output":  "out.txt",
		"defines": map[string]any{"k": "v"},
		"sizes":   []any{3.0, 4.0},
	}
	if diff := cmp.Diff(want, got.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if !reflect.DeepEqual(got.Remaining, []string{"in.txt"}) {
		t.Errorf("remaining = %q, want [in.txt]", got.Remaining)
	}
}

func TestRunParseYAML(t *testing.T) {
	path := writeTable(t, "opts.yaml", "options:\n  name=s: name\n")
	code, stdout, stderr := runCmd(t, "parse", "--defs", path, "--format", "yaml", "--", "--name", "x", "rest")
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	var got parseOutput
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid YAML output %q: %v", stdout, err)
	}
	want := parseOutput{
		Options:   map[string]any{"name": "x"},
		Remaining: []string{"rest"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunParseFlagOverrides(t *testing.T) {
	path := writeTable(t, "getopt.toml", "[options]\n\"verbose|v\" = \"verbose\"\n")

	code, _, stderr := runCmd(t, "parse", "-d", path, "--", "--bogus")
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stderr, "WARNING: ") {
		t.Errorf("stderr = %q, want unknown option warning", stderr)
	}

	code, _, stderr = runCmd(t, "parse", "-d", path, "--pass-through", "--", "--bogus")
	if code != 0 || stderr != "" {
		t.Errorf("pass-through: exit = %d, stderr = %q, want 0 and no output", code, stderr)
	}

	code, _, stderr = runCmd(t, "parse", "-d", path, "--fail-on-unknown", "--", "--bogus")
	if code != 1 {
		t.Fatalf("fail-on-unknown: exit = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "parse error: ") {
		t.Errorf("stderr = %q, want parse error prefix", stderr)
	}
}

func TestRunParseWithoutDoubleDash(t *testing.T) {
	path := writeTable(t, "getopt.toml", testTable)
	code, stdout, stderr := runCmd(t, "parse", "-d", path, "input", "-o", "out.txt")
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	var got parseOutput
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	want := parseOutput{
		Options:   map[string]any{"output": "out.txt"},
		Remaining: []string{"input"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name       string
		table      string
		args       []string
		wantPrefix string
	}{
		{
			name:       "definition",
			table:      "[options]\n\"x=q\" = \"x\"\n",
			args:       []string{"parse", "--"},
			wantPrefix: "definition error: ",
		},
		{
			name:       "missing argument",
			table:      "[options]\n\"name=s\" = \"name\"\n",
			args:       []string{"parse", "--", "--name"},
			wantPrefix: "parse error: ",
		},
		{
			name:       "version",
			table:      "requires = \">= 9\"\n[options]\nx = \"x\"\n",
			args:       []string{"check"},
			wantPrefix: "version error: ",
		},
		{
			name:       "format",
			table:      "[options]\nx = \"x\"\n",
			args:       []string{"parse", "--format", "xml", "--"},
			wantPrefix: "error: ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, "getopt.toml", tt.table)
			args := append([]string{tt.args[0], "-d", path}, tt.args[1:]...)
			code, stdout, stderr := runCmd(t, args...)
			if code != 1 {
				t.Fatalf("run exit = %d, want 1 (stdout %q)", code, stdout)
			}
			if !strings.HasPrefix(stderr, tt.wantPrefix) {
				t.Errorf("stderr = %q, want prefix %q", stderr, tt.wantPrefix)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCmd(t, "frobnicate")
	if code != 1 || !strings.Contains(stderr, "unknown command") {
		t.Errorf("run exit = %d, stderr = %q", code, stderr)
	}
}

func TestRunInvalidColor(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--color", "sometimes", "version"}, &out, &errOut); code != 1 {
		t.Errorf("run exit = %d, want 1", code)
	}
}

func TestRunExplain(t *testing.T) {
	path := writeTable(t, "getopt.toml", testTable)

	code, stdout, stderr := runCmd(t, "explain", "-d", path)
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{"DEFINITION", "output|o=s", "size=i@{1,2}"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("explain output missing %q:\n%s", want, stdout)
		}
	}

	code, stdout, stderr = runCmd(t, "explain", "-d", path, "-o", "json")
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	var specs []specOutput
	if err := json.Unmarshal([]byte(stdout), &specs); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if len(specs) != 4 {
		t.Fatalf("got %d specs, want 4", len(specs))
	}
	byKey := make(map[string]specOutput)
	for _, s := range specs {
		byKey[s.Key] = s
	}
	size := byKey["sizes"]
	if size.Type != "Integer" || size.Container != "list" || size.Repeat == nil || *size.Repeat != (repeatOutput{Min: 1, Max: 2}) {
		t.Errorf("sizes spec = %+v", size)
	}
	if v := byKey["verbose"]; v.Type != "" || v.Kind != "flag" {
		t.Errorf("verbose spec = %+v, want flag without type", v)
	}
}

func TestRunCheck(t *testing.T) {
	path := writeTable(t, "getopt.toml", testTable)
	code, stdout, stderr := runCmd(t, "check", "-d", path)
	if code != 0 {
		t.Fatalf("run exit = %d, stderr = %q", code, stderr)
	}
	if want := "ok " + path + ": 4 options, 4 keys\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCmd(t, "version")
	if code != 0 || stdout != getoptions.Version+"\n" {
		t.Errorf("version: exit = %d, stdout = %q", code, stdout)
	}

	code, stdout, _ = runCmd(t, "version", "--json")
	if code != 0 {
		t.Fatalf("version --json exit = %d", code)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	if got["version"] != getoptions.Version {
		t.Errorf("version = %q, want %q", got["version"], getoptions.Version)
	}
}

func TestWithTail(t *testing.T) {
	a := &app{tail: []string{"--help", "x"}, hasTail: true}
	if got, want := a.withTail([]string{"parse"}), []string{"parse", "--", "--help", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("withTail = %q, want %q", got, want)
	}
	a = &app{}
	if got, want := a.withTail([]string{"parse"}), []string{"parse"}; !reflect.DeepEqual(got, want) {
		t.Errorf("withTail = %q, want %q", got, want)
	}
}

func TestNewParseOutputKeys(t *testing.T) {
	type key int
	out := newParseOutput(getoptions.Result{key(7): true, "name": "x"}, nil)
	want := parseOutput{
		Options:   map[string]any{"7": true, "name": "x"},
		Remaining: []string{},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("newParseOutput mismatch (-want +got):\n%s", diff)
	}
}
