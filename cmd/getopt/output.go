// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/getoptions/pkg/getoptions"
	"gopkg.in/yaml.v3"
)

type parseOutput struct {
	Options   map[string]any `json:"options" yaml:"options"`
	Remaining []string       `json:"remaining" yaml:"remaining"`
}

func newParseOutput(res getoptions.Result, rest []string) parseOutput {
	out := parseOutput{
		Options:   make(map[string]any, len(res)),
		Remaining: rest,
	}
	for k, v := range res {
		out.Options[fmt.Sprint(k)] = v
	}
	if out.Remaining == nil {
		out.Remaining = []string{}
	}
	return out
}

type repeatOutput struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

type specOutput struct {
	Definition string        `json:"definition" yaml:"definition"`
	Canonical  string        `json:"canonical" yaml:"canonical"`
	Key        string        `json:"key" yaml:"key"`
	Aliases    []string      `json:"aliases" yaml:"aliases"`
	Kind       string        `json:"kind" yaml:"kind"`
	Type       string        `json:"type,omitempty" yaml:"type,omitempty"`
	Container  string        `json:"container" yaml:"container"`
	Repeat     *repeatOutput `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Default    string        `json:"default,omitempty" yaml:"default,omitempty"`
}

func newSpecOutputs(specs []*getoptions.OptionSpec) []specOutput {
	out := make([]specOutput, 0, len(specs))
	for _, s := range specs {
		o := specOutput{
			Definition: s.Definition(),
			Canonical:  s.String(),
			Key:        s.Dest.String(),
			Aliases:    s.Aliases,
			Kind:       s.Kind.String(),
			Container:  s.Container.String(),
			Default:    s.Default,
		}
		switch s.Kind {
		case getoptions.Flag, getoptions.NegatableFlag:
		default:
			o.Type = s.Type.String()
		}
		if s.Repeat != nil {
			o.Repeat = &repeatOutput{Min: s.Repeat.Min, Max: s.Repeat.Max}
		}
		out = append(out, o)
	}
	return out
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("invalid format %q (expected json or yaml)", format)
}

func writeSpecTable(w io.Writer, specs []specOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "DEFINITION\tKEY\tKIND\tTYPE\tCONTAINER\tREPEAT")
	for _, s := range specs {
		typ, repeat := s.Type, ""
		if typ == "" {
			typ = "-"
		}
		if s.Repeat != nil {
			repeat = fmt.Sprintf("{%d,%d}", s.Repeat.Min, s.Repeat.Max)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Canonical, s.Key, strings.ReplaceAll(s.Kind, " ", "-"), typ, s.Container, repeat)
	}
	return tw.Flush()
}
