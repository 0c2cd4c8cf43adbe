// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli holds the command and flag metadata of the getopt command and
// parses each subcommand's own flags.
package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

// ParseFlags are the flags of "getopt parse". Empty or false values leave
// the setting from the definition table in place.
type ParseFlags struct {
	Defs          string
	Mode          string
	FailOnUnknown bool
	PassThrough   bool
	RequireOrder  bool
	Format        string
}

type ExplainFlags struct {
	Defs   string
	Format string
}

type CheckFlags struct {
	Defs string
}

type VersionFlags struct {
	JSON bool
}

type parseFlagsParsed struct {
	Defs          string `flag:"defs" short:"d" help:"Definition table (.toml, .yaml or .yml)"`
	Mode          string `flag:"mode" short:"m" help:"Single-dash mode (normal|bundling|singleDash)"`
	FailOnUnknown bool   `flag:"fail-on-unknown" help:"Fail on options missing from the table"`
	PassThrough   bool   `flag:"pass-through" help:"Do not warn about unknown options"`
	RequireOrder  bool   `flag:"require-order" help:"Stop at the first non-option argument"`
	Format        string `flag:"format" short:"o" default:"json" help:"Output format (json|yaml)"`
}

type explainFlagsParsed struct {
	Defs   string `flag:"defs" short:"d" help:"Definition table (.toml, .yaml or .yml)"`
	Format string `flag:"format" short:"o" default:"text" help:"Output format (text|json|yaml)"`
}

type checkFlagsParsed struct {
	Defs string `flag:"defs" short:"d" help:"Definition table (.toml, .yaml or .yml)"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

const (
	CommandParse   = "parse"
	CommandExplain = "explain"
	CommandCheck   = "check"
	CommandVersion = "version"
)

var commandInfos = map[string]CommandInfo{
	CommandParse: {Name: CommandParse, Description: "Parse arguments against a definition table and print the result", Usage: "[--defs FILE] [--mode M] [--format json|yaml] -- ARGS...", Examples: []string{
		"getopt parse --defs opts.toml -- --verbose -o out.txt input.txt",
		"getopt parse --defs opts.yaml --mode bundling --format yaml -- -vx file",
		"getopt parse --defs opts.toml --pass-through --require-order -- --name x sub --flag",
	}, Aliases: []string{"p"}},
	CommandExplain: {Name: CommandExplain, Description: "Show how each definition in a table compiles", Usage: "[--defs FILE] [--format text|json|yaml]", Examples: []string{
		"getopt explain --defs opts.toml",
		"getopt explain --defs opts.toml --format json",
	}},
	CommandCheck: {Name: CommandCheck, Description: "Validate a definition table", Usage: "[--defs FILE]", Examples: []string{
		"getopt check --defs opts.toml",
	}},
	CommandVersion: {Name: CommandVersion, Description: "Show the version of the option engine", Usage: "[--json]"},
}

var commandFlagSpecs = map[string]map[string]FlagSpec{
	CommandParse:   flagSpecsFromStruct(parseFlagsParsed{}),
	CommandExplain: flagSpecsFromStruct(explainFlagsParsed{}),
	CommandCheck:   flagSpecsFromStruct(checkFlagsParsed{}),
	CommandVersion: flagSpecsFromStruct(versionFlagsParsed{}),
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func CommandFlagSpecs() map[string]map[string]FlagSpec {
	return commandFlagSpecs
}

func ToSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of "getopt parse". The returned args are the
// arguments to run through the option engine: everything from the first
// positional argument, unknown flag or "--" on.
func ParseParse(args []string) (ParseFlags, []string, error) {
	specs := commandFlagSpecs[CommandParse]
	parseArgs, extraArgs := splitArgsForParsing(dropCommand(args, CommandParse), specs)
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{
		Defs:          parsed.Flags.Defs,
		Mode:          parsed.Flags.Mode,
		FailOnUnknown: parsed.Flags.FailOnUnknown,
		PassThrough:   parsed.Flags.PassThrough,
		RequireOrder:  parsed.Flags.RequireOrder,
		Format:        parsed.Flags.Format,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseExplain(args []string) (ExplainFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(dropCommand(args, CommandExplain))
	parsed, err := parseFlags[explainFlagsParsed](parseArgs)
	if err != nil {
		return ExplainFlags{}, nil, err
	}
	flags := ExplainFlags{
		Defs:   parsed.Flags.Defs,
		Format: parsed.Flags.Format,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(dropCommand(args, CommandCheck))
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	flags := CheckFlags{Defs: parsed.Flags.Defs}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(dropCommand(args, CommandVersion))
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// dropCommand removes the first non-flag argument if it is the command name.
func dropCommand(args []string, name string) []string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if arg != name {
			break
		}
		out := make([]string, 0, len(args)-1)
		out = append(out, args[:i]...)
		return append(out, args[i+1:]...)
	}
	return args
}

// SplitArgsAtDoubleDash splits args at the first "--", which is dropped.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	return splitArgsAtDoubleDash(args)
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

// splitArgsForParsing returns the leading part of args made of flags in specs
// and their values, and the rest starting at the first positional argument or
// flag not in specs. A "--" ends the leading part and is dropped.
func splitArgsForParsing(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
		if strings.HasPrefix(arg, "--") && len(arg) > 2 {
			name := arg
			if idx := strings.Index(name, "="); idx != -1 {
				name = name[:idx]
			}
			spec, ok := specs[name]
			if !ok {
				return args[:i], args[i:]
			}
			if spec.ConsumesValue && !strings.Contains(arg, "=") {
				i++
			}
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "=") {
				name := arg[:strings.Index(arg, "=")]
				if _, ok := specs[name]; ok {
					continue
				}
				return args[:i], args[i:]
			}
			spec, ok := specs[arg]
			if !ok {
				return args[:i], args[i:]
			}
			if spec.ConsumesValue {
				i++
			}
			continue
		}
		return args[:i], args[i:]
	}
	return args, nil
}

func flagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return specs
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: consumesValue(field.Type)}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func consumesValue(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return false
	default:
		return true
	}
}

func RequireArgsAtMost(subcmd string, args []string, count int) error {
	if len(args) > count {
		return fmt.Errorf("'%s' takes at most %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
