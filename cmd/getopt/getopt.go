// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command getopt parses arguments against a definition table and prints the
// bound options and remaining arguments as JSON or YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/getoptions/pkg/cli"
	"github.com/yeetrun/getoptions/pkg/deftable"
	"github.com/yeetrun/getoptions/pkg/getoptions"
	"golang.org/x/term"
)

type globalFlagsParsed struct {
	Color    string `flag:"color" help:"Colored output (auto|always|never)"`
	LogLevel string `flag:"log-level" help:"Engine diagnostics on stderr (quiet|info|debug)"`
}

var isTerminalFn = term.IsTerminal

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func applyColor(mode string) error {
	switch mode {
	case "", "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminalFn(int(os.Stderr.Fd()))
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q (expected auto, always or never)", mode)
	}
	return nil
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for name, info := range cli.CommandInfos() {
		subcommands[name] = cli.ToSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "getopt",
			Description: "Parse command-line arguments with Getopt::Long style option definitions",
			Examples: []string{
				"getopt parse --defs opts.toml -- --verbose -o out.txt input.txt",
				"getopt explain --defs opts.yaml",
			},
		},
		SubCommands: subcommands,
	}
}

// app holds what every subcommand handler needs. Arguments after the first
// "--" are kept out of command routing so that engine arguments such as
// --help reach the engine untouched.
type app struct {
	stdout io.Writer
	stderr io.Writer
	diag   *log.Logger
	global globalFlagsParsed

	tail    []string
	hasTail bool
}

func run(args []string, stdout, stderr io.Writer) int {
	head, tail := cli.SplitArgsAtDoubleDash(args)
	a := &app{
		stdout:  stdout,
		stderr:  stderr,
		diag:    log.New(stderr, "", log.LstdFlags),
		tail:    tail,
		hasTail: slices.Contains(args, "--"),
	}

	global, remaining, err := parseGlobalFlags(head)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	a.global = global
	if err := applyColor(global.Color); err != nil {
		printCLIError(stderr, err)
		return 1
	}

	handlers := map[string]yargs.SubcommandHandler{
		cli.CommandParse:   a.handleParse,
		cli.CommandExplain: a.handleExplain,
		cli.CommandCheck:   a.handleCheck,
		cli.CommandVersion: a.handleVersion,
	}
	if err := yargs.RunSubcommandsWithGroups(context.Background(), remaining, buildHelpConfig(), globalFlagsParsed{}, handlers, nil); err != nil {
		printCLIError(stderr, err)
		return 1
	}
	return 0
}

// withTail puts the arguments after "--" back behind the handler's args.
func (a *app) withTail(args []string) []string {
	if !a.hasTail {
		return args
	}
	out := append([]string{}, args...)
	out = append(out, "--")
	return append(out, a.tail...)
}

func (a *app) warnf(format string, args ...any) {
	fmt.Fprintln(a.stderr, color.YellowString("WARNING: "+format, args...))
}

// engineConfig applies the command-line overrides in flags to the settings of
// tbl.
func (a *app) engineConfig(tbl *deftable.Table, flags cli.ParseFlags) (getoptions.Config, error) {
	cfg, err := tbl.Config()
	if err != nil {
		return cfg, err
	}
	if flags.Mode != "" {
		if cfg.Mode, err = getoptions.ParseMode(flags.Mode); err != nil {
			return cfg, err
		}
	}
	if a.global.LogLevel != "" {
		if cfg.LogLevel, err = getoptions.ParseLogLevel(a.global.LogLevel); err != nil {
			return cfg, err
		}
	}
	cfg.FailOnUnknown = cfg.FailOnUnknown || flags.FailOnUnknown
	cfg.PassThrough = cfg.PassThrough || flags.PassThrough
	cfg.RequireOrder = cfg.RequireOrder || flags.RequireOrder
	cfg.Logf = a.diag.Printf
	cfg.Warnf = a.warnf
	return cfg, nil
}

func (a *app) handleParse(_ context.Context, args []string) error {
	flags, argv, err := cli.ParseParse(a.withTail(args))
	if err != nil {
		return err
	}
	tbl, _, err := loadTable(flags.Defs)
	if err != nil {
		return err
	}
	cfg, err := a.engineConfig(tbl, flags)
	if err != nil {
		return err
	}
	res, rest, err := getoptions.Parse(argv, tbl.Definitions(), cfg)
	if err != nil {
		return err
	}
	return writeOutput(a.stdout, flags.Format, newParseOutput(res, rest))
}

func (a *app) handleExplain(_ context.Context, args []string) error {
	flags, extra, err := cli.ParseExplain(a.withTail(args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost(cli.CommandExplain, extra, 0); err != nil {
		return err
	}
	tbl, _, err := loadTable(flags.Defs)
	if err != nil {
		return err
	}
	compiled, err := getoptions.Compile(tbl.Definitions())
	if err != nil {
		return err
	}
	specs := newSpecOutputs(compiled.Specs())
	if flags.Format == "text" {
		return writeSpecTable(a.stdout, specs)
	}
	return writeOutput(a.stdout, flags.Format, specs)
}

func (a *app) handleCheck(_ context.Context, args []string) error {
	flags, extra, err := cli.ParseCheck(a.withTail(args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost(cli.CommandCheck, extra, 0); err != nil {
		return err
	}
	tbl, path, err := loadTable(flags.Defs)
	if err != nil {
		return err
	}
	compiled, err := getoptions.Compile(tbl.Definitions())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s %s: %d options, %d keys\n", color.GreenString("ok"), path, len(compiled.Specs()), len(tbl.Keys()))
	return nil
}

func (a *app) handleVersion(_ context.Context, args []string) error {
	flags, extra, err := cli.ParseVersion(a.withTail(args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtMost(cli.CommandVersion, extra, 0); err != nil {
		return err
	}
	if flags.JSON {
		return writeOutput(a.stdout, "json", map[string]string{"version": getoptions.Version})
	}
	fmt.Fprintln(a.stdout, getoptions.Version)
	return nil
}

// loadTable loads the table at path, or the nearest getopt.{toml,yaml,yml}
// from the working directory up when path is empty.
func loadTable(path string) (*deftable.Table, string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		path, err = deftable.Find(cwd)
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", errors.New("no definition table found: pass --defs or create getopt.toml")
		}
		if err != nil {
			return nil, "", err
		}
	}
	tbl, err := deftable.Load(path)
	if err != nil {
		return nil, "", err
	}
	return tbl, path, nil
}

func errorPrefix(err error) string {
	var verr *deftable.VersionError
	switch {
	case errors.Is(err, getoptions.ErrDefinition):
		return "definition error: "
	case errors.Is(err, getoptions.ErrParse):
		return "parse error: "
	case errors.As(err, &verr):
		return "version error: "
	}
	return "error: "
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, color.RedString("%s%v", errorPrefix(err), err))
}
