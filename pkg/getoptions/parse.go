// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"tailscale.com/types/logger"
)

// Version is the version of the option engine.
const Version = "1.0.0"

// Config controls a Parse call. The zero Config parses in ModeNormal, warns
// about unknown options and keeps scanning past non-options.
type Config struct {
	// Mode selects how single-dash arguments are split into option names.
	Mode Mode

	// FailOnUnknown makes an option that matches no definition abort the
	// parse with an *UnknownOptionError.
	FailOnUnknown bool

	// PassThrough silences the warning for unknown options. They are
	// returned in the remaining args either way.
	PassThrough bool

	// RequireOrder stops option processing at the first non-option argument
	// or unknown option. Everything from there on is returned as remaining
	// args, including arguments that look like options.
	RequireOrder bool

	// LogLevel selects which diagnostics are written to Logf.
	LogLevel LogLevel

	// Logf receives info and debug diagnostics. Defaults to log.Printf.
	Logf logger.Logf

	// Warnf receives unknown-option warnings. Defaults to StderrWarnf.
	Warnf logger.Logf
}

// Parse compiles defs and parses args with them. It returns the bound option
// values and the arguments that were not consumed, in their original order.
//
// On error neither the result nor the remaining args are returned. Errors from
// compiling defs match ErrDefinition, errors from args match ErrParse.
func Parse(args []string, defs Definitions, cfg Config) (Result, []string, error) {
	t, err := Compile(defs)
	if err != nil {
		return nil, nil, err
	}
	return t.Parse(args, cfg)
}

// Parse parses args against the compiled table t. args is not modified.
func (t *Table) Parse(args []string, cfg Config) (Result, []string, error) {
	p := &parser{
		table:     t,
		cfg:       cfg,
		diag:      newDiag(cfg),
		args:      append([]string(nil), args...),
		result:    make(Result),
		remaining: make([]string, 0, len(args)),
	}
	p.diag.infof("input args: %q", args)
	p.diag.infof("config: mode=%v failOnUnknown=%v passThrough=%v requireOrder=%v",
		cfg.Mode, cfg.FailOnUnknown, cfg.PassThrough, cfg.RequireOrder)
	if err := p.run(); err != nil {
		p.diag.infof("error: %v", err)
		return nil, nil, err
	}
	p.diag.infof("result: %v, remaining: %q", p.result, p.remaining)
	return p.result, p.remaining, nil
}

// parser is the state of one Parse call.
type parser struct {
	table *Table
	cfg   Config
	diag  diag

	args      []string // arguments not yet looked at, front first
	result    Result
	remaining []string
}

func (p *parser) run() error {
	for !p.empty() {
		arg := p.shift()
		tok := Classify(arg, p.cfg.Mode)
		switch {
		case tok.End:
			p.flush()
			return nil
		case len(tok.Names) == 0:
			p.remaining = append(p.remaining, arg)
			if p.cfg.RequireOrder {
				p.flush()
				return nil
			}
		default:
			stop, err := p.option(arg, tok)
			if err != nil {
				return err
			}
			if stop {
				p.flush()
				return nil
			}
		}
	}
	return nil
}

// option handles every name of an option token. It reports whether option
// processing should stop because a name could not be resolved under
// RequireOrder.
func (p *parser) option(arg string, tok Token) (stop bool, _ error) {
	last := len(tok.Names) - 1
	for i, name := range tok.Names {
		r, ok, err := p.resolve(name, arg)
		if err != nil {
			return false, err
		}
		if !ok {
			p.remaining = append(p.remaining, arg)
			return p.cfg.RequireOrder, nil
		}
		if i == last && tok.Value != "" {
			p.unshift(tok.Value)
		}
		if err := p.bind(r); err != nil {
			return false, err
		}
	}
	return false, nil
}

// flush moves all unread arguments to the remaining args.
func (p *parser) flush() {
	p.remaining = append(p.remaining, p.args...)
	p.args = nil
}

func (p *parser) empty() bool {
	return len(p.args) == 0
}

func (p *parser) peek() (string, bool) {
	if p.empty() {
		return "", false
	}
	return p.args[0], true
}

func (p *parser) shift() string {
	arg := p.args[0]
	p.args = p.args[1:]
	return arg
}

func (p *parser) unshift(arg string) {
	p.args = append([]string{arg}, p.args...)
}
