// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"fmt"
	"log"
	"strings"

	"github.com/fatih/color"
	"tailscale.com/types/logger"
)

// LogLevel selects how much the parser reports through Config.Logf.
type LogLevel int

const (
	// LogQuiet reports nothing but warnings.
	LogQuiet LogLevel = iota
	// LogInfo reports the inputs and outputs of each Parse call.
	LogInfo
	// LogDebug also traces every resolution and binding.
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogQuiet:
		return "quiet"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// ParseLogLevel parses "quiet", "info" or "debug". The empty string is
// LogQuiet.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "", "quiet", "warn", "warning":
		return LogQuiet, nil
	case "info":
		return LogInfo, nil
	case "debug", "true":
		return LogDebug, nil
	}
	return 0, fmt.Errorf("unknown log level %q (expected quiet, info or debug)", s)
}

// StderrWarnf is the default Config.Warnf. It prints a yellow warning line to
// standard error.
func StderrWarnf(format string, args ...any) {
	fmt.Fprintln(color.Error, color.YellowString("WARNING: "+format, args...))
}

// diag is the diagnostic side channel of one Parse call.
type diag struct {
	level LogLevel
	logf  logger.Logf
	warnf logger.Logf
}

func newDiag(cfg Config) diag {
	d := diag{level: cfg.LogLevel, logf: cfg.Logf, warnf: cfg.Warnf}
	if d.logf == nil {
		d.logf = log.Printf
	}
	if d.warnf == nil {
		d.warnf = StderrWarnf
	}
	return d
}

func (d diag) infof(format string, args ...any) {
	if d.level >= LogInfo {
		d.logf("getoptions: "+format, args...)
	}
}

func (d diag) debugf(format string, args ...any) {
	if d.level >= LogDebug {
		d.logf("getoptions: debug: "+format, args...)
	}
}
