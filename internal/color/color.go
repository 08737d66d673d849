// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Code is an ANSI SGR parameter.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset  = "\033[0m"
	prefix = "\033["
	suffix = "m"
)

// Text attributes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground colors.
const (
	FgRed Code = iota + 31
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Hi-intensity foreground colors.
const (
	FgHiRed Code = iota + 91
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = detect(os.Getenv, os.Stderr.Fd())

// Enabled reports whether colour output was detected for stderr at start-up.
func Enabled() bool {
	return enabled
}

// Colorize wraps str in the given codes and a trailing reset.
// str is returned unchanged when colour is disabled or no codes are given.
func Colorize(str string, codes ...Code) string {
	if !enabled || len(codes) == 0 {
		return str
	}

	return Wrap(str, codes...)
}

// Wrap is Colorize without the enabled check.
func Wrap(str string, codes ...Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}

	return prefix + strings.Join(parts, ";") + suffix + str + reset
}

func detect(getenv func(string) string, fd uintptr) bool {
	if getenv(NoColor) != "" {
		return false
	}

	if getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(fd))
}
