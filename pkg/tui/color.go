// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style names the role of a span of text in help and error output.
type Style int

const (
	StyleCommand Style = iota // usages and invocations
	StyleInfo                 // allowed values
	StyleError                // offending tokens
	StyleSuccess
)

var styleAttrs = map[Style]color.Attribute{
	StyleCommand: color.FgYellow,
	StyleInfo:    color.FgCyan,
	StyleError:   color.FgRed,
	StyleSuccess: color.FgGreen,
}

// Colorizer wraps text in ANSI styles when Enabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns an enabled Colorizer when enabled is set and
// neither NO_COLOR nor a missing or dumb TERM disables colors.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForFile enables colors only when f is attached to a terminal and the
// environment allows it.
func ForFile(f *os.File) Colorizer {
	if f == nil {
		return Colorizer{}
	}
	return NewColorizer(term.IsTerminal(int(f.Fd())))
}

// Wrap styles text for its role, or returns it unchanged when c is
// disabled.
func (c Colorizer) Wrap(style Style, text string) string {
	attr, ok := styleAttrs[style]
	if !c.Enabled || !ok {
		return text
	}
	col := color.New(attr)
	// fatih/color consults its own global NoColor switch; the decision
	// has already been made here.
	col.EnableColor()
	return col.Sprint(text)
}
