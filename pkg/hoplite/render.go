// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yeetrun/hoplite/pkg/tui"
)

// RenderConfig controls how help texts and error reports are formatted.
type RenderConfig struct {
	// Indent prefixes every entry of the Options, Parameters and Commands
	// sections of a help text.
	Indent string
	// ErrorIndent is added once per nesting level of an error report.
	ErrorIndent string
	// Colors styles help texts, which are written to Env.Stdout.
	Colors tui.Colorizer
	// ErrorColors styles error reports, which are written to Env.Stderr.
	ErrorColors tui.Colorizer
}

// DefaultRenderConfig returns the configuration used when none was set on
// the root command. Each stream gets colors when it is a terminal.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Indent:      "  ",
		ErrorIndent: "    ",
		Colors:      tui.ForFile(os.Stdout),
		ErrorColors: tui.ForFile(os.Stderr),
	}
}

// PlainRenderConfig is DefaultRenderConfig without colors.
func PlainRenderConfig() RenderConfig {
	cfg := DefaultRenderConfig()
	cfg.Colors = tui.Colorizer{}
	cfg.ErrorColors = tui.Colorizer{}
	return cfg
}

// forErrors returns r with the error stream's colors in use.
func (r RenderConfig) forErrors() RenderConfig {
	r.Colors = r.ErrorColors
	return r
}

func (r RenderConfig) cmd(s string) string  { return r.Colors.Wrap(tui.StyleCommand, s) }
func (r RenderConfig) info(s string) string { return r.Colors.Wrap(tui.StyleInfo, s) }
func (r RenderConfig) bad(s string) string  { return r.Colors.Wrap(tui.StyleError, s) }

// HelpParts is the left (usage) and right (description) column of one
// entry in a help text.
type HelpParts struct {
	Usage       string
	Description string
}

// formatHelpParts aligns descriptions on the longest usage plus a fixed
// gutter.
func formatHelpParts(parts []HelpParts, indent string) string {
	width := 0
	for _, p := range parts {
		width = max(width, utf8.RuneCountInString(p.Usage))
	}
	width += 3

	var b strings.Builder
	for _, p := range parts {
		if p.Description != "" {
			fmt.Fprintf(&b, "%s%-*s %s\n", indent, width, p.Usage, p.Description)
		} else {
			fmt.Fprintf(&b, "%s%s\n", indent, p.Usage)
		}
	}
	return b.String()
}
