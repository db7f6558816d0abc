// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import "strings"

// Component is implemented by *Command, *Option and *Parameter.
type Component interface {
	Name() string
	Description() string
	HelpParts() HelpParts
}

var (
	_ Component = (*Command)(nil)
	_ Component = (*Option)(nil)
	_ Component = (*Parameter)(nil)
)

// HelpParts describes c in the Commands section of its parent's help.
func (c *Command) HelpParts() HelpParts {
	return HelpParts{Usage: c.name, Description: c.description}
}

// Usage renders the command line accepted by c, for example
// "pizza order [OPTIONS] <size> [toppings...] <COMMAND>".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Invocation())
	if len(c.options) > 0 {
		b.WriteString(" [OPTIONS]")
	}
	for _, p := range c.parameters {
		b.WriteString(" ")
		b.WriteString(p.Usage())
	}
	if len(c.subOrder) > 0 {
		b.WriteString(" <COMMAND>")
	}
	return b.String()
}

// Help renders the help text of c with the root command's RenderConfig.
func (c *Command) Help() string {
	return c.RenderHelp(c.renderConfig())
}

// RenderHelp renders the help text of c: description, usage line, long
// description, then the Options, Parameters and Commands sections.
func (c *Command) RenderHelp(cfg RenderConfig) string {
	var b strings.Builder
	if c.description != "" {
		b.WriteString("\n" + c.description + "\n")
	}
	b.WriteString("\nUsage: " + cfg.cmd(c.Usage()) + "\n")
	if c.longDescription != "" {
		b.WriteString("\n" + c.longDescription + "\n")
	}
	if len(c.options) > 0 {
		parts := make([]HelpParts, len(c.options))
		for i, o := range c.options {
			parts[i] = o.HelpParts()
		}
		b.WriteString("\nOptions:\n")
		b.WriteString(formatHelpParts(parts, cfg.Indent))
	}
	if len(c.parameters) > 0 {
		parts := make([]HelpParts, len(c.parameters))
		for i, p := range c.parameters {
			parts[i] = p.HelpParts()
		}
		b.WriteString("\nParameters:\n")
		b.WriteString(formatHelpParts(parts, cfg.Indent))
	}
	if subs := c.SubCommands(); len(subs) > 0 {
		parts := make([]HelpParts, len(subs))
		for i, s := range subs {
			parts[i] = s.HelpParts()
		}
		b.WriteString("\nCommands:\n")
		b.WriteString(formatHelpParts(parts, cfg.Indent))
	}
	return b.String()
}
