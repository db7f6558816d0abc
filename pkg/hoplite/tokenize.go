// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"regexp"
	"slices"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const endOfOptions = "--"

var (
	shortClusterRE = regexp.MustCompile(`^-[a-zA-Z]+$`)
	longOptionRE   = regexp.MustCompile(`^--[a-zA-Z][a-zA-Z0-9-]+$`)
)

// argQueue is the argument vector being consumed by the tokenizer.
type argQueue struct {
	args []string
}

func newArgQueue(args []string) *argQueue {
	return &argQueue{args: slices.Clone(args)}
}

func (q *argQueue) pop() (string, bool) {
	if len(q.args) == 0 {
		return "", false
	}
	tok := q.args[0]
	q.args = q.args[1:]
	return tok, true
}

func (q *argQueue) len() int { return len(q.args) }

// tokenize binds every argument of q to the options, parameters and
// sub-commands of c, descending into the selected sub-command. Unknown
// options and extra parameters are recorded on the command they occurred
// in and do not stop tokenization.
//
// It returns the element the last argument was bound to and the command
// that owns it. A flag without parameter is reported as its command.
func (c *Command) tokenize(ctx context.Context, q *argQueue) (Component, *Command) {
	log := LoggerFrom(ctx)
	var current Component = c
	for {
		tok, ok := q.pop()
		if !ok {
			break
		}
		switch {
		case c.endOfOptions:
			current = c.bindParameter(tok)
		case tok == endOfOptions:
			c.endOfOptions = true
			current = c
		case shortClusterRE.MatchString(tok):
			for _, r := range tok[1:] {
				current = c.bindOption(string(r), tok, q)
			}
		case longOptionRE.MatchString(tok):
			current = c.bindOption(tok[2:], tok, q)
		default:
			if sub := c.SubCommand(tok); sub != nil {
				log.Debug("sub-command selected", "command", c.Invocation(), "sub", sub.name)
				c.selected = sub.id
				return sub.tokenize(ctx, q)
			}
			current = c.bindParameter(tok)
		}
		log.Debug("argument bound", "command", c.Invocation(), "arg", tok, "to", describe(current))
	}
	if o, ok := current.(*Option); ok && o.parameter == nil {
		return c, c
	}
	return current, c
}

// bindOption resolves name against the options of c. A single letter only
// matches short names; anything longer only matches long names.
func (c *Command) bindOption(name, tok string, q *argQueue) Component {
	long := len(name) > 1
	for _, o := range c.options {
		if (long && o.long == name) || (!long && o.short == name) {
			o.bind(q)
			return o
		}
	}
	var hint string
	if long {
		var longs []string
		for _, o := range c.options {
			if o.long != "" {
				longs = append(longs, o.long)
			}
		}
		if s := closestMatch(name, longs); s != "" {
			hint = "Did you mean --" + s + "?"
		}
	}
	c.tokenErrs = append(c.tokenErrs, newUnknownOptionError(name, tok, hint))
	return c
}

// currentParameter returns the first parameter still accepting a value.
func (c *Command) currentParameter() *Parameter {
	for _, p := range c.parameters {
		if !p.IsSet() || p.variadic {
			return p
		}
	}
	return nil
}

func (c *Command) bindParameter(tok string) Component {
	p := c.currentParameter()
	if p == nil {
		var hint string
		if !c.endOfOptions {
			if s := closestMatch(tok, c.subOrder); s != "" {
				hint = "Did you mean " + s + "?"
			}
		}
		c.tokenErrs = append(c.tokenErrs, newUnexpectedParameterError(tok, hint))
		return c
	}
	p.bind(tok)
	return p
}

// closestMatch returns the candidate nearest to target, or "" when none is
// close enough.
func closestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(target, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func describe(c Component) string {
	switch v := c.(type) {
	case *Option:
		return v.String()
	case *Parameter:
		return v.String()
	case *Command:
		return "Command " + v.name
	}
	return ""
}
