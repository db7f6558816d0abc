// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"strings"

	"tailscale.com/util/set"
)

// CompletionElement tokenizes argv, a process argument vector truncated at
// the cursor, and returns the element being typed: an *Option waiting for
// its value, the *Parameter that received the last value, or a *Command.
func (c *Command) CompletionElement(ctx context.Context, argv []string) Component {
	el, _ := c.completionElement(ctx, argv)
	return el
}

func (c *Command) completionElement(ctx context.Context, argv []string) (Component, *Command) {
	root := c.Root()
	root.resetTree()
	if len(argv) > 2 {
		argv = argv[2:]
	} else {
		argv = nil
	}
	return root.tokenize(ctx, newArgQueue(argv))
}

// Complete returns the words that may follow argv and start with prefix.
// An option waiting for its value completes with its parameter's allowed
// values; otherwise the candidates of the current command are the options
// that can still be given, the allowed values of its next parameter and
// its sub-command names.
//
// The returned error is a fault raised by a validator while looking up
// allowed values.
func (c *Command) Complete(ctx context.Context, argv []string, prefix string) ([]string, error) {
	el, owner := c.completionElement(ctx, argv)

	var words []string
	if o, ok := el.(*Option); ok && o.pending {
		list, err := o.parameter.candidates(ctx, owner.Values())
		if err != nil {
			return nil, err
		}
		words = list
	} else {
		list, err := owner.candidates(ctx)
		if err != nil {
			return nil, err
		}
		words = list
	}

	seen := make(set.Set[string])
	var out []string
	for _, w := range words {
		if !strings.HasPrefix(w, prefix) || seen.Contains(w) {
			continue
		}
		seen.Add(w)
		out = append(out, w)
	}
	return out, nil
}

func (c *Command) candidates(ctx context.Context) ([]string, error) {
	var words []string
	if !c.endOfOptions {
		for _, o := range c.options {
			if o.IsSet() && !o.DoesAcceptMultipleValues() {
				continue
			}
			if o.long != "" {
				words = append(words, "--"+o.long)
			} else {
				words = append(words, "-"+o.short)
			}
		}
	}
	if p := c.currentParameter(); p != nil {
		list, err := p.candidates(ctx, c.Values())
		if err != nil {
			return nil, err
		}
		words = append(words, list...)
	}
	if !c.endOfOptions {
		words = append(words, c.subOrder...)
	}
	return words, nil
}
