// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"regexp"
)

var (
	shortNameRE = regexp.MustCompile(`^[a-zA-Z]$`)
	longNameRE  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]+$`)
)

// OptionArg declares an option. At least one of Short and Long is
// required.
type OptionArg struct {
	Short       string // a single letter, used as -x
	Long        string // used as --xxx
	Description string
	Mandatory   bool
	// Parameter, when set, makes the option consume the next token as its
	// value.
	Parameter *ParameterArg
}

// Option is a named flag of a command, optionally carrying a parameter.
type Option struct {
	short       string
	long        string
	description string
	mandatory   bool
	parameter   *Parameter

	set bool
	// pending is set when the option was the last token and its parameter
	// is still waiting for a value.
	pending bool
}

// NewOption builds an Option from its declaration.
func NewOption(arg OptionArg) (*Option, error) {
	if arg.Short == "" && arg.Long == "" {
		return nil, definitionErrorf("an option should have at least one short name or one long name")
	}
	if arg.Short != "" && !shortNameRE.MatchString(arg.Short) {
		return nil, definitionErrorf("short option name %q must be a single letter", arg.Short)
	}
	if arg.Long != "" && !longNameRE.MatchString(arg.Long) {
		return nil, definitionErrorf("long option name %q must match %s", arg.Long, longNameRE)
	}
	if arg.Long == ParentKey || arg.Short == ParentKey {
		return nil, definitionErrorf("option name %q is reserved", ParentKey)
	}
	o := &Option{
		short:       arg.Short,
		long:        arg.Long,
		description: arg.Description,
		mandatory:   arg.Mandatory,
	}
	if arg.Parameter != nil {
		p, err := NewParameter(*arg.Parameter)
		if err != nil {
			return nil, err
		}
		o.parameter = p
	}
	return o, nil
}

// Short returns the single letter name, or "".
func (o *Option) Short() string { return o.short }

// Long returns the long name, or "".
func (o *Option) Long() string { return o.long }

func (o *Option) Description() string { return o.description }

// IsMandatory reports whether the option must be given.
func (o *Option) IsMandatory() bool { return o.mandatory }

// Parameter returns the parameter carrying the option's value, or nil for
// a flag.
func (o *Option) Parameter() *Parameter { return o.parameter }

// IsSet reports whether the option was given in the last parse.
func (o *Option) IsSet() bool { return o.set }

// HelpParts describes o in the Options section of a help text.
func (o *Option) HelpParts() HelpParts {
	return HelpParts{Usage: o.Usage(), Description: o.description}
}

func (o *Option) String() string { return "Option " + o.Usage() }

func (o *Option) SetDescription(description string) *Option {
	o.description = description
	return o
}

// Name is the long name if there is one, the short name otherwise.
func (o *Option) Name() string {
	if o.long != "" {
		return o.long
	}
	return o.short
}

// DoesAcceptMultipleValues reports whether the option owns a variadic
// parameter, i.e. may be repeated to accumulate values.
func (o *Option) DoesAcceptMultipleValues() bool {
	return o.parameter != nil && o.parameter.IsVariadic()
}

// Usage renders the option as "-s, --long <param>".
func (o *Option) Usage() string {
	usage := ""
	if o.short != "" {
		usage += "-" + o.short
		if o.long != "" {
			usage += ", "
		}
	}
	if o.long != "" {
		usage += "--" + o.long
	}
	if o.parameter != nil {
		usage += " " + o.parameter.Usage()
	}
	return usage
}

// Value is the presence of a parameterless option, or its parameter's
// value.
func (o *Option) Value() any {
	if o.parameter == nil {
		return o.set
	}
	return o.parameter.Value()
}

// bind marks the option as given and feeds its parameter with the next
// token, whatever it looks like.
func (o *Option) bind(q *argQueue) {
	o.set = true
	o.pending = false
	if o.parameter == nil {
		return
	}
	tok, ok := q.pop()
	if !ok {
		o.pending = true
		return
	}
	o.parameter.bind(tok)
}

func (o *Option) reset() {
	o.set = false
	o.pending = false
	if o.parameter != nil {
		o.parameter.reset()
	}
}

func (o *Option) validate(ctx context.Context, siblings Values, invocation string) (*ValidationError, error) {
	if o.mandatory && !o.set {
		return newMandatoryOptionError(o.Usage(), invocation), nil
	}
	if o.set && o.parameter != nil {
		return o.parameter.validate(ctx, siblings, o.Usage(), true)
	}
	return nil, nil
}
