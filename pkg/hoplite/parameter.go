// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// ParameterArg declares a positional parameter.
type ParameterArg struct {
	Name        string
	Description string
	Mandatory   bool
	// Variadic parameters accept any number of values and must be the last
	// parameter of their command.
	Variadic  bool
	Validator Validator
}

// Parameter is a positional argument of a command, or the value of an
// option.
type Parameter struct {
	name        string
	description string
	mandatory   bool
	variadic    bool
	validator   Validator

	values []string
}

// NewParameter builds a Parameter from its declaration.
func NewParameter(arg ParameterArg) (*Parameter, error) {
	if arg.Name == "" {
		return nil, definitionErrorf("a parameter must have a name")
	}
	if arg.Name == ParentKey {
		return nil, definitionErrorf("parameter name %q is reserved", ParentKey)
	}
	return &Parameter{
		name:        arg.Name,
		description: arg.Description,
		mandatory:   arg.Mandatory,
		variadic:    arg.Variadic,
		validator:   arg.Validator,
	}, nil
}

func (p *Parameter) Name() string        { return p.name }
func (p *Parameter) Description() string { return p.description }
func (p *Parameter) IsMandatory() bool   { return p.mandatory }
func (p *Parameter) IsVariadic() bool    { return p.variadic }
func (p *Parameter) Validator() Validator {
	return p.validator
}

func (p *Parameter) SetDescription(description string) *Parameter {
	p.description = description
	return p
}

// Usage renders the parameter as <name> when mandatory, [name] otherwise,
// with a trailing ... when variadic.
func (p *Parameter) Usage() string {
	name := p.name
	if p.variadic {
		name += "..."
	}
	if p.mandatory {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}

func (p *Parameter) HelpParts() HelpParts {
	return HelpParts{Usage: p.Usage(), Description: p.description}
}

func (p *Parameter) String() string {
	return "Parameter " + p.Usage()
}

// Value returns the bound value: a string (or nil) for a non-variadic
// parameter, a []string for a variadic one.
func (p *Parameter) Value() any {
	if p.variadic {
		return slices.Clone(p.values)
	}
	if len(p.values) == 0 {
		return nil
	}
	return p.values[len(p.values)-1]
}

// IsSet reports whether at least one value was bound.
func (p *Parameter) IsSet() bool {
	return len(p.values) > 0
}

func (p *Parameter) bind(value string) {
	if p.variadic {
		p.values = append(p.values, value)
		return
	}
	p.values = []string{value}
}

func (p *Parameter) reset() {
	p.values = nil
}

// validate checks the bound values, labelling failures with usage. When
// viaOption is set, the parameter belongs to an option that was given; if
// no value followed, that is an error whether or not the parameter is
// mandatory.
func (p *Parameter) validate(ctx context.Context, siblings Values, usage string, viaOption bool) (*ValidationError, error) {
	missing := viaOption && len(p.values) == 0
	if len(p.values) == 0 && !missing {
		return nil, nil
	}

	rv, err := p.validator.resolve(ctx, siblings)
	if err != nil {
		return nil, err
	}

	if missing {
		if rv.probeErr != nil {
			return rv.probeErr, nil
		}
		var allowed []string
		if rv.hasList {
			allowed = rv.allowed
		}
		return newParameterValueError(usage, nil, allowed), nil
	}

	failures := make([]*ValidationError, len(p.values))
	var g errgroup.Group
	for i, v := range p.values {
		g.Go(func() error {
			verr, err := rv.check(ctx, usage, v, siblings)
			failures[i] = verr
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	errs := slices.DeleteFunc(failures, func(e *ValidationError) bool { return e == nil })
	switch {
	case len(errs) == 0:
		return nil, nil
	case p.variadic && len(errs) > 1:
		return newVariadicError(usage, errs), nil
	}
	return errs[len(errs)-1], nil
}

// candidates returns the allow-list used for completion, if the validator
// exposes one.
func (p *Parameter) candidates(ctx context.Context, siblings Values) ([]string, error) {
	rv, err := p.validator.resolve(ctx, siblings)
	if err != nil {
		return nil, err
	}
	if !rv.hasList {
		return nil, nil
	}
	return rv.allowed, nil
}
