// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

type resultKind int

const (
	resultValid resultKind = iota
	resultInvalid
	resultOneOf
)

// Result is the verdict of a ValidatorFunc: the value is valid, invalid,
// or must belong to an allow-list.
type Result struct {
	kind    resultKind
	allowed []string
}

// Valid accepts the value.
func Valid() Result { return Result{kind: resultValid} }

// Invalid rejects the value with the default message.
func Invalid() Result { return Result{kind: resultInvalid} }

// Check is Valid when ok is true, Invalid otherwise.
func Check(ok bool) Result {
	if ok {
		return Valid()
	}
	return Invalid()
}

// OneOf makes values the allow-list. When returned for the nil probe, the
// list replaces the function for every value of the parameter.
func OneOf(values ...string) Result {
	return Result{kind: resultOneOf, allowed: slices.Clone(values)}
}

// AllowList returns the allow-list of a OneOf result.
func (r Result) AllowList() ([]string, bool) {
	if r.kind != resultOneOf {
		return nil, false
	}
	return r.allowed, true
}

// ValidatorFunc validates one value of a parameter. value is nil when the
// function is probed for an allow-list, or when an option was given
// without its value. siblings holds the raw values bound on the same
// command.
//
// A *ValidationError return rejects the value with that error. Any other
// error is a fault that aborts parsing.
type ValidatorFunc func(ctx context.Context, value *string, siblings Values) (Result, error)

// Validator is either a static allow-list or a ValidatorFunc. The zero
// Validator accepts everything.
type Validator struct {
	static  bool
	allowed []string
	fn      ValidatorFunc
}

// AllowedValues returns a validator accepting only values.
func AllowedValues(values ...string) Validator {
	return Validator{static: true, allowed: slices.Clone(values)}
}

// ValidateWith returns a validator backed by fn.
func ValidateWith(fn ValidatorFunc) Validator {
	return Validator{fn: fn}
}

// IsZero reports whether v accepts everything.
func (v Validator) IsZero() bool {
	return !v.static && v.fn == nil
}

// resolvedValidator is a Validator after the nil probe.
type resolvedValidator struct {
	allowed []string
	hasList bool
	fn      ValidatorFunc
	// probeErr is the custom error the function returned for the nil probe.
	probeErr *ValidationError
}

func (v Validator) resolve(ctx context.Context, siblings Values) (resolvedValidator, error) {
	if v.static {
		return resolvedValidator{allowed: v.allowed, hasList: true}, nil
	}
	if v.fn == nil {
		return resolvedValidator{}, nil
	}
	res, err := v.fn(ctx, nil, siblings)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return resolvedValidator{fn: v.fn, probeErr: verr}, nil
		}
		return resolvedValidator{}, err
	}
	if list, ok := res.AllowList(); ok {
		return resolvedValidator{allowed: list, hasList: true}, nil
	}
	return resolvedValidator{fn: v.fn}, nil
}

// check returns the error for value, or nil when it is accepted.
func (r resolvedValidator) check(ctx context.Context, usage, value string, siblings Values) (*ValidationError, error) {
	if r.hasList {
		return checkAllowList(usage, value, r.allowed), nil
	}
	if r.fn == nil {
		return nil, nil
	}
	res, err := r.fn(ctx, &value, siblings)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr, nil
		}
		return nil, fmt.Errorf("validating %q for %s: %w", value, usage, err)
	}
	switch res.kind {
	case resultInvalid:
		return newParameterValueError(usage, &value, nil), nil
	case resultOneOf:
		return checkAllowList(usage, value, res.allowed), nil
	}
	return nil, nil
}

func checkAllowList(usage, value string, allowed []string) *ValidationError {
	if slices.Contains(allowed, value) {
		return nil
	}
	return newParameterValueError(usage, &value, allowed)
}
