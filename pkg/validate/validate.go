// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validate provides ready-made hoplite validators.
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/hoplite/pkg/hoplite"
)

// Regexp accepts values matching re.
func Regexp(re *regexp.Regexp) hoplite.Validator {
	return hoplite.ValidateWith(func(_ context.Context, v *string, _ hoplite.Values) (hoplite.Result, error) {
		if v == nil {
			return hoplite.Valid(), nil
		}
		return hoplite.Check(re.MatchString(*v)), nil
	})
}

// IntRange accepts base 10 integers in [lo, hi].
func IntRange(lo, hi int) hoplite.Validator {
	return hoplite.ValidateWith(func(_ context.Context, v *string, _ hoplite.Values) (hoplite.Result, error) {
		if v == nil {
			return hoplite.Valid(), nil
		}
		n, err := strconv.Atoi(*v)
		if err != nil {
			return hoplite.Invalid(), nil
		}
		if n < lo || n > hi {
			return hoplite.Result{}, hoplite.NewValidationError(
				fmt.Sprintf("%d is out of range for this parameter.", n),
				fmt.Sprintf("Pick a value between %d and %d.", lo, hi),
			)
		}
		return hoplite.Valid(), nil
	})
}

// SemverConstraint accepts semantic versions satisfying constraint, for
// example ">= 1.2, < 2".
func SemverConstraint(constraint string) (hoplite.Validator, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return hoplite.Validator{}, fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	return hoplite.ValidateWith(func(_ context.Context, v *string, _ hoplite.Values) (hoplite.Result, error) {
		if v == nil {
			return hoplite.Valid(), nil
		}
		ver, err := semver.NewVersion(*v)
		if err != nil {
			return hoplite.Result{}, hoplite.NewValidationError(
				fmt.Sprintf("%s is not a semantic version.", *v), "")
		}
		if !c.Check(ver) {
			return hoplite.Result{}, hoplite.NewValidationError(
				fmt.Sprintf("Version %s does not satisfy %s.", ver, constraint), "")
		}
		return hoplite.Valid(), nil
	}), nil
}

// FetchFunc returns the allowed values of a parameter. siblings holds the
// raw values bound on the same command.
type FetchFunc func(ctx context.Context, siblings hoplite.Values) ([]string, error)

// Fetched accepts the values returned by fetch. fetch is called once per
// validation pass, when the parameter is probed for its allow-list, and
// its error aborts parsing.
func Fetched(fetch FetchFunc) hoplite.Validator {
	return hoplite.ValidateWith(func(ctx context.Context, _ *string, siblings hoplite.Values) (hoplite.Result, error) {
		list, err := fetch(ctx, siblings)
		if err != nil {
			return hoplite.Result{}, fmt.Errorf("fetching allowed values: %w", err)
		}
		return hoplite.OneOf(list...), nil
	})
}

// Cached is like Fetched but calls fetch at most once successfully; the
// first list is reused by later parses. Sibling values are not passed.
func Cached(fetch func(ctx context.Context) ([]string, error)) hoplite.Validator {
	var (
		mu   sync.Mutex
		list []string
		done bool
	)
	return Fetched(func(ctx context.Context, _ hoplite.Values) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return list, nil
		}
		l, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		list, done = l, true
		return list, nil
	})
}
