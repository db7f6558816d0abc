// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

// ParentKey is the key under which a sub-command's Values hold the values
// of its parent command.
const ParentKey = "_"

// Values maps the name of each option and parameter of a command to its
// bound value:
//
//   - bool for an option without parameter
//   - string for a bound non-variadic parameter, nil when unbound
//   - []string for a variadic parameter
//
// An option owning a parameter takes the parameter's value.
type Values map[string]any

// Bool returns the value of a flag.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// String returns the value of a non-variadic parameter.
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// Strings returns the values of a variadic parameter. A non-variadic value
// is returned as a one-element slice.
func (v Values) Strings(name string) []string {
	switch x := v[name].(type) {
	case []string:
		return x
	case string:
		return []string{x}
	}
	return nil
}

// IsSet reports whether name was given on the command line.
func (v Values) IsSet(name string) bool {
	switch x := v[name].(type) {
	case bool:
		return x
	case string:
		return true
	case []string:
		return len(x) > 0
	}
	return false
}

// Parent returns the values of the parent command, or nil at the root.
func (v Values) Parent() Values {
	p, _ := v[ParentKey].(Values)
	return p
}
