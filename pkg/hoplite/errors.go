// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDefinition is wrapped by every error reported while building a
	// command tree (missing option names, duplicate names, a parameter
	// declared after a variadic one, ...).
	ErrDefinition = errors.New("invalid command definition")

	// ErrHelpShown is returned by Parse when the help flag was given and the
	// help text was written, for commands that do not exit.
	ErrHelpShown = errors.New("help displayed")
)

func definitionErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDefinition, fmt.Sprintf(format, args...))
}

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	KindCustom ErrorKind = iota
	KindUnknownOption
	KindUnexpectedParameter
	KindMandatoryOption
	KindMandatoryParameter
	KindParameterValue
	KindVariadicAggregate
	KindSubCommandAggregate
	KindCommandAggregate
)

func (k ErrorKind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindUnknownOption:
		return "unknown-option"
	case KindUnexpectedParameter:
		return "unexpected-parameter"
	case KindMandatoryOption:
		return "mandatory-option"
	case KindMandatoryParameter:
		return "mandatory-parameter"
	case KindParameterValue:
		return "parameter-value"
	case KindVariadicAggregate:
		return "variadic-aggregate"
	case KindSubCommandAggregate:
		return "sub-command-aggregate"
	case KindCommandAggregate:
		return "command-aggregate"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ValidationError is a node of an error report. Leaf errors describe one
// failing token or element; aggregates carry the failures of a variadic
// parameter or of a command in Children.
//
// The message is built from the structured fields at render time, so the
// same error can be rendered with or without colors.
type ValidationError struct {
	Kind ErrorKind

	// Subject is the usage string of the failing element (option or
	// parameter), the unknown option name, or the invocation of the command
	// for aggregates.
	Subject string
	// Token is the raw argument that could not be resolved.
	Token string
	// Command is the invocation of the command a mandatory element
	// belongs to.
	Command string
	// Value is the rejected value of a ParameterValue error; nil when an
	// option was given without its value.
	Value *string
	// Values lists the rejected values of a variadic parameter, in binding
	// order.
	Values []string
	// Allowed, when known, is rendered as the "Allowed values: ..." hint.
	Allowed []string
	// Message is the headline of a custom error.
	Message string
	// Hint is rendered after the children. It takes precedence over Allowed.
	Hint     string
	Children []*ValidationError
}

// NewValidationError returns a custom error, typically returned by a
// ValidatorFunc.
func NewValidationError(message, hint string, children ...*ValidationError) *ValidationError {
	return &ValidationError{
		Kind:     KindCustom,
		Message:  message,
		Hint:     hint,
		Children: children,
	}
}

// NewParameterValueError reports value as incorrect for the element whose
// usage is given, with an optional hint. Errors built this way are folded
// into the headline of a variadic aggregate like the built-in ones.
func NewParameterValueError(usage, value, hint string) *ValidationError {
	return &ValidationError{
		Kind:    KindParameterValue,
		Subject: usage,
		Value:   &value,
		Hint:    hint,
	}
}

func newUnknownOptionError(name, token, hint string) *ValidationError {
	return &ValidationError{Kind: KindUnknownOption, Subject: name, Token: token, Hint: hint}
}

func newUnexpectedParameterError(token, hint string) *ValidationError {
	return &ValidationError{Kind: KindUnexpectedParameter, Token: token, Hint: hint}
}

func newMandatoryOptionError(usage, command string) *ValidationError {
	return &ValidationError{Kind: KindMandatoryOption, Subject: usage, Command: command}
}

func newMandatoryParameterError(usage, command string) *ValidationError {
	return &ValidationError{Kind: KindMandatoryParameter, Subject: usage, Command: command}
}

func newParameterValueError(usage string, value *string, allowed []string) *ValidationError {
	return &ValidationError{Kind: KindParameterValue, Subject: usage, Value: value, Allowed: allowed}
}

// newVariadicError folds several failures of one variadic parameter. When
// every failure is a plain value rejection, the values are listed in the
// headline and the hint of the first failure is kept; otherwise the
// failures are kept as children.
func newVariadicError(usage string, errs []*ValidationError) *ValidationError {
	var bad []string
	for _, e := range errs {
		if e.Kind == KindParameterValue && e.Value != nil {
			bad = append(bad, *e.Value)
		}
	}
	if len(bad) == len(errs) {
		return &ValidationError{
			Kind:    KindVariadicAggregate,
			Subject: usage,
			Values:  bad,
			Allowed: errs[0].Allowed,
			Hint:    errs[0].Hint,
		}
	}
	return &ValidationError{Kind: KindVariadicAggregate, Subject: usage, Children: errs}
}

func newCommandError(kind ErrorKind, invocation string, errs []*ValidationError) *ValidationError {
	return &ValidationError{Kind: kind, Subject: invocation, Children: errs}
}

func (e *ValidationError) Error() string {
	return e.Render(PlainRenderConfig())
}

// Render formats the error and its children as an indented, multi-line
// report.
func (e *ValidationError) Render(cfg RenderConfig) string {
	var b strings.Builder
	e.render(&b, cfg, "")
	return b.String()
}

func (e *ValidationError) render(b *strings.Builder, cfg RenderConfig, indent string) {
	b.WriteString(indent)
	b.WriteString(e.headline(cfg))
	for _, child := range e.Children {
		b.WriteString("\n")
		child.render(b, cfg, indent+cfg.ErrorIndent)
	}
	if hint := e.hint(cfg); hint != "" {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(hint)
	}
}

func (e *ValidationError) headline(cfg RenderConfig) string {
	switch e.Kind {
	case KindUnknownOption:
		return fmt.Sprintf("Unknown option %s in %s", cfg.bad(e.Subject), cfg.bad(e.Token))
	case KindUnexpectedParameter:
		return fmt.Sprintf("Unexpected parameter %s", cfg.bad(e.Token))
	case KindMandatoryOption:
		return fmt.Sprintf("The option %s is %s for command %s", cfg.cmd(e.Subject), cfg.bad("mandatory"), cfg.cmd(e.Command))
	case KindMandatoryParameter:
		return fmt.Sprintf("The parameter %s is %s for command %s", cfg.cmd(e.Subject), cfg.bad("mandatory"), cfg.cmd(e.Command))
	case KindParameterValue:
		if e.Value == nil {
			return fmt.Sprintf("A value is %s for %s.", cfg.bad("required"), cfg.cmd(e.Subject))
		}
		return fmt.Sprintf("%s is not a correct value for %s.", cfg.bad(*e.Value), cfg.cmd(e.Subject))
	case KindVariadicAggregate:
		msg := fmt.Sprintf("Some values provided for %s are not valid:", cfg.cmd(e.Subject))
		if len(e.Values) > 0 {
			bad := make([]string, len(e.Values))
			for i, v := range e.Values {
				bad[i] = cfg.bad(v)
			}
			msg += " " + strings.Join(bad, ", ") + "."
		}
		return msg
	case KindSubCommandAggregate, KindCommandAggregate:
		if len(e.Children) == 1 {
			return fmt.Sprintf("An error occurred in command %s:", cfg.cmd(e.Subject))
		}
		return fmt.Sprintf("Some errors occurred in command %s:", cfg.cmd(e.Subject))
	}
	return e.Message
}

func (e *ValidationError) hint(cfg RenderConfig) string {
	if e.Hint != "" {
		return e.Hint
	}
	if len(e.Allowed) == 0 {
		return ""
	}
	allowed := make([]string, len(e.Allowed))
	for i, v := range e.Allowed {
		allowed[i] = cfg.info(v)
	}
	return "Allowed values: " + strings.Join(allowed, ", ") + "."
}

// Flatten returns e and all of its descendants, depth first.
func (e *ValidationError) Flatten() []*ValidationError {
	out := []*ValidationError{e}
	for _, child := range e.Children {
		out = append(out, child.Flatten()...)
	}
	return out
}

// Find returns every error of the given kind in the report rooted at e.
func (e *ValidationError) Find(kind ErrorKind) []*ValidationError {
	var out []*ValidationError
	for _, v := range e.Flatten() {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}
