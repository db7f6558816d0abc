// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"tailscale.com/util/mak"
	"tailscale.com/util/must"
	"tailscale.com/util/set"
)

// Action is invoked with the bound values of the deepest selected command.
// Its return value is the result of Parse.
type Action func(ctx context.Context, values Values) (any, error)

// CommandArg declares a command and, recursively, its sub-commands.
type CommandArg struct {
	Name            string
	Description     string
	LongDescription string
	Options         []OptionArg
	Parameters      []ParameterArg
	SubCommands     []CommandArg

	// HelpOption replaces the default --help option.
	HelpOption *OptionArg
	// NoHelpOption disables the help option altogether.
	NoHelpOption bool

	Action Action
	// Standalone commands are validated on their own when selected: the
	// options and parameters of their ancestors are not checked.
	Standalone bool
	// NoExit makes Parse return errors instead of terminating the process.
	// Only the root command's setting is used.
	NoExit bool
}

var defaultHelpOption = OptionArg{Long: "help", Description: "show command usage"}

// Command is a node of a command tree.
type Command struct {
	tree        *tree
	id          nodeID
	parent      nodeID
	subCommands map[string]nodeID
	subOrder    []string

	name            string
	description     string
	longDescription string
	options         []*Option
	parameters      []*Parameter
	helpOption      *Option
	action          Action
	standalone      bool

	// Settings read from the root only.
	noExit bool
	env    *Env
	render *RenderConfig

	// Parse state.
	execPath     string
	scriptPath   string
	selected     nodeID
	endOfOptions bool
	tokenErrs    []*ValidationError
}

// New builds a command tree from its declaration.
func New(arg CommandArg) (*Command, error) {
	if arg.Name == "" {
		return nil, definitionErrorf("a command must have a name")
	}
	c := &Command{
		name:            arg.Name,
		description:     arg.Description,
		longDescription: arg.LongDescription,
		action:          arg.Action,
		standalone:      arg.Standalone,
		noExit:          arg.NoExit,
	}
	newTree(c)

	for _, o := range arg.Options {
		if _, err := c.AddOption(o); err != nil {
			return nil, fmt.Errorf("command %q: %w", arg.Name, err)
		}
	}
	for _, p := range arg.Parameters {
		if _, err := c.AddParameter(p); err != nil {
			return nil, fmt.Errorf("command %q: %w", arg.Name, err)
		}
	}
	if !arg.NoHelpOption {
		help := defaultHelpOption
		if arg.HelpOption != nil {
			help = *arg.HelpOption
		}
		opt, err := c.AddOption(help)
		if err != nil {
			return nil, fmt.Errorf("command %q: help option: %w", arg.Name, err)
		}
		c.helpOption = opt
	}
	for _, s := range arg.SubCommands {
		sub, err := New(s)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", arg.Name, err)
		}
		if err := c.AddSubCommand(sub); err != nil {
			return nil, fmt.Errorf("command %q: %w", arg.Name, err)
		}
	}
	return c, nil
}

// MustNew is like New but panics on a definition error.
func MustNew(arg CommandArg) *Command {
	return must.Get(New(arg))
}

// valueKeys returns the keys already taken in Values.
func (c *Command) valueKeys() set.Set[string] {
	keys := make(set.Set[string])
	keys.Add(ParentKey)
	for _, o := range c.options {
		keys.Add(o.Name())
	}
	for _, p := range c.parameters {
		keys.Add(p.Name())
	}
	return keys
}

// AddOption declares a new option on c.
func (c *Command) AddOption(arg OptionArg) (*Option, error) {
	o, err := NewOption(arg)
	if err != nil {
		return nil, err
	}
	names := make(set.Set[string])
	for _, existing := range c.options {
		if existing.short != "" {
			names.Add("-" + existing.short)
		}
		if existing.long != "" {
			names.Add("--" + existing.long)
		}
	}
	if o.short != "" && names.Contains("-"+o.short) {
		return nil, definitionErrorf("option -%s is declared twice", o.short)
	}
	if o.long != "" && names.Contains("--"+o.long) {
		return nil, definitionErrorf("option --%s is declared twice", o.long)
	}
	if c.valueKeys().Contains(o.Name()) {
		return nil, definitionErrorf("option %s: name %q is already used", o.Usage(), o.Name())
	}
	c.options = append(c.options, o)
	return o, nil
}

// AddParameter declares a new positional parameter on c.
func (c *Command) AddParameter(arg ParameterArg) (*Parameter, error) {
	p, err := NewParameter(arg)
	if err != nil {
		return nil, err
	}
	if n := len(c.parameters); n > 0 && c.parameters[n-1].variadic {
		return nil, definitionErrorf("parameter %s is declared after the variadic parameter %s", p.Usage(), c.parameters[n-1].Usage())
	}
	if c.valueKeys().Contains(p.name) {
		return nil, definitionErrorf("parameter %s: name %q is already used", p.Usage(), p.name)
	}
	c.parameters = append(c.parameters, p)
	return p, nil
}

// AddSubCommand makes sub a child of c. sub must not already belong to a
// command tree other than its own.
func (c *Command) AddSubCommand(sub *Command) error {
	if _, ok := c.subCommands[sub.name]; ok {
		return definitionErrorf("sub-command %q is declared twice", sub.name)
	}
	if err := c.tree.adopt(c, sub); err != nil {
		return err
	}
	mak.Set(&c.subCommands, sub.name, sub.id)
	c.subOrder = append(c.subOrder, sub.name)
	return nil
}

// SetAction sets the function run when c is the deepest selected command.
func (c *Command) SetAction(action Action) *Command {
	c.action = action
	return c
}

// SetDescription sets the one-line summary shown in help texts.
func (c *Command) SetDescription(description string) *Command {
	c.description = description
	return c
}

// SetLongDescription sets the text shown below the usage line of c's help.
func (c *Command) SetLongDescription(description string) *Command {
	c.longDescription = description
	return c
}

// SetStandalone controls whether the ancestors of c are validated when c
// is selected.
func (c *Command) SetStandalone(standalone bool) *Command {
	c.standalone = standalone
	return c
}

// SetNoExit makes Parse return errors instead of calling Env.Exit. Only
// the root command's setting is used.
func (c *Command) SetNoExit(noExit bool) *Command {
	c.noExit = noExit
	return c
}

// SetEnv sets the output writers and exit function. Only the root
// command's Env is used.
func (c *Command) SetEnv(env Env) *Command {
	env = env.withDefaults()
	c.env = &env
	return c
}

// SetRenderConfig sets how help texts and error reports are formatted.
// Only the root command's configuration is used.
func (c *Command) SetRenderConfig(cfg RenderConfig) *Command {
	c.render = &cfg
	return c
}

func (c *Command) environment() Env {
	if r := c.Root(); r.env != nil {
		return *r.env
	}
	return DefaultEnv()
}

func (c *Command) renderConfig() RenderConfig {
	if r := c.Root(); r.render != nil {
		return *r.render
	}
	return DefaultRenderConfig()
}

// Name returns the word that selects c on the command line.
func (c *Command) Name() string { return c.name }

// Description returns the one-line summary of c.
func (c *Command) Description() string { return c.description }

// LongDescription returns the text shown below the usage line of c's help.
func (c *Command) LongDescription() string { return c.longDescription }

// Options returns the declared options, help option included, in
// declaration order.
func (c *Command) Options() []*Option {
	return c.options
}

// Parameters returns the declared parameters in declaration order.
func (c *Command) Parameters() []*Parameter {
	return c.parameters
}

// HelpOption returns the help option, or nil if it is disabled.
func (c *Command) HelpOption() *Option {
	return c.helpOption
}

// SubCommands returns the sub-commands in declaration order.
func (c *Command) SubCommands() []*Command {
	subs := make([]*Command, 0, len(c.subOrder))
	for _, name := range c.subOrder {
		subs = append(subs, c.tree.node(c.subCommands[name]))
	}
	return subs
}

// SubCommand returns the sub-command called name, or nil.
func (c *Command) SubCommand(name string) *Command {
	id, ok := c.subCommands[name]
	if !ok {
		return nil
	}
	return c.tree.node(id)
}

// Parent returns the parent command, or nil for the root.
func (c *Command) Parent() *Command {
	return c.tree.node(c.parent)
}

// Root returns the root of c's command tree.
func (c *Command) Root() *Command {
	return c.tree.nodes[0]
}

// ExecPath and ScriptPath return the two leading tokens stripped by the
// last Parse of the root command.
func (c *Command) ExecPath() string   { return c.Root().execPath }
func (c *Command) ScriptPath() string { return c.Root().scriptPath }

// Invocation is the space separated path of command names from the root.
func (c *Command) Invocation() string {
	if p := c.Parent(); p != nil {
		return p.Invocation() + " " + c.name
	}
	return c.name
}

// Selected returns the sub-command chosen by the last parse, or nil.
func (c *Command) Selected() *Command {
	return c.tree.node(c.selected)
}

// Values returns the value bound to every option and parameter, with the
// values of the parent command under ParentKey. The help option is left
// out.
func (c *Command) Values() Values {
	values := make(Values, len(c.options)+len(c.parameters)+1)
	if p := c.Parent(); p != nil {
		values[ParentKey] = p.Values()
	}
	for _, o := range c.options {
		if o == c.helpOption {
			continue
		}
		values[o.Name()] = o.Value()
	}
	for _, p := range c.parameters {
		values[p.name] = p.Value()
	}
	return values
}

// Parse parses a process argument vector: argv[0] (the executable) and
// argv[1] (the script or program) are stripped before the root command
// reads its arguments.
//
// On success, Parse returns the result of the deepest selected command's
// action, or its Values when it has no action. When the help option was
// given, the help text is written to Env.Stdout and the process exits with
// status 0; a validation failure writes the report to Env.Stderr and exits
// with status 1. With NoExit set, or when Env.Exit returns, ErrHelpShown or
// the *ValidationError is returned instead.
//
// Any other error is a fault raised by a validator or an action.
func (c *Command) Parse(ctx context.Context, argv []string) (any, error) {
	root := c.Root()
	if len(argv) > 0 {
		root.execPath, argv = argv[0], argv[1:]
	}
	if len(argv) > 0 {
		root.scriptPath, argv = argv[0], argv[1:]
	}
	return root.run(ctx, argv)
}

// Run is like Parse for an argument vector that has already been stripped,
// such as os.Args[1:].
func (c *Command) Run(ctx context.Context, args []string) (any, error) {
	return c.Root().run(ctx, args)
}

func (c *Command) run(ctx context.Context, args []string) (any, error) {
	c.resetTree()
	c.tokenize(ctx, newArgQueue(args))

	env := c.environment()
	cfg := c.renderConfig()

	if help := c.helpRequested(); help != nil {
		if _, err := io.WriteString(env.Stdout, help.RenderHelp(cfg)); err != nil {
			LoggerFrom(ctx).Warn("writing help", "command", help.Invocation(), "err", err)
		}
		if !c.noExit {
			env.Exit(0)
		}
		return nil, ErrHelpShown
	}

	v, err := c.validationRoot().validate(ctx, false)
	if err != nil {
		return nil, err
	}
	if !v.ok {
		if _, err := io.WriteString(env.Stderr, v.err.Render(cfg.forErrors())+"\n"); err != nil {
			LoggerFrom(ctx).Warn("writing error report", "err", err)
		}
		if !c.noExit {
			env.Exit(1)
		}
		return nil, v.err
	}
	return c.execAction(ctx)
}

// helpRequested returns the first command along the selected path whose
// help option was given.
func (c *Command) helpRequested() *Command {
	for cur := c; cur != nil; cur = cur.Selected() {
		if cur.helpOption != nil && cur.helpOption.IsSet() {
			return cur
		}
	}
	return nil
}

func (c *Command) execAction(ctx context.Context) (any, error) {
	if sub := c.Selected(); sub != nil {
		return sub.execAction(ctx)
	}
	if c.action == nil {
		return c.Values(), nil
	}
	res, err := c.action(ctx, c.Values())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Invocation(), err)
	}
	return res, nil
}

// resetTree clears the state left by a previous parse on every command of
// the tree.
func (c *Command) resetTree() {
	for _, n := range c.tree.nodes {
		n.selected = noNode
		n.endOfOptions = false
		n.tokenErrs = nil
		for _, o := range n.options {
			o.reset()
		}
		for _, p := range n.parameters {
			p.reset()
		}
	}
}

// validationRoot returns the command validation starts from: the deepest
// standalone command on the selected path, or c.
func (c *Command) validationRoot() *Command {
	start := c
	for cur := c.Selected(); cur != nil; cur = cur.Selected() {
		if cur.standalone {
			start = cur
		}
	}
	return start
}

// validation is the outcome of validating a command: ok, or the aggregate
// error.
type validation struct {
	ok  bool
	err *ValidationError
}

// validate checks the options, the parameters and the selected
// sub-command of c concurrently. The returned error is a fault, not a
// validation failure.
func (c *Command) validate(ctx context.Context, nested bool) (validation, error) {
	siblings := c.Values()
	invocation := c.Invocation()
	optErrs := make([]*ValidationError, len(c.options))
	paramErrs := make([]*ValidationError, len(c.parameters))
	var subResult validation

	var g errgroup.Group
	for i, o := range c.options {
		g.Go(func() error {
			verr, err := o.validate(ctx, siblings, invocation)
			optErrs[i] = verr
			return err
		})
	}
	for i, p := range c.parameters {
		g.Go(func() error {
			if p.mandatory && !p.IsSet() {
				paramErrs[i] = newMandatoryParameterError(p.Usage(), invocation)
				return nil
			}
			verr, err := p.validate(ctx, siblings, p.Usage(), false)
			paramErrs[i] = verr
			return err
		})
	}
	if sub := c.Selected(); sub != nil {
		g.Go(func() error {
			var err error
			subResult, err = sub.validate(ctx, true)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		LoggerFrom(ctx).Debug("validation aborted", "command", invocation, "err", err)
		return validation{}, err
	}

	errs := append([]*ValidationError(nil), c.tokenErrs...)
	for _, e := range optErrs {
		if e != nil {
			errs = append(errs, e)
		}
	}
	for _, e := range paramErrs {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if !subResult.ok && subResult.err != nil {
		errs = append(errs, subResult.err)
	}
	if len(errs) == 0 {
		return validation{ok: true}, nil
	}

	kind := KindCommandAggregate
	if nested {
		kind = KindSubCommandAggregate
	}
	return validation{err: newCommandError(kind, invocation, errs)}, nil
}

// IsFault reports whether err returned by Parse is neither a validation
// report nor the help sentinel.
func IsFault(err error) bool {
	if err == nil || errors.Is(err, ErrHelpShown) {
		return false
	}
	var verr *ValidationError
	return !errors.As(err, &verr)
}
