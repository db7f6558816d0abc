// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clidef loads hoplite command trees from TOML, YAML or HCL
// documents.
//
// A definition mirrors hoplite.CommandArg:
//
//	name = "pizza"
//	description = "Create your own pizza"
//
//	[[options]]
//	short = "b"
//	long = "base"
//	mandatory = true
//	parameter = { name = "base", mandatory = true, allowed = ["tomato", "cream"] }
//
//	[[commands]]
//	name = "order"
//	parameters = [{ name = "size", allowed = ["small", "large"] }]
package clidef

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/yeetrun/hoplite/pkg/hoplite"
	"github.com/yeetrun/hoplite/pkg/validate"
	"gopkg.in/yaml.v3"
)

// FileNames are the definition files looked up by Find, in order.
var FileNames = []string{"hoplite.toml", "hoplite.yaml", "hoplite.yml", "hoplite.hcl"}

type Command struct {
	Name            string      `toml:"name" yaml:"name" hcl:"name,label"`
	Description     string      `toml:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	LongDescription string      `toml:"long_description,omitempty" yaml:"long_description,omitempty" hcl:"long_description,optional"`
	Options         []Option    `toml:"options,omitempty" yaml:"options,omitempty" hcl:"option,block"`
	Parameters      []Parameter `toml:"parameters,omitempty" yaml:"parameters,omitempty" hcl:"parameter,block"`
	Commands        []Command   `toml:"commands,omitempty" yaml:"commands,omitempty" hcl:"command,block"`
	Help            *Option     `toml:"help,omitempty" yaml:"help,omitempty" hcl:"help,block"`
	NoHelp          bool        `toml:"no_help,omitempty" yaml:"no_help,omitempty" hcl:"no_help,optional"`
}

type Option struct {
	Short       string     `toml:"short,omitempty" yaml:"short,omitempty" hcl:"short,optional"`
	Long        string     `toml:"long,omitempty" yaml:"long,omitempty" hcl:"long,optional"`
	Description string     `toml:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Mandatory   bool       `toml:"mandatory,omitempty" yaml:"mandatory,omitempty" hcl:"mandatory,optional"`
	Parameter   *Parameter `toml:"parameter,omitempty" yaml:"parameter,omitempty" hcl:"parameter,block"`
}

// Parameter declares a positional parameter or an option's value. At most
// one of Allowed, Pattern, Range and Version may be set.
type Parameter struct {
	Name        string   `toml:"name" yaml:"name" hcl:"name,label"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Mandatory   bool     `toml:"mandatory,omitempty" yaml:"mandatory,omitempty" hcl:"mandatory,optional"`
	Variadic    bool     `toml:"variadic,omitempty" yaml:"variadic,omitempty" hcl:"variadic,optional"`
	Allowed     []string `toml:"allowed,omitempty" yaml:"allowed,omitempty" hcl:"allowed,optional"`
	Pattern     string   `toml:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
	Range       []int    `toml:"range,omitempty" yaml:"range,omitempty" hcl:"range,optional"`
	Version     string   `toml:"version,omitempty" yaml:"version,omitempty" hcl:"version,optional"`
}

// ParseTOML decodes a TOML definition. Unknown keys are rejected.
func ParseTOML(data []byte) (*Command, error) {
	var cmd Command
	md, err := toml.Decode(string(data), &cmd)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &cmd, nil
}

// ParseYAML decodes a YAML definition. Unknown keys are rejected.
func ParseYAML(data []byte) (*Command, error) {
	var cmd Command
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// hclFile is the top-level body of an HCL definition: a single command
// block labelled with the command name.
type hclFile struct {
	Command Command `hcl:"command,block"`
}

// ParseHCL decodes an HCL definition. filename is only used in
// diagnostics.
func ParseHCL(data []byte, filename string) (*Command, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var def hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &def); diags.HasErrors() {
		return nil, diags
	}
	return &def.Command, nil
}

// Load reads the definition at path, choosing the format from its
// extension.
func Load(path string) (*Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cmd *Command
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cmd, err = ParseTOML(data)
	case ".yaml", ".yml":
		cmd, err = ParseYAML(data)
	case ".hcl":
		cmd, err = ParseHCL(data, path)
	default:
		return nil, fmt.Errorf("%s: unsupported definition format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cmd, nil
}

// Find looks for one of FileNames in startDir and its parents.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Arg converts c into a hoplite declaration.
func (c *Command) Arg() (hoplite.CommandArg, error) {
	arg := hoplite.CommandArg{
		Name:            c.Name,
		Description:     c.Description,
		LongDescription: c.LongDescription,
		NoHelpOption:    c.NoHelp,
	}
	for _, o := range c.Options {
		oa, err := o.arg()
		if err != nil {
			return hoplite.CommandArg{}, fmt.Errorf("command %q: %w", c.Name, err)
		}
		arg.Options = append(arg.Options, oa)
	}
	for _, p := range c.Parameters {
		pa, err := p.arg()
		if err != nil {
			return hoplite.CommandArg{}, fmt.Errorf("command %q: %w", c.Name, err)
		}
		arg.Parameters = append(arg.Parameters, pa)
	}
	if c.Help != nil {
		ha, err := c.Help.arg()
		if err != nil {
			return hoplite.CommandArg{}, fmt.Errorf("command %q: help: %w", c.Name, err)
		}
		arg.HelpOption = &ha
	}
	for i := range c.Commands {
		sub, err := c.Commands[i].Arg()
		if err != nil {
			return hoplite.CommandArg{}, fmt.Errorf("command %q: %w", c.Name, err)
		}
		arg.SubCommands = append(arg.SubCommands, sub)
	}
	return arg, nil
}

// Build converts c into a command tree.
func (c *Command) Build() (*hoplite.Command, error) {
	arg, err := c.Arg()
	if err != nil {
		return nil, err
	}
	return hoplite.New(arg)
}

func (o Option) arg() (hoplite.OptionArg, error) {
	arg := hoplite.OptionArg{
		Short:       o.Short,
		Long:        o.Long,
		Description: o.Description,
		Mandatory:   o.Mandatory,
	}
	if o.Parameter != nil {
		pa, err := o.Parameter.arg()
		if err != nil {
			return hoplite.OptionArg{}, fmt.Errorf("option %s%s: %w", o.Short, o.Long, err)
		}
		arg.Parameter = &pa
	}
	return arg, nil
}

func (p Parameter) arg() (hoplite.ParameterArg, error) {
	arg := hoplite.ParameterArg{
		Name:        p.Name,
		Description: p.Description,
		Mandatory:   p.Mandatory,
		Variadic:    p.Variadic,
	}
	set := 0
	for _, b := range []bool{len(p.Allowed) > 0, p.Pattern != "", len(p.Range) > 0, p.Version != ""} {
		if b {
			set++
		}
	}
	if set > 1 {
		return hoplite.ParameterArg{}, fmt.Errorf("parameter %q: allowed, pattern, range and version are exclusive", p.Name)
	}

	switch {
	case len(p.Allowed) > 0:
		arg.Validator = hoplite.AllowedValues(p.Allowed...)
	case p.Pattern != "":
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return hoplite.ParameterArg{}, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		arg.Validator = validate.Regexp(re)
	case len(p.Range) > 0:
		if len(p.Range) != 2 || p.Range[0] > p.Range[1] {
			return hoplite.ParameterArg{}, fmt.Errorf("parameter %q: range must be [min, max]", p.Name)
		}
		arg.Validator = validate.IntRange(p.Range[0], p.Range[1])
	case p.Version != "":
		v, err := validate.SemverConstraint(p.Version)
		if err != nil {
			return hoplite.ParameterArg{}, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		arg.Validator = v
	}
	return arg, nil
}
