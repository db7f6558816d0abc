// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hoplite is a declarative command-line engine. A CLI is described
// as a tree of commands, options and positional parameters; hoplite
// tokenizes an argument vector against that tree, binds values, validates
// them and either runs the selected command's action, renders help, or
// reports every problem it found in a single indented report.
//
// # Declaring a command
//
//	pizza := hoplite.MustNew(hoplite.CommandArg{
//	    Name:        "pizza",
//	    Description: "Create your own pizza",
//	    Options: []hoplite.OptionArg{
//	        {
//	            Short:     "b",
//	            Long:      "base",
//	            Mandatory: true,
//	            Parameter: &hoplite.ParameterArg{
//	                Name:      "tomato|cream",
//	                Validator: hoplite.AllowedValues("tomato", "cream"),
//	            },
//	        },
//	        {Short: "t", Long: "tomato", Description: "Choose if you want tomato"},
//	    },
//	})
//
//	out, err := pizza.Run(ctx, os.Args[1:])
//
// Without an action, the result is the command's Values:
//
//	values := out.(hoplite.Values)
//	base, _ := values.String("base")
//
// # Token syntax
//
//   - "--" ends option processing; every later token is a parameter value
//   - "-abc" is a cluster of the short options a, b and c
//   - "--name" is a long option
//   - a registered sub-command name hands every remaining token to it
//   - anything else fills the next free parameter; a variadic parameter
//     keeps absorbing values
//
// An option that owns a parameter always consumes the next token as its
// value, whatever it looks like.
//
// # Validators
//
// A parameter is validated by a static allow-list (AllowedValues) or by a
// ValidatorFunc. A ValidatorFunc receives the candidate value and the raw
// values already bound on the same command, so validators can depend on
// siblings. Before checking values, the function is probed once with a nil
// value; if the probe answers OneOf(...), that allow-list is used for every
// value instead of calling the function again. Returning a *ValidationError
// rejects the value with a custom message; any other error aborts parsing.
//
// # Failure handling
//
// Unknown options and unexpected parameters do not stop tokenization, and
// validation collects every failure of the tree before reporting. The report
// is written to the environment's stderr and the process exits with status
// 1, unless the root command is configured with NoExit, in which case the
// *ValidationError is returned.
package hoplite
