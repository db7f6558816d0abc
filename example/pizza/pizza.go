// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Pizza builds a pizza from the command line and prints it as JSON.
//
//	go run ./example/pizza -b tomato -c mozzarella -c cheddar --veggie
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"slices"

	"github.com/yeetrun/hoplite/pkg/hoplite"
	"tailscale.com/util/must"
)

var cheeses = []string{"mozzarella", "provolone", "cheddar", "parmesan"}

func newPizza() *hoplite.Command {
	pizza := hoplite.MustNew(hoplite.CommandArg{
		Name:            "pizza",
		Description:     "Create your own pizza",
		LongDescription: "This command allows to create a pizza.\nGive it a try!",
		Options: []hoplite.OptionArg{
			{
				Short:       "b",
				Long:        "base",
				Description: "Select the base of the pizza",
				Mandatory:   true,
				Parameter: &hoplite.ParameterArg{
					Name:      "tomato|cream",
					Validator: hoplite.AllowedValues("tomato", "cream"),
				},
			},
			{Short: "t", Long: "tomato", Description: "Choose if you want tomato"},
			{
				Short:       "p",
				Long:        "peppers",
				Description: "Select the kind of pepper you want",
				Parameter: &hoplite.ParameterArg{
					Name:      "color",
					Variadic:  true,
					Validator: hoplite.AllowedValues("green", "yellow", "red"),
				},
			},
			{
				Short:       "c",
				Long:        "cheese",
				Description: "Select the cheese you want",
				Parameter: &hoplite.ParameterArg{
					Name:     "cheese",
					Variadic: true,
					Validator: hoplite.ValidateWith(func(_ context.Context, v *string, _ hoplite.Values) (hoplite.Result, error) {
						if v == nil || slices.Contains(cheeses, *v) {
							return hoplite.Valid(), nil
						}
						return hoplite.Result{}, hoplite.NewParameterValueError("-c, --cheese [cheese...]", *v, "Unknown cheese")
					}),
				},
			},
			{Long: "veggie", Description: "Choose it if you don't want meat"},
			{
				Short:       "m",
				Long:        "meat",
				Description: "Select the meat you want",
				Parameter: &hoplite.ParameterArg{
					Name:     "meat",
					Variadic: true,
					Validator: hoplite.ValidateWith(func(_ context.Context, v *string, siblings hoplite.Values) (hoplite.Result, error) {
						if v == nil {
							return hoplite.Valid(), nil
						}
						if siblings.Bool("veggie") {
							return hoplite.Result{}, hoplite.NewParameterValueError("-m, --meat [meat...]", *v, "You cannot select meat if you choose veggie")
						}
						return hoplite.Check(slices.Contains([]string{"ham", "ground-beef", "chicken"}, *v)), nil
					}),
				},
			},
			{
				Short:       "n",
				Long:        "name",
				Description: "Choose a name for your pizza",
				Parameter:   &hoplite.ParameterArg{Name: "my-very-cool-name"},
			},
		},
		Action: func(_ context.Context, values hoplite.Values) (any, error) {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return values, enc.Encode(values)
		},
	})
	must.Do(pizza.AddSubCommand(hoplite.NewCompletionCommand(nil)))
	return pizza
}

func main() {
	if _, err := newPizza().Run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
