// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// ArgvSplitter splits a partial command line into words the way the
// user's shell would.
type ArgvSplitter func(line string) ([]string, error)

const (
	promptContentParam  = "current-prompt-content"
	cursorPositionParam = "cursor-position"
)

// NewCompletionCommand returns a "completion" command to add to a root
// command. It is invoked by shell completion scripts as
//
//	prog completion "<current prompt content>" <cursor word index>
//
// and prints the candidates for the word under the cursor, separated by
// spaces. split defaults to shlex.Split.
func NewCompletionCommand(split ArgvSplitter) *Command {
	if split == nil {
		split = shlex.Split
	}
	cmd := MustNew(CommandArg{
		Name:        "completion",
		Description: "print completion candidates for a partial command line",
		Standalone:  true,
		Parameters: []ParameterArg{
			{
				Name:        promptContentParam,
				Description: "The current content typed in the prompt.",
				Mandatory:   true,
			},
			{
				Name:        cursorPositionParam,
				Description: "Index of the word where the cursor is positioned.",
				Mandatory:   true,
				Validator: ValidateWith(func(_ context.Context, value *string, _ Values) (Result, error) {
					if value == nil {
						return Valid(), nil
					}
					n, err := strconv.Atoi(*value)
					return Check(err == nil && n >= 0), nil
				}),
			},
		},
	})
	cmd.SetAction(func(ctx context.Context, values Values) (any, error) {
		prompt, _ := values.String(promptContentParam)
		pos, _ := values.String(cursorPositionParam)
		cword, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("cursor position %q: %w", pos, err)
		}

		head, prefix := prompt, ""
		if i := strings.LastIndexByte(prompt, ' '); i >= 0 {
			head, prefix = prompt[:i], prompt[i+1:]
		} else {
			head = ""
		}
		words, err := split(head)
		if err != nil {
			return nil, fmt.Errorf("splitting prompt: %w", err)
		}

		argv := []string{""}
		if len(words) > 0 {
			argv = append(argv, words[0])
			argv = append(argv, words[1:max(1, min(cword, len(words)))]...)
		}

		root := cmd.Root()
		candidates, err := root.Complete(ctx, argv, prefix)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(root.environment().Stdout, strings.Join(candidates, " ")+"\n"); err != nil {
			return nil, fmt.Errorf("writing candidates: %w", err)
		}
		return candidates, nil
	})
	return cmd
}
