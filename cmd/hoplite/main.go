// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hoplite parses arguments against a command tree described in a
// TOML, YAML or HCL file and prints the bound values as JSON.
//
//	hoplite [--def FILE] [--no-color] [--verbose] [--] ARGS...
//
// Without --def, the file named by $HOPLITE_DEF is used, then the nearest
// hoplite.toml, hoplite.yaml, hoplite.yml or hoplite.hcl in the current
// directory or its parents. A "completion" sub-command is added to the
// tree unless the definition declares one.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shayne/yargs"
	"github.com/yeetrun/hoplite/pkg/clidef"
	"github.com/yeetrun/hoplite/pkg/hoplite"
	"github.com/yeetrun/hoplite/pkg/tui"
)

type globalFlagsParsed struct {
	Def     string `flag:"def" help:"Command definition file (HOPLITE_DEF)"`
	NoColor bool   `flag:"no-color" help:"Disable colors in help and error output (NO_COLOR)"`
	Verbose bool   `flag:"verbose" help:"Log argument resolution to stderr"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	rest := result.RemainingArgs
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	return result.Flags, rest, nil
}

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	ctx = hoplite.WithLogger(ctx, logger)

	cmd, err := loadCommand(flags.Def)
	if err != nil {
		logger.Error("loading command definition", "err", err)
		return 2
	}
	logger.Debug("command loaded", "name", cmd.Name())

	cfg := hoplite.PlainRenderConfig()
	if !flags.NoColor {
		if f, ok := stdout.(*os.File); ok {
			cfg.Colors = tui.ForFile(f)
		}
		if f, ok := stderr.(*os.File); ok {
			cfg.ErrorColors = tui.ForFile(f)
		}
	}
	cmd.SetNoExit(true).
		SetRenderConfig(cfg).
		SetEnv(hoplite.Env{Stdout: stdout, Stderr: stderr})

	out, err := cmd.Run(ctx, rest)
	var verr *hoplite.ValidationError
	switch {
	case errors.Is(err, hoplite.ErrHelpShown):
		return 0
	case errors.As(err, &verr):
		return 1
	case err != nil:
		logger.Error("parsing arguments", "err", err)
		return 1
	}

	values, ok := out.(hoplite.Values)
	if !ok {
		return 0
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		logger.Error("writing values", "err", err)
		return 1
	}
	return 0
}

func loadCommand(path string) (*hoplite.Command, error) {
	if path == "" {
		path = os.Getenv("HOPLITE_DEF")
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, err = clidef.Find(cwd)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no definition file found, pass --def or set HOPLITE_DEF")
		} else if err != nil {
			return nil, err
		}
	}
	def, err := clidef.Load(path)
	if err != nil {
		return nil, err
	}
	cmd, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cmd.SubCommand("completion") == nil {
		if err := cmd.AddSubCommand(hoplite.NewCompletionCommand(nil)); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}
