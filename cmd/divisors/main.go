// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the divisors command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/fanout/cmd/cmdsetup"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// newRootCmd builds the root command. cancel is called when the signal watchdog gives up.
func newRootCmd(cancel context.CancelFunc) *cli.Command {
	before, after := cmdsetup.Hooks(cancel)

	return &cli.Command{
		Name:  "divisors",
		Usage: "divisors [--workers N] [NUMBER...]",
		Description: `Divisors verifies a built-in table of numbers and their divisors, first one number
at a time and then on a pool of isolated workers, and compares how long each run took.

Any numbers given as arguments are then factorized on the same pool.`,
		Version:   cmdsetup.VersionString(),
		Copyright: cmdsetup.Copyright,
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			cmdsetup.Workers("Number of isolated workers, 0 means one per CPU"),
			cmdsetup.LogFormat(),
		},
		Before: before,
		After:  after,
		Action: actionFunc,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := newRootCmd(cancel).Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}
}
