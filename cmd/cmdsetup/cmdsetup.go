// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdsetup holds the flags and hooks shared by the fanout command line tools.
package cmdsetup

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/fanout"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	// LogFormatFlag selects the format of the process logger.
	LogFormatFlag = "log-format"
	// WorkersFlag sets the size of the worker pool.
	WorkersFlag = "workers"
	// Copyright is shown in the help output of every tool.
	Copyright = "Copyright (c) matt-FFFFFF 2025. All rights reserved."
)

// LogFormat returns the --log-format flag.
func LogFormat() cli.Flag {
	return &cli.StringFlag{
		Name:  LogFormatFlag,
		Usage: "Log output format, one of: pretty, json",
		Value: ctxlog.FormatPretty.String(),
	}
}

// Workers returns the --workers flag with the given usage text.
// Zero means the default size of the pool.
func Workers(usage string) cli.Flag {
	return &cli.IntFlag{
		Name:  WorkersFlag,
		Usage: usage,
		Value: 0,
	}
}

// VersionString formats the build version and commit for cli.Command.Version.
func VersionString() string {
	return fmt.Sprintf("%s (commit: %s)", fanout.Version, fanout.Commit)
}

// Hooks returns the Before and After hooks of a root command.
// Before builds the process logger from --log-format, stores it in the context and starts the
// signal watchdog, which calls cancel on the second signal of a kind. After stops the watchdog.
func Hooks(cancel context.CancelFunc) (cli.BeforeFunc, cli.AfterFunc) {
	stop := func() {}

	before := func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		format, err := ctxlog.ParseFormat(cmd.String(LogFormatFlag))
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}

		logger := ctxlog.Init(ctxlog.WithName(cmd.Name), ctxlog.WithFormat(format))
		ctx = ctxlog.New(ctx, logger)
		stop = signalbroker.Listen(ctx, cancel)

		return ctx, nil
	}

	after := func(_ context.Context, _ *cli.Command) error {
		stop()
		return nil
	}

	return before, after
}
