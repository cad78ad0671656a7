// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/fanout/cmd/cmdsetup"
	"github.com/matt-FFFFFF/fanout/internal/config"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/filesort"
	"github.com/matt-FFFFFF/fanout/internal/runbatch"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// settings are the effective options of a run, after merging the config file and the flags.
type settings struct {
	dest     string
	workers  int
	strict   bool
	progress bool
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	source := cmd.Args().First()
	if source == "" || cmd.Args().Len() > 1 {
		logger.Error("Please provide exactly one source directory.")
		return cli.Exit(cliExitStr, 1)
	}

	s, err := resolve(ctx, cmd)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load settings: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	sorter := &filesort.Sorter{
		Source:  source,
		Dest:    s.dest,
		Workers: s.workers,
	}

	if s.progress {
		sorter.Progress = cmd.ErrWriter
	}

	res, err := sorter.Run(ctx)
	if err != nil {
		logger.Debug("sort did not start", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if cmd.Bool(summaryFlag) {
		if err := res.WriteTable(cmd.Writer, runbatch.DefaultOutputOptions()); err != nil {
			logger.Error(fmt.Sprintf("Failed to write summary: %s", err.Error()))
		}
	}

	if !res.HasError() {
		return nil
	}

	logger.Warn(fmt.Sprintf("%d of %d files could not be copied", len(res.Failed()), len(res)))

	if s.strict {
		logger.Error("Some files failed to copy and --strict is set.", "error", res.Err())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// resolve returns the settings of the run. Values from the --config file apply unless the
// matching flag was given on the command line.
func resolve(ctx context.Context, cmd *cli.Command) (*settings, error) {
	s := &settings{
		dest:     cmd.String(outputDirFlag),
		workers:  cmd.Int(cmdsetup.WorkersFlag),
		strict:   cmd.Bool(strictFlag),
		progress: cmd.Bool(progressFlag),
	}

	url := cmd.String(configFlag)
	if url == "" {
		return s, nil
	}

	cfg, err := config.FetchSorter(ctx, url)
	if err != nil {
		return nil, err
	}

	if cfg.OutputDir != nil && !cmd.IsSet(outputDirFlag) {
		s.dest = *cfg.OutputDir
	}

	if cfg.Workers != nil && !cmd.IsSet(cmdsetup.WorkersFlag) {
		s.workers = *cfg.Workers
	}

	if cfg.Strict != nil && !cmd.IsSet(strictFlag) {
		s.strict = *cfg.Strict
	}

	if cfg.Progress != nil && !cmd.IsSet(progressFlag) {
		s.progress = *cfg.Progress
	}

	ctxlog.Debug(ctx, "settings resolved", "config", url, "output_dir", s.dest, "workers", s.workers,
		"strict", s.strict, "progress", s.progress)

	return s, nil
}
