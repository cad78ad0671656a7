// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the filesorter command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/fanout/cmd/cmdsetup"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/filesort"
	"github.com/urfave/cli/v3"
)

const (
	outputDirFlag = "output_dir"
	configFlag    = "config"
	progressFlag  = "progress"
	summaryFlag   = "summary"
	strictFlag    = "strict"
)

// newRootCmd builds the root command. cancel is called when the signal watchdog gives up.
func newRootCmd(cancel context.CancelFunc) *cli.Command {
	before, after := cmdsetup.Hooks(cancel)

	return &cli.Command{
		Name:      "filesorter",
		Usage:     "filesorter [-o OUTPUT_DIR] SOURCE_DIR",
		ArgsUsage: "SOURCE_DIR",
		Description: `Filesorter copies every regular file below SOURCE_DIR into a folder of the output
directory named after the file's lower-cased extension. Files without an extension go to "others".
Copies run concurrently; a file that cannot be copied is logged and does not stop the others.

Settings may also be read from a YAML file given with --config, which accepts local paths and
Hashicorp go-getter URLs. Flags given on the command line take precedence over the file.`,
		Version:   cmdsetup.VersionString(),
		Copyright: cmdsetup.Copyright,
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    outputDirFlag,
				Aliases: []string{"o"},
				Usage:   "Path to output directory",
				Value:   filesort.DefaultDest,
			},
			cmdsetup.Workers("Number of concurrent copies"),
			&cli.StringFlag{
				Name:      configFlag,
				Usage:     "YAML settings file, local path or go-getter URL",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  progressFlag,
				Usage: "Draw a progress bar on stderr",
			},
			&cli.BoolFlag{
				Name:  summaryFlag,
				Usage: "Print a table of every file and its outcome",
			},
			&cli.BoolFlag{
				Name:  strictFlag,
				Usage: "Exit with status 1 if any file could not be copied",
			},
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
