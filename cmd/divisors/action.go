// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/fanout/cmd/cmdsetup"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/divisors"
	"github.com/matt-FFFFFF/fanout/internal/runbatch"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	pool := runbatch.NewPool[int, []int](runbatch.WorkloadCPU, cmd.Int(cmdsetup.WorkersFlag))
	nums := divisors.Numbers(divisors.SelfTest)

	logger.Info("--- Running Synchronous Factorization ---")

	serial, serialTime := runbatch.Timed(ctx, &runbatch.SerialBatch[int, []int]{
		Label:  "synchronous self-test",
		Inputs: nums,
		Func:   divisors.Worker,
	})
	logger.Info(fmt.Sprintf("Synchronous factorization took: %.4f seconds", serialTime.Seconds()))

	if err := divisors.Verify(serial, divisors.SelfTest); err != nil {
		logger.Error("Synchronous results are wrong", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	logger.Info("Synchronous results verified successfully!")
	logger.Info("--- Running Parallel Factorization ---")
	logger.Info(fmt.Sprintf("Using %d workers for parallel processing.", pool.Size()))

	parallel, parallelTime := runbatch.Timed(ctx, &runbatch.ParallelBatch[int, []int]{
		Label:  "parallel self-test",
		Inputs: nums,
		Func:   divisors.Worker,
		Pool:   pool,
	})
	logger.Info(fmt.Sprintf("Parallel factorization took: %.4f seconds", parallelTime.Seconds()))

	if err := divisors.Equal(serial, parallel); err != nil {
		logger.Error("Parallel results differ from synchronous results", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	logger.Info("Parallel results verified successfully!")

	if err := writeComparison(cmd.Writer, pool.Size(), serialTime, parallelTime); err != nil {
		logger.Error("Failed to write timing comparison", "error", err)
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return nil
	}

	logger.Info("--- Running with command line arguments (Parallel) ---")

	input, err := divisors.ParseArgs(args)
	if err != nil {
		logger.Error("Please provide only integers as command line arguments.", "error", err)
		return nil
	}

	res, took := runbatch.Timed(ctx, &runbatch.ParallelBatch[int, []int]{
		Label:  "command line numbers",
		Inputs: input,
		Func:   divisors.Worker,
		Pool:   pool,
	})
	logger.Info(fmt.Sprintf("Factorization for command line numbers took: %.4f seconds", took.Seconds()))

	for _, r := range res {
		if r.Error != nil {
			logger.Error(fmt.Sprintf("An error occurred with command line argument %d", r.Input), "error", r.Error)
			continue
		}

		logger.Info(fmt.Sprintf("Factors of %d: %v", r.Input, r.Value))
	}

	return nil
}

// writeComparison renders the timing table followed by a one line verdict.
func writeComparison(w io.Writer, workers int, serial, parallel time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header("Run", "Workers", "Seconds")

	if err := table.Append("Synchronous", "1", fmt.Sprintf("%.4f", serial.Seconds())); err != nil {
		return err
	}

	if err := table.Append("Parallel", fmt.Sprint(workers), fmt.Sprintf("%.4f", parallel.Seconds())); err != nil {
		return err
	}

	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, verdict(serial, parallel))

	return err
}

func verdict(serial, parallel time.Duration) string {
	if parallel > 0 && serial > parallel {
		return fmt.Sprintf("Parallel version was %.2f times faster!", serial.Seconds()/parallel.Seconds())
	}

	return "Parallel version was not faster or was slower (this can happen for small inputs)."
}
