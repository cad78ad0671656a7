// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/divisors"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// logs receives the output of the process logger for every test in this package.
var logs bytes.Buffer

func TestMain(m *testing.M) {
	ctxlog.Init(ctxlog.WithWriter(&logs), ctxlog.WithFormat(ctxlog.FormatJSON))
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logs.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer

	cmd := newRootCmd(cancel)
	cmd.Writer = &out

	err := cmd.Run(ctx, append([]string{"divisors"}, args...))

	return out.String(), err
}

func TestSelfTest(t *testing.T) {
	out, err := run(t, "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Synchronous")
	assert.Contains(t, out, "Parallel")
	assert.Regexp(t, `times faster|not faster`, out)
	assert.Contains(t, logs.String(), "Synchronous results verified successfully!")
	assert.Contains(t, logs.String(), "Parallel results verified successfully!")
	assert.Contains(t, logs.String(), "Done factorizing 10651060")
}

func TestCommandLineNumbers(t *testing.T) {
	_, err := run(t, "--workers", "2", "12", "7")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "Factors of 12: [1 2 3 4 6 12]")
	assert.Contains(t, logs.String(), "Factors of 7: [1 7]")
}

func TestCommandLineNumbers_NotIntegers(t *testing.T) {
	_, err := run(t, "12", "abc")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "Please provide only integers as command line arguments.")
	assert.NotContains(t, logs.String(), "Factors of 12")
}

func TestCommandLineNumbers_NotPositive(t *testing.T) {
	_, err := run(t, "0", "3")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "An error occurred with command line argument 0")
	assert.Contains(t, logs.String(), "Factors of 3: [1 3]")
}

func TestSelfTest_AssertionFailureExits(t *testing.T) {
	code := -1

	stubs := gostub.Stub(&cli.OsExiter, func(c int) { code = c })
	defer stubs.Reset()

	stubs.Stub(&divisors.SelfTest, []divisors.Case{{N: 6, Want: []int{1, 6}}})

	_, err := run(t)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, logs.String(), "Synchronous results are wrong")
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "Parallel version was 2.00 times faster!", verdict(2*time.Second, time.Second))
	assert.Contains(t, verdict(time.Second, 2*time.Second), "not faster")
	assert.Contains(t, verdict(time.Second, 0), "not faster")
}
