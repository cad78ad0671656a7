// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package divisors

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/runbatch"
)

var (
	// ErrNotPositive is returned when asked for the divisors of a number below 1.
	ErrNotPositive = errors.New("number must be a positive integer")
	// ErrInvalidInput is returned when a command line argument is not an integer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAssertion is returned when computed divisors differ from the expected ones.
	ErrAssertion = errors.New("assertion failed")
)

var _ runbatch.WorkerFunc[int, []int] = Worker

// Of returns every positive divisor of n in increasing order, including 1 and n.
func Of(n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrNotPositive, n)
	}

	var divs []int

	for i := 1; i <= n; i++ {
		if n%i == 0 {
			divs = append(divs, i)
		}
	}

	return divs, nil
}

// Worker is the batch worker for Of. It logs each completed number with the worker's logger.
func Worker(ctx context.Context, n int) ([]int, error) {
	divs, err := Of(n)
	if err != nil {
		return nil, err
	}

	ctxlog.Info(ctx, fmt.Sprintf("Done factorizing %d", n), "divisors", len(divs))

	return divs, nil
}

// ParseArgs converts command line arguments to integers.
// The first argument that is not an integer yields ErrInvalidInput.
func ParseArgs(args []string) ([]int, error) {
	nums := make([]int, 0, len(args))

	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, a)
		}

		nums = append(nums, n)
	}

	return nums, nil
}

// Case is a number and its expected divisors.
type Case struct {
	N    int
	Want []int
}

// SelfTest holds the numbers the divisors command verifies on every run.
var SelfTest = []Case{
	{N: 128, Want: []int{1, 2, 4, 8, 16, 32, 64, 128}},
	{N: 255, Want: []int{1, 3, 5, 15, 17, 51, 85, 255}},
	{N: 99999, Want: []int{1, 3, 9, 41, 123, 271, 369, 813, 2439, 11111, 33333, 99999}},
	{N: 10651060, Want: []int{
		1, 2, 4, 5, 7, 10, 14, 20, 28, 35, 70, 140, 76079, 152158,
		304316, 380395, 532553, 760790, 1065106, 1521580, 2130212,
		2662765, 5325530, 10651060,
	}},
}

// Numbers returns the inputs of the cases, in order.
func Numbers(cases []Case) []int {
	nums := make([]int, len(cases))
	for i, c := range cases {
		nums[i] = c.N
	}

	return nums
}

// Verify checks results, in input order, against cases.
// Every mismatch or failed result is reported in the returned error, which wraps ErrAssertion.
func Verify(results runbatch.Results[int, []int], cases []Case) error {
	if len(results) != len(cases) {
		return fmt.Errorf("%w: got %d results for %d numbers", ErrAssertion, len(results), len(cases))
	}

	var errs []error

	for i, c := range cases {
		res := results[i]

		switch {
		case res == nil:
			errs = append(errs, fmt.Errorf("%w: no result for %d", ErrAssertion, c.N))
		case res.Error != nil:
			errs = append(errs, fmt.Errorf("%w: %d failed: %w", ErrAssertion, c.N, res.Error))
		case res.Input != c.N:
			errs = append(errs, fmt.Errorf("%w: result %d is for %d, want %d", ErrAssertion, i, res.Input, c.N))
		case !slices.Equal(res.Value, c.Want):
			errs = append(errs, fmt.Errorf("%w: divisors of %d = %v, want %v", ErrAssertion, c.N, res.Value, c.Want))
		}
	}

	return errors.Join(errs...)
}

// Equal reports whether two runs over the same inputs produced the same divisors and errors.
func Equal(a, b runbatch.Results[int, []int]) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d results vs %d", ErrAssertion, len(a), len(b))
	}

	var errs []error

	for i := range a {
		if a[i] == nil || b[i] == nil {
			errs = append(errs, fmt.Errorf("%w: missing result at index %d", ErrAssertion, i))
			continue
		}

		if a[i].Status != b[i].Status || !slices.Equal(a[i].Value, b[i].Value) {
			errs = append(errs, fmt.Errorf("%w: results for %d differ: %v vs %v",
				ErrAssertion, a[i].Input, a[i].Value, b[i].Value))
		}
	}

	return errors.Join(errs...)
}
