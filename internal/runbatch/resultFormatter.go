// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// ErrWriteTable is returned when the results table cannot be rendered.
var ErrWriteTable = errors.New("failed to write results table")

// OutputOptions controls the results table.
type OutputOptions struct {
	// FailedOnly omits successful results.
	FailedOnly bool
	// FormatValue renders a successful value. If nil, fmt.Sprint is used.
	FormatValue func(any) string
}

// DefaultOutputOptions returns the default options: every result, values printed with fmt.Sprint.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{}
}

// WriteTable renders the results as a table, one row per result in input order.
func (r Results[I, O]) WriteTable(w io.Writer, opts *OutputOptions) error {
	if opts == nil {
		opts = DefaultOutputOptions()
	}

	format := opts.FormatValue
	if format == nil {
		format = func(v any) string { return fmt.Sprint(v) }
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Input", "Status", "Worker", "Elapsed", "Detail")

	for i, res := range r {
		if res == nil {
			if err := table.Append(strconv.Itoa(i), "", "Missing", "", "", ""); err != nil {
				return errors.Join(ErrWriteTable, err)
			}

			continue
		}

		if opts.FailedOnly && res.Status == ResultStatusSuccess {
			continue
		}

		detail := format(res.Value)
		if res.Error != nil {
			detail = res.Error.Error()
		}

		if err := table.Append(
			strconv.Itoa(res.Index),
			fmt.Sprint(res.Input),
			res.Status.String(),
			res.Worker,
			res.Elapsed.Round(time.Microsecond).String(),
			detail,
		); err != nil {
			return errors.Join(ErrWriteTable, err)
		}
	}

	if err := table.Render(); err != nil {
		return errors.Join(ErrWriteTable, err)
	}

	return nil
}
