// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/matt-FFFFFF/fanout/internal/progress"
	"github.com/matt-FFFFFF/fanout/internal/runbatch"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

var (
	// ErrSourceDir is returned when the source does not exist or is not a directory.
	ErrSourceDir = errors.New("source directory does not exist or is not a directory")
	// ErrCreateDest is returned when the output directory cannot be created.
	ErrCreateDest = errors.New("failed to create output directory")
)

// DefaultDest is the output directory used when none is given.
const DefaultDest = "dist"

// Sorter copies every regular file under Source into extension buckets under Dest.
type Sorter struct {
	FS       afero.Fs  // Filesystem to use, nil means FsFactory()
	Source   string    // Directory to read from
	Dest     string    // Directory to write buckets to, empty means DefaultDest
	Workers  int       // Size of the copy pool, below 1 means runbatch.DefaultIOConcurrency
	Progress io.Writer // Where to draw a progress bar, nil for none
}

// Results are the per-file outcomes of a sort: input is the source path, value the destination path.
type Results = runbatch.Results[string, string]

// Run validates the source, creates the output directory, discovers the files and copies them
// through a concurrent pool. The returned error is only set when the sort could not start;
// per-file failures are reported in the results.
func (s *Sorter) Run(ctx context.Context) (Results, error) {
	fs := s.FS
	if fs == nil {
		fs = FsFactory()
	}

	dest := s.Dest
	if dest == "" {
		dest = DefaultDest
	}

	logger := ctxlog.Logger(ctx)

	info, err := fs.Stat(s.Source)
	if err != nil || !info.IsDir() {
		logger.Error(fmt.Sprintf("Source directory does not exist or is not a directory: %s", s.Source))

		if err == nil {
			return nil, fmt.Errorf("%w: %s", ErrSourceDir, s.Source)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrSourceDir, s.Source, err)
	}

	if err := EnsureDir(fs, dest); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateDest, dest, err)
	}

	logger.Info(fmt.Sprintf("Sorting files from: %s", s.Source))
	logger.Info(fmt.Sprintf("Output directory: %s", dest))

	var skip []string
	if rel, ok := within(s.Source, dest); ok {
		skip = append(skip, filepath.Join(s.Source, rel))
	}

	files, err := Discover(ctx, fs, s.Source, skip...)
	if err != nil {
		return nil, err
	}

	logger.Info("discovered files", "count", len(files))

	copier := &Copier{FS: fs, Dest: dest}

	var rep progress.Reporter = progress.NullReporter{}
	if s.Progress != nil && len(files) > 0 {
		rep = newProgressBar(s.Progress, len(files))
		ctx = progress.WithReporter(ctx, rep)
	}

	batch := &runbatch.ParallelBatch[string, string]{
		Label:  "sort " + s.Source,
		Inputs: files,
		Func:   copier.Copy,
		Pool:   runbatch.NewPool[string, string](runbatch.WorkloadIO, s.Workers),
	}

	results := batch.Run(ctx)
	rep.Close()

	logger.Info("Sorting complete.",
		"copied", len(results)-len(results.Failed()),
		"failed", len(results.Failed()))

	return results, nil
}

// newProgressBar returns a reporter that advances a bar on w once per finished file.
// Closing the reporter waits for the queued events and finishes the bar.
func newProgressBar(w io.Writer, total int) progress.Reporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Copying"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)

	rep := progress.NewChannelReporter(2 * total)
	rep.Listen(progress.ListenerFunc(func(ev progress.Event) {
		if ev.Type.Done() {
			_ = bar.Add(1)
		}
	}))

	return &barReporter{ChannelReporter: rep, bar: bar}
}

type barReporter struct {
	*progress.ChannelReporter
	bar *progressbar.ProgressBar
}

func (r *barReporter) Close() {
	r.ChannelReporter.Close()
	_ = r.bar.Finish()
}

// within reports whether path lies inside (or is) dir, and if so returns path relative to dir.
func within(dir, path string) (string, bool) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return rel, true
}
