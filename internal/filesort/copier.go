// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrFileCopy is returned when a file copy operation fails.
	ErrFileCopy = errors.New("file copy error")
	// ErrNotRegular is returned when asked to copy something that is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
)

// Copier copies files into extension buckets under Dest.
type Copier struct {
	FS   afero.Fs // Filesystem holding both the source files and Dest
	Dest string   // Root of the bucket directories
}

// Destination returns the path a file will be copied to.
func (c *Copier) Destination(path string) string {
	return filepath.Join(c.Dest, Bucket(path), filepath.Base(path))
}

// Copy copies the file at path to its bucket, keeping its permission bits and modification time,
// and returns the destination path. The bucket is created if needed.
// Errors wrap ErrFileCopy and name the source path; a file is never left half written at the
// destination because the data is written to a temporary file and renamed into place.
func (c *Copier) Copy(ctx context.Context, path string) (string, error) {
	dst := c.Destination(path)

	err := c.copy(ctx, path, dst)
	if err != nil {
		ctxlog.Error(ctx, fmt.Sprintf("Failed to copy %s", path), "error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrFileCopy, path, err)
	}

	ctxlog.Info(ctx, fmt.Sprintf("Copied: %s -> %s", path, dst))

	return dst, nil
}

func (c *Copier) copy(ctx context.Context, path, dst string) (err error) {
	if err := EnsureDir(c.FS, filepath.Dir(dst)); err != nil {
		return err
	}

	src, err := c.FS.Open(path)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	info, err := src.Stat()
	if err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return ErrNotRegular
	}

	tmp, err := afero.TempFile(c.FS, filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = c.FS.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, &ctxReader{ctx: ctx, r: src}); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	// Metadata is applied after Close, which may itself bump the modification time.
	if err = c.FS.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}

	if err = c.FS.Chtimes(tmpName, info.ModTime(), info.ModTime()); err != nil {
		return err
	}

	return c.FS.Rename(tmpName, dst)
}

// ctxReader stops a copy once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	return r.r.Read(p)
}

