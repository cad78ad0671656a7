// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrDiscover is returned when the source tree cannot be walked.
var ErrDiscover = errors.New("file discovery error")

// Discover walks root recursively and returns the paths of the regular files beneath it,
// in lexical order. Symlinks are not followed and are not returned. Directories listed in
// skip are not descended into. Unreadable subdirectories are logged and skipped.
func Discover(ctx context.Context, fs afero.Fs, root string, skip ...string) ([]string, error) {
	skipped := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = struct{}{}
	}

	var files []string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}

			ctxlog.Warn(ctx, "skipping unreadable path", "path", path, "error", err)

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			if _, ok := skipped[filepath.Clean(path)]; ok && path != root {
				ctxlog.Debug(ctx, "skipping directory", "path", path)
				return filepath.SkipDir
			}

			return nil
		}

		if info.Mode().IsRegular() {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrDiscover, err)
	}

	return files, nil
}
