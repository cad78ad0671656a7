// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// OthersBucket receives files without an extension.
const OthersBucket = "others"

const dirMode = 0o755

// Bucket returns the bucket for a file: its extension, lower-cased and without the dot.
// Names without an extension, names ending in a dot and dotfiles such as .bashrc go to OthersBucket.
func Bucket(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	if ext == "" {
		return OthersBucket
	}

	return strings.ToLower(ext)
}

// EnsureDir creates dir and any missing parents. It is safe to call concurrently for the same
// directory: losing a creation race is not an error as long as a directory ends up at dir.
func EnsureDir(fs afero.Fs, dir string) error {
	err := fs.MkdirAll(dir, dirMode)
	if err == nil {
		return nil
	}

	if info, statErr := fs.Stat(dir); statErr == nil && info.IsDir() {
		return nil
	}

	if errors.Is(err, os.ErrExist) {
		return &os.PathError{Op: "mkdir", Path: dir, Err: errors.New("exists and is not a directory")}
	}

	return err
}
