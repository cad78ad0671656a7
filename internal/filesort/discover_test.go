// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	return fs
}

func TestDiscover(t *testing.T) {
	fs := memTree(t, map[string]string{
		"src/b.txt":          "b",
		"src/a.go":           "a",
		"src/sub/c.TXT":      "c",
		"src/sub/deep/READ":  "d",
		"src/dist/old.txt":   "skip me",
		"elsewhere/none.txt": "not under src",
	})
	require.NoError(t, fs.MkdirAll("src/empty", 0o755))

	files, err := Discover(context.Background(), fs, "src", filepath.Join("src", "dist"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("src", "a.go"),
		filepath.Join("src", "b.txt"),
		filepath.Join("src", "sub", "c.TXT"),
		filepath.Join("src", "sub", "deep", "READ"),
	}, files)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), afero.NewMemMapFs(), "nope")
	require.ErrorIs(t, err, ErrDiscover)
}

func TestDiscover_Cancelled(t *testing.T) {
	fs := memTree(t, map[string]string{"src/a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, fs, "src")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("r"), 0o644))

	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := Discover(context.Background(), afero.NewOsFs(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real.txt")}, files)
}
