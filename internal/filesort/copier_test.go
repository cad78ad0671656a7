// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oldTime = time.Date(2020, time.March, 14, 15, 9, 26, 0, time.UTC)

func TestCopier_Copy(t *testing.T) {
	fs := memTree(t, map[string]string{"src/docs/report.TXT": "quarterly numbers"})
	require.NoError(t, fs.Chtimes("src/docs/report.TXT", oldTime, oldTime))

	c := &Copier{FS: fs, Dest: "dist"}

	dst, err := c.Copy(context.Background(), filepath.Join("src", "docs", "report.TXT"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("dist", "txt", "report.TXT"), dst)

	data, err := afero.ReadFile(fs, dst)
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(data))

	info, err := fs.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(oldTime), "modification time should be preserved, got %v", info.ModTime())

	src, err := afero.ReadFile(fs, "src/docs/report.TXT")
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(src), "source must be left in place")

	entries, err := afero.ReadDir(fs, filepath.Join("dist", "txt"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should be left behind")
}

func TestCopier_CopyNoExtension(t *testing.T) {
	fs := memTree(t, map[string]string{"src/README": "read me"})
	c := &Copier{FS: fs, Dest: "out"}

	dst, err := c.Copy(context.Background(), filepath.Join("src", "README"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", OthersBucket, "README"), dst)
}

func TestCopier_CopyMissingSource(t *testing.T) {
	c := &Copier{FS: afero.NewMemMapFs(), Dest: "out"}

	_, err := c.Copy(context.Background(), filepath.Join("src", "gone.txt"))
	require.ErrorIs(t, err, ErrFileCopy)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "gone.txt")
}

func TestCopier_CopyReadOnlyDestination(t *testing.T) {
	fs := memTree(t, map[string]string{"src/a.txt": "a"})
	c := &Copier{FS: afero.NewReadOnlyFs(fs), Dest: "out"}

	_, err := c.Copy(context.Background(), filepath.Join("src", "a.txt"))
	require.ErrorIs(t, err, ErrFileCopy)
}

func TestCopier_CopyOnDisk(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "photo.JPG")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte{0xff, 0xd8, 0xff}, 0o640))
	require.NoError(t, os.Chtimes(src, oldTime, oldTime))

	c := &Copier{FS: afero.NewOsFs(), Dest: filepath.Join(root, "out")}

	dst, err := c.Copy(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out", "jpg", "photo.JPG"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(oldTime))
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopier_CopyCancelled(t *testing.T) {
	fs := memTree(t, map[string]string{"src/a.txt": "a"})
	c := &Copier{FS: fs, Dest: "out"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Copy(ctx, filepath.Join("src", "a.txt"))
	require.ErrorIs(t, err, context.Canceled)

	exists, err := afero.Exists(fs, filepath.Join("out", "txt", "a.txt"))
	require.NoError(t, err)
	assert.False(t, exists)
}
