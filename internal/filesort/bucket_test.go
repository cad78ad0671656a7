// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "upper case extension", file: "report.TXT", want: "txt"},
		{name: "no extension", file: "README", want: OthersBucket},
		{name: "nested path", file: filepath.Join("a", "b", "photo.JpEg"), want: "jpeg"},
		{name: "double extension uses last", file: "archive.tar.gz", want: "gz"},
		{name: "dotfile", file: ".bashrc", want: OthersBucket},
		{name: "dotfile with extension", file: ".config.yaml", want: "yaml"},
		{name: "trailing dot", file: "weird.", want: OthersBucket},
		{name: "dot in directory only", file: filepath.Join("dir.d", "Makefile"), want: OthersBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.file))
		})
	}
}

func TestEnsureDir_Concurrent(t *testing.T) {
	filesystems := map[string]afero.Fs{
		"memory": afero.NewMemMapFs(),
		"os":     afero.NewBasePathFs(afero.NewOsFs(), t.TempDir()),
	}

	for name, fs := range filesystems {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join("/out", "txt")

			var wg sync.WaitGroup

			errs := make([]error, 32)

			for i := range errs {
				wg.Add(1)

				go func() {
					defer wg.Done()
					errs[i] = EnsureDir(fs, dir)
				}()
			}

			wg.Wait()

			for _, err := range errs {
				require.NoError(t, err)
			}

			entries, err := afero.ReadDir(fs, "/out")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "txt", entries[0].Name())
			assert.True(t, entries[0].IsDir())
		})
	}
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/txt", []byte("x"), 0o644))

	require.Error(t, EnsureDir(fs, "/out/txt"))
}
