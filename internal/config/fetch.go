// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/fanout/internal/ctxlog"
)

// ErrFetchConfig is returned when a configuration file cannot be retrieved from its URL.
var ErrFetchConfig = errors.New("failed to fetch config file")

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3 // scheme, host and path
)

// Fetch retrieves a single file using Hashicorp's go-getter syntax.
// Local paths are read in place, remote sources are downloaded to a
// temporary directory that is removed before Fetch returns.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrFetchConfig)
	}

	tmpDir, err := os.MkdirTemp("", "fanout-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// go-getter fetches directories, so remote URLs are split into the
	// directory to fetch and the file to read from it.
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrFetchConfig, err)
		}

		var dirURL string

		dirURL, fileName = splitGetterURL(url)
		if dirURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrFetchConfig, url)
		}

		req.Src = dirURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	ctxlog.Debug(ctx, "Fetching config", "src", req.Src, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	return data, nil
}

// FetchSorter retrieves and parses a Sorter definition from a go-getter URL.
func FetchSorter(ctx context.Context, url string) (*Sorter, error) {
	data, err := Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return ParseSorter(data)
}

// splitGetterURL returns the getter URL of the directory holding the file and the file name.
// A ref query is carried over to the directory URL.
func splitGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, getterRefSeparator); ok {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dirURL := strings.Join(parts, getterPathSeparator)
	if ref != "" {
		dirURL += getterRefSeparator + ref
	}

	return dirURL, fileName
}
