// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesort

import "github.com/spf13/afero"

// FsFactory returns the filesystem used when a Sorter has none.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
