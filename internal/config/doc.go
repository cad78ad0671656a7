// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional YAML settings file of the file sorter.
// Files may be local paths or any source understood by Hashicorp's go-getter.
package config
