// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colourises console log output with ANSI escape codes.
// Colour is disabled by NO_COLOR, forced by FORCE_COLOR, and otherwise follows whether
// stdout is a terminal, as reported by golang.org/x/term.
package color
