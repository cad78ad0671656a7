// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package divisors enumerates the divisors of positive integers by trial division.
// It also holds the built-in self-test values used by the divisors command to check that
// serial and pooled runs agree.
package divisors
