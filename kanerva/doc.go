// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package kanerva implements the core of a Kanerva Sparse Distributed Memory:
// a content-addressable binary store built from a frozen population of
// randomly placed "hard" address locations, a Hamming-radius activation
// rule, and a per-location counter matrix that accumulates superposed
// writes. See Engine for the public surface.
package kanerva
