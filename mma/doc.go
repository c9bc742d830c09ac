// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mma provides the public catalog of matrix-multiply-accumulate shapes.
//
// Each Shape names one hardware configuration (M×N×K per instruction and the
// number of output blocks). A Descriptor exposes its geometry, the per-thread
// element counts for a given warp size and the lane-to-element offset map used
// when storing accumulators.
//
// Example:
//
//	d := mma.Describe(mma.M32xN32xK8B1)
//	perThread := d.OutElementsPerThread(64) // 16
//	offsets := d.OffsetMap()                // 32 entries, interleaved
package mma
