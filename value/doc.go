// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package value provides the public API of the value dialect.
//
// The dialect models GPU kernels: modules holding functions and globals,
// lambdas, reductions, layout reorders and warp-synchronous MMA operations on
// buffers in explicit memory spaces.
//
// Example:
//
//	ctx := value.NewContext()
//	b := value.NewBuilder(ctx)
//	mod := value.BuildModule(b, value.UnknownLoc, "kernels")
//	mod.SetInsertionPointToBody(b)
//	f := value.BuildFunc(b, value.UnknownLoc, "scale", value.NewFunctionType(nil, nil), value.TargetGPU)
//	b.SetInsertionPointToEnd(f.EntryBlock())
//	value.BuildReturn(b, value.UnknownLoc)
//	if err := value.Verify(mod.Operation); err != nil {
//	    log.Fatal(err)
//	}
package value
