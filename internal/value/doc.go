// Package value implements the value dialect: functions, lambdas, modules and
// globals, reductions, MMA operations on GPU memory and the !value.range type.
//
// Register adds the dialect to an ir.Context. Builders insert at the
// insertion point of an ir.Builder and return typed wrappers around the
// created *ir.Operation; ir.Verify runs the per-operation verifiers.
//
//	ctx := ir.NewContext()
//	value.Register(ctx)
//	b := ir.NewBuilder(ctx)
//
//	mod := value.BuildModule(b, ir.UnknownLoc, "kernels")
//	mod.SetInsertionPointToBody(b)
//	f := value.BuildFunc(b, ir.UnknownLoc, "scale", ir.NewFunctionType([]ir.Type{ir.F32}, nil), value.TargetGPU)
//
//	b.SetInsertionPointToEnd(f.EntryBlock())
//	value.BuildReturn(b, ir.UnknownLoc)
//
//	if err := ir.Verify(mod.Operation); err != nil {
//	    return err
//	}
package value
