// Package ir is the host intermediate representation the dialects build on.
//
// It provides the generic object model (operations owning regions, regions owning
// blocks, blocks owning operations and typed arguments, SSA values), attributes,
// builtin types, a Builder with scoped insertion points, an operation registry
// with traits and verifier hooks, read-only symbol tables, diagnostics and a
// generic printer.
//
// Error model:
//   - Problems reachable from user input are recoverable: verifiers return a
//     *Diagnostic carrying the source location, and Verify collects all of them
//     into a Diagnostics error.
//   - Broken invariants that only an earlier compiler stage can cause panic via
//     exceptions.Panicf.
//
// Example:
//
//	ctx := ir.NewContext()
//	value.Register(ctx)
//	b := ir.NewBuilder(ctx)
//	mod := value.BuildModule(b, ir.UnknownLoc, "kernels")
//	b.SetInsertionPoint(mod.Body().Terminator())
//	...
//	if err := ir.Verify(mod.Operation); err != nil {
//	    log.Fatal(err)
//	}
package ir
