package ir

import (
	"k8s.io/klog/v2"
)

// Verify checks root and every nested operation. Structural checks and the
// registered per-operation verifiers all run, so one call reports every
// recoverable problem. It returns nil or a Diagnostics error.
//
// Verifiers may panic for invariants that only a compiler bug can break; those
// are not turned into diagnostics.
func Verify(root *Operation) error {
	var diags Diagnostics
	count := 0
	root.Walk(func(op *Operation) {
		count++
		if d := verifyStructure(op); d != nil {
			diags = append(diags, d)
			return
		}
		if op.info == nil || op.info.Verify == nil {
			return
		}
		if err := op.info.Verify(op); err != nil {
			diags = append(diags, AsDiagnostic(op, err))
		}
	})
	klog.V(2).Infof("ir: verified %d operations under %q, %d diagnostics", count, root.Name(), len(diags))
	return diags.Err()
}

func verifyStructure(op *Operation) *Diagnostic {
	if op.info == nil {
		return op.EmitOpError("is not registered")
	}
	if len(op.regions) != op.info.Regions {
		return op.EmitOpError("expects %d regions, got %d", op.info.Regions, len(op.regions))
	}
	if op.HasTrait(TraitSingleBlock) {
		for i, r := range op.regions {
			if len(r.blocks) != 1 {
				return op.EmitOpError("expects region #%d to have exactly one block, got %d", i, len(r.blocks))
			}
		}
	}
	if op.HasTrait(TraitTerminator) && op.block != nil && op.block.Back() != op {
		return op.EmitOpError("must be the last operation in its block")
	}
	return nil
}
