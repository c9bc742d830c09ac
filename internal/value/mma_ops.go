package value

import (
	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/mma"
	"k8s.io/klog/v2"
)

// MMAComputeSyncOp is a value.mma_compute_sync operation: the warp computes
// opA*opB + opC for one MMA shape.
type MMAComputeSyncOp struct {
	*ir.Operation
}

// BuildMMAComputeSync creates an MMA compute. The result has the type of opC.
// cbsz, abid and blgp are the broadcast controls of the AMD instruction.
func BuildMMAComputeSync(b *ir.Builder, loc ir.Location, shape mma.Shape, opA, opB, opC *ir.Value, cbsz, abid, blgp int) MMAComputeSyncOp {
	d := mma.Describe(shape)
	state := ir.NewState(loc, MMAComputeSyncOpName)
	state.AddOperands(opA, opB, opC)
	state.AddTypes(opC.Type())
	state.AddAttribute(MMAShapeAttrName, ir.IntAttr(int64(shape)))
	state.AddAttribute(CBSZAttrName, ir.IntAttr(int64(cbsz)))
	state.AddAttribute(ABIDAttrName, ir.IntAttr(int64(abid)))
	state.AddAttribute(BLGPAttrName, ir.IntAttr(int64(blgp)))
	klog.V(4).Infof("value: mma compute %s (m=%d n=%d k=%d)", shape, d.M(), d.N(), d.K())
	return MMAComputeSyncOp{b.Create(state)}
}

// Shape returns the MMA shape attribute.
func (c MMAComputeSyncOp) Shape() mma.Shape { return mmaShapeOf(c.Operation) }

func mmaShapeOf(op *ir.Operation) mma.Shape {
	return mma.Shape(op.GetAttrInt(MMAShapeAttrName, -1))
}

func verifyMMAShape(op *ir.Operation) error {
	if _, err := mma.Lookup(mmaShapeOf(op)); err != nil {
		return op.EmitOpError("%v", err)
	}
	return nil
}

func verifyMMAComputeSync(op *ir.Operation) error {
	if err := verifyMMAShape(op); err != nil {
		return err
	}
	if op.NumOperands() != 3 {
		return op.EmitOpError("expects 3 operands, got %d", op.NumOperands())
	}
	aType, ok := op.Operand(0).Type().(ir.ShapedType)
	if !ok {
		return op.EmitOpError("operand A must be shaped, got %s", op.Operand(0).Type())
	}
	bType, ok := op.Operand(1).Type().(ir.ShapedType)
	if !ok {
		return op.EmitOpError("operand B must be shaped, got %s", op.Operand(1).Type())
	}
	if !aType.ElementType().Equal(bType.ElementType()) {
		return op.EmitOpError("element type of operand A (%s) must match element type of operand B (%s)",
			aType.ElementType(), bType.ElementType())
	}
	return nil
}

// BuildMMAFillSync creates an operation filling the accumulator dest with value.
func BuildMMAFillSync(b *ir.Builder, loc ir.Location, shape mma.Shape, value, dest *ir.Value) *ir.Operation {
	mma.Describe(shape)
	state := ir.NewState(loc, MMAFillSyncOpName)
	state.AddOperands(value, dest)
	state.AddAttribute(MMAShapeAttrName, ir.IntAttr(int64(shape)))
	return b.Create(state)
}

func verifyMMAFillSync(op *ir.Operation) error {
	if err := verifyMMAShape(op); err != nil {
		return err
	}
	if op.NumOperands() != 2 {
		return op.EmitOpError("expects a value and a destination")
	}
	dest, ok := op.Operand(1).Type().(ir.MemRefType)
	if !ok {
		return op.EmitOpError("destination must be a memref, got %s", op.Operand(1).Type())
	}
	if valueType := op.Operand(0).Type(); !valueType.Equal(dest.Elem) {
		return op.EmitOpError("value type %s must match destination element type %s", valueType, dest.Elem)
	}
	return nil
}

// MMALoadSyncOp is a value.mma_load_sync operation: the warp loads one operand
// tile from src at indices into the per-thread buffer dest.
type MMALoadSyncOp struct {
	*ir.Operation
}

// BuildMMALoadSync creates an MMA operand load.
func BuildMMALoadSync(b *ir.Builder, loc ir.Location, shape mma.Shape, operand mma.OperandType, src, dest *ir.Value, indices ...*ir.Value) MMALoadSyncOp {
	mma.Describe(shape)
	state := ir.NewState(loc, MMALoadSyncOpName)
	state.AddOperands(src, dest)
	state.AddOperands(indices...)
	state.AddAttribute(MMAShapeAttrName, ir.IntAttr(int64(shape)))
	state.AddAttribute(OperandTypeAttrName, ir.IntAttr(int64(operand)))
	return MMALoadSyncOp{b.Create(state)}
}

// Shape returns the MMA shape attribute.
func (l MMALoadSyncOp) Shape() mma.Shape { return mmaShapeOf(l.Operation) }

// OperandType returns which MMA operand is loaded.
func (l MMALoadSyncOp) OperandType() mma.OperandType {
	return mma.OperandType(l.GetAttrInt(OperandTypeAttrName, -1))
}

func verifyMMALoadSync(op *ir.Operation) error {
	if err := verifyMMAShape(op); err != nil {
		return err
	}
	if op.NumOperands() < 2 {
		return op.EmitOpError("expects a source and a destination")
	}
	src, ok := op.Operand(0).Type().(ir.MemRefType)
	if !ok {
		return op.EmitOpError("source must be a memref, got %s", op.Operand(0).Type())
	}
	if space := SpaceOf(src); !space.mmaAccessible() {
		return op.EmitOpError("source memory space must be one of None, Shared, Global, Private or Tensor, got %d", int(space))
	}
	if role := (MMALoadSyncOp{op}).OperandType(); !role.Valid() {
		return op.EmitOpError("operand type must be AOp, BOp or COp, got %d", int(role))
	}
	return nil
}

// BuildMMAStoreSync creates an MMA accumulator store of src into dest at indices.
func BuildMMAStoreSync(b *ir.Builder, loc ir.Location, shape mma.Shape, src, dest *ir.Value, indices ...*ir.Value) *ir.Operation {
	mma.Describe(shape)
	state := ir.NewState(loc, MMAStoreSyncOpName)
	state.AddOperands(src, dest)
	state.AddOperands(indices...)
	state.AddAttribute(MMAShapeAttrName, ir.IntAttr(int64(shape)))
	return b.Create(state)
}

func verifyMMAStoreSync(op *ir.Operation) error {
	if err := verifyMMAShape(op); err != nil {
		return err
	}
	if op.NumOperands() < 2 {
		return op.EmitOpError("expects a source and a destination")
	}
	dest, ok := op.Operand(1).Type().(ir.MemRefType)
	if !ok {
		return op.EmitOpError("destination must be a memref, got %s", op.Operand(1).Type())
	}
	if space := SpaceOf(dest); !space.mmaAccessible() {
		return op.EmitOpError("destination memory space must be one of None, Shared, Global, Private or Tensor, got %d", int(space))
	}
	return nil
}
