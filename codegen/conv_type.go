package codegen

import (
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"

	lltypes "github.com/llir/llvm/ir/types"
)

// ptrType is the spelling of the opaque LLVM pointer type.
const ptrType = "ptr"

// convType converts a type to the spelling of its LLVM type.  Every reference
// is an opaque pointer.  Arrays, structs, and enums are byte arrays of their
// size: their fields are addressed by byte offset.  Tuples of primitives
// become literal structs since their layouts agree with LLVM's.
func (g *Generator) convType(typ types.Type) string {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return g.convPrimType(v).LLString()
	case *types.RefType:
		return ptrType
	case *types.TupleType:
		if fields, ok := g.convTupleFields(v); ok {
			return lltypes.NewStruct(fields...).LLString()
		}
	case *types.ArrayType, *types.StructType, *types.EnumType:
	default:
		report.ReportICE("type codegen not implemented for `%s`", typ.Repr())
	}

	return lltypes.NewArray(uint64(typ.Size()), lltypes.I8).LLString()
}

// convTupleFields converts the elements of a tuple made only of primitives.
func (g *Generator) convTupleFields(tt *types.TupleType) ([]lltypes.Type, bool) {
	fields := make([]lltypes.Type, len(tt.ElementTypes))
	for i, elemType := range tt.ElementTypes {
		pt, ok := elemType.(types.PrimitiveType)
		if !ok || !types.IsBasic(pt) {
			return nil, false
		}

		fields[i] = g.convPrimType(pt)
	}

	return fields, true
}

// convPrimType converts a primitive type to its LLVM type.  Integers carry no
// sign: it is selected by the instructions using them.
func (g *Generator) convPrimType(pt types.PrimitiveType) lltypes.Type {
	switch pt {
	case types.PrimTypeVoid, types.PrimTypeNever:
		return lltypes.Void
	case types.PrimTypeBool:
		return lltypes.I1
	case types.PrimTypeI8, types.PrimTypeU8:
		return lltypes.I8
	case types.PrimTypeI16, types.PrimTypeU16:
		return lltypes.I16
	case types.PrimTypeI32, types.PrimTypeU32, types.PrimTypeChar:
		return lltypes.I32
	case types.PrimTypeI64, types.PrimTypeU64:
		return lltypes.I64
	case types.PrimTypeIsize, types.PrimTypeUsize:
		return lltypes.NewInt(uint64(g.target.PointerBits))
	case types.PrimTypeF32:
		return lltypes.Float
	case types.PrimTypeF64:
		return lltypes.Double
	}

	report.ReportICE("type codegen not implemented for `%s`", pt.Repr())
	return nil
}

// convValueType converts the type of a value passed to or from a function:
// aggregates are passed by pointer.
func (g *Generator) convValueType(typ types.Type) string {
	if types.IsAggregate(typ) {
		return ptrType
	}

	return g.convType(typ)
}

// convReturnType converts the return type of a function.  Functions returning
// aggregates return through an out-pointer and so return `void`.
func (g *Generator) convReturnType(typ types.Type) string {
	if types.IsAggregate(typ) {
		return lltypes.Void.LLString()
	}

	return g.convType(typ)
}
