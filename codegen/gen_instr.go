package codegen

import (
	"fmt"
	"math"
	"strings"

	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
)

// genInstr generates a single MIR instruction.
func (g *Generator) genInstr(instr mir.Instruction) {
	switch v := instr.(type) {
	case *mir.Label:
		g.body.WriteString(v.Name)
		g.body.WriteString(":\n")
	case *mir.Goto:
		g.emit("br label %%%s", v.Label)
	case *mir.Branch:
		g.emit("br i1 %s, label %%%s, label %%%s", g.convValue(v.Cond), v.Then, v.Else)
	case *mir.Define:
		g.genDefine(v)
	case *mir.Store:
		g.emit("store %s, ptr %s", g.typedValue(v.Type, v.Value), g.convValue(v.Ptr))
	case *mir.Return:
		if v.Value == nil {
			g.emit("ret void")
		} else {
			g.emit("ret %s", g.typedValue(v.Type, v.Value))
		}
	case *mir.Unreachable:
		g.emit("unreachable")
	default:
		report.ReportICE("unknown MIR instruction: %T", instr)
	}
}

// genDefine generates an operation and the register it defines.
func (g *Generator) genDefine(def *mir.Define) {
	dest := "%" + def.Dest

	switch v := def.Op.(type) {
	case *mir.Allocate:
		fmt.Fprintf(&g.allocas, "\t%s = alloca %s, align %d\n", dest, g.convType(v.Type), allocAlign(v.Type))
	case *mir.Load:
		g.emit("%s = load %s, ptr %s", dest, g.convType(v.Type), g.convValue(v.Ptr))
	case *mir.Call:
		g.genCall(def.Dest, v)
	case *mir.BinaryOp:
		g.emit("%s = %s %s, %s", dest, binaryOpcode(v.Op, v.Type), g.typedValue(v.Type, v.Lhs), g.convValue(v.Rhs))
	case *mir.CompareOp:
		g.emit("%s = %s %s, %s", dest, compareOpcode(v.Op, v.Type), g.typedValue(v.Type, v.Lhs), g.convValue(v.Rhs))
	case *mir.GetElementPtr:
		g.genGEP(dest, v)
	case *mir.XorBool:
		g.emit("%s = xor i1 %s, %s", dest, g.convValue(v.Value), constant.True.Ident())
	case *mir.Memcpy:
		g.emit(
			"call void @llvm.memcpy.p0.p0.i64(ptr %s, ptr %s, i64 %d, i1 false)",
			g.convValue(v.Dest), g.convValue(v.Src), v.Size,
		)
	case *mir.Constant:
		llType := g.convValueType(v.Type)
		g.emit("%s = bitcast %s %s to %s", dest, llType, g.convValue(v.Value), llType)
	default:
		report.ReportICE("unknown MIR operation: %T", def.Op)
	}
}

// genCall generates a direct call.  Aggregate arguments are passed by pointer
// and aggregate results are written through the out-pointer.
func (g *Generator) genCall(dest string, call *mir.Call) {
	args := make([]string, 0, len(call.Args)+1)
	if call.Sret != nil {
		args = append(args, fmt.Sprintf("ptr sret(%s) %s", g.convType(call.ReturnType), g.convValue(call.Sret)))
	}

	for _, arg := range call.Args {
		args = append(args, g.typedValue(arg.Type, arg.Value))
	}

	callText := fmt.Sprintf("call %s @%s(%s)", g.convReturnType(call.ReturnType), call.Callee, strings.Join(args, ", "))
	if dest == "" {
		g.emit("%s", callText)
	} else {
		g.emit("%%%s = %s", dest, callText)
	}
}

// genGEP generates an address computation.  Byte offsets index `i8`.  Array
// indices narrower than 64 bits are extended first: unsigned indices must be
// zero-extended since LLVM treats every index as signed.
func (g *Generator) genGEP(dest string, gep *mir.GetElementPtr) {
	if gep.ElemType == nil {
		g.emit("%s = getelementptr inbounds i8, ptr %s, i64 %s", dest, g.convValue(gep.Base), g.convValue(gep.Index))
		return
	}

	index := g.convValue(gep.Index)
	if pt, ok := gep.IndexType.(types.PrimitiveType); ok && pt.BitSize() < 64 {
		ext := "sext"
		if !pt.IsSigned() {
			ext = "zext"
		}

		extended := g.newTemp()
		g.emit("%s = %s %s %s to i64", extended, ext, g.convType(pt), index)
		index = extended
	}

	g.emit(
		"%s = getelementptr inbounds %s, ptr %s, i64 %s",
		dest, g.convType(gep.ElemType), g.convValue(gep.Base), index,
	)
}

// -----------------------------------------------------------------------------

// convValue returns the spelling of a MIR value.
func (g *Generator) convValue(value mir.Value) string {
	switch v := value.(type) {
	case *mir.IntConst:
		return constant.NewInt(lltypes.I64, v.Value).Ident()
	case *mir.FloatConst:
		// Floats are written as the hexadecimal bits of the equivalent double
		// which is exact for both `float` and `double`.
		return fmt.Sprintf("0x%016X", math.Float64bits(v.Value))
	case *mir.BoolConst:
		if v.Value {
			return constant.True.Ident()
		}

		return constant.False.Ident()
	case *mir.Register:
		return "%" + v.Name
	case *mir.Global:
		return "@" + v.Name
	case *mir.Null:
		return "null"
	}

	report.ReportICE("unknown MIR value: %T", value)
	return ""
}

// allocAlign returns the alignment of a stack slot of a type.
func allocAlign(typ types.Type) int {
	if align := typ.Align(); align > 0 {
		return align
	}

	return 1
}

// binaryOpcode selects the LLVM opcode of a binary operator for its operand
// type.
func binaryOpcode(op int, typ types.Type) string {
	if types.IsFloating(typ) {
		switch op {
		case hlir.OpAdd:
			return "fadd"
		case hlir.OpSub:
			return "fsub"
		case hlir.OpMul:
			return "fmul"
		case hlir.OpDiv:
			return "fdiv"
		case hlir.OpMod:
			return "frem"
		}
	}

	signed := types.IsSigned(typ)

	switch op {
	case hlir.OpAdd:
		return "add"
	case hlir.OpSub:
		return "sub"
	case hlir.OpMul:
		return "mul"
	case hlir.OpDiv:
		if signed {
			return "sdiv"
		}

		return "udiv"
	case hlir.OpMod:
		if signed {
			return "srem"
		}

		return "urem"
	case hlir.OpBitAnd:
		return "and"
	case hlir.OpBitOr:
		return "or"
	case hlir.OpBitXor:
		return "xor"
	case hlir.OpShl:
		return "shl"
	case hlir.OpShr:
		if signed {
			return "ashr"
		}

		return "lshr"
	}

	report.ReportICE("unknown binary operator: %d", op)
	return ""
}

// Predicates of each comparison operator by operand kind.
var (
	signedPreds   = []enum.IPred{enum.IPredEQ, enum.IPredNE, enum.IPredSLT, enum.IPredSLE, enum.IPredSGT, enum.IPredSGE}
	unsignedPreds = []enum.IPred{enum.IPredEQ, enum.IPredNE, enum.IPredULT, enum.IPredULE, enum.IPredUGT, enum.IPredUGE}
	floatPreds    = []enum.FPred{enum.FPredOEQ, enum.FPredONE, enum.FPredOLT, enum.FPredOLE, enum.FPredOGT, enum.FPredOGE}
)

// compareOpcode selects the LLVM comparison instruction and predicate of a
// comparison operator for its operand type.  Characters, booleans, and
// pointers compare as unsigned integers.
func compareOpcode(op int, typ types.Type) string {
	switch {
	case types.IsFloating(typ):
		return "fcmp " + floatPreds[op].String()
	case types.IsSigned(typ):
		return "icmp " + signedPreds[op].String()
	default:
		return "icmp " + unsignedPreds[op].String()
	}
}
