package lower

import (
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/types"
)

// Lowerer converts the HLIR of a single function into MIR.  Structured
// control flow is flattened into labels and jumps and every variable is
// given a stack slot named by its key.
type Lowerer struct {
	ctx *common.CompileContext

	// The function being lowered.
	hfn *hlir.Function

	// The function being built.
	fn *mir.Function

	// Whether the last emitted instruction was a terminator: any instruction
	// emitted after it begins a new block.
	terminated bool
}

// Lower lowers a single analyzed function.
func Lower(ctx *common.CompileContext, hfn *hlir.Function) *mir.Function {
	l := &Lowerer{
		ctx: ctx,
		hfn: hfn,
		fn: &mir.Function{
			Name:       hfn.Name,
			Key:        hfn.Key,
			ReturnType: hfn.ReturnType,
			Sret:       types.IsAggregate(hfn.ReturnType),
			External:   hfn.IsExternal(),
		},
	}

	for _, param := range hfn.Params {
		l.fn.Params = append(l.fn.Params, &mir.Param{Name: param.Key + ".arg", Type: param.Type})
	}

	if !l.fn.External {
		l.lowerParams()
		l.lowerBody()
	}

	return l.fn
}

// LowerAll lowers every analyzed function in order.
func LowerAll(ctx *common.CompileContext, hfns []*hlir.Function) []*mir.Function {
	fns := make([]*mir.Function, len(hfns))
	for i, hfn := range hfns {
		fns[i] = Lower(ctx, hfn)
	}

	return fns
}

// lowerParams copies every incoming parameter into its own stack slot.
// Aggregates are passed by pointer and copied so that the callee owns its
// copy.
func (l *Lowerer) lowerParams() {
	for i, param := range l.hfn.Params {
		slot := l.define(param.Key, &mir.Allocate{Type: param.Type})
		l.storeValue(param.Type, mir.NewRegister(l.fn.Params[i].Name), slot)
	}
}

// lowerBody lowers the body of the function.  A final value is returned.  A
// body which falls off its end returns if the function returns `void` and is
// otherwise marked unreachable.
func (l *Lowerer) lowerBody() {
	body := l.hfn.Body

	for _, stmt := range body.Stmts {
		l.lowerStmt(stmt)
	}

	if body.Value != nil {
		if isValueType(body.Value.Type()) && !types.IsVoid(l.fn.ReturnType) {
			l.lowerReturnValue(body.Value)
		} else {
			l.lowerExpr(body.Value)
		}
	}

	if !l.terminated {
		if types.IsVoid(l.fn.ReturnType) {
			l.emit(&mir.Return{Type: types.PrimTypeVoid})
		} else {
			l.emit(&mir.Unreachable{})
		}
	}
}

// -----------------------------------------------------------------------------

// emit appends an instruction to the function.  Labels reached by falling
// through are jumped to explicitly, and instructions following a terminator
// are placed in a fresh block.
func (l *Lowerer) emit(instr mir.Instruction) {
	if label, ok := instr.(*mir.Label); ok {
		if !l.terminated {
			l.fn.Body = append(l.fn.Body, &mir.Goto{Label: label.Name})
		}

		l.terminated = false
	} else if l.terminated {
		l.fn.Body = append(l.fn.Body, &mir.Label{Name: l.ctx.Names.Next()})
		l.terminated = false
	}

	l.fn.Body = append(l.fn.Body, instr)
	l.terminated = mir.IsTerminator(instr)
}

// label begins the block with the given label.
func (l *Lowerer) label(name string) {
	l.emit(&mir.Label{Name: name})
}

// jump jumps to a label unless the current block is already terminated.
func (l *Lowerer) jump(name string) {
	if !l.terminated {
		l.emit(&mir.Goto{Label: name})
	}
}

// define emits an operation into the named register and returns the
// register.
func (l *Lowerer) define(name string, op mir.Operation) *mir.Register {
	l.emit(&mir.Define{Dest: name, Op: op})
	return mir.NewRegister(name)
}

// temp emits an operation into a fresh register and returns the register.
func (l *Lowerer) temp(op mir.Operation) *mir.Register {
	return l.define(l.ctx.Names.Next(), op)
}

// allocTemp allocates a fresh stack slot.
func (l *Lowerer) allocTemp(typ types.Type) *mir.Register {
	return l.temp(&mir.Allocate{Type: typ})
}

// storeValue writes the value of an expression of the given type to an
// address: basic values are stored and aggregates, which are always
// represented by their address, are copied.
func (l *Lowerer) storeValue(typ types.Type, value, ptr mir.Value) {
	switch {
	case value == nil || !isValueType(typ):
		return
	case types.IsAggregate(typ):
		l.emit(&mir.Define{Op: &mir.Memcpy{Dest: ptr, Src: value, Size: typ.Size()}})
	default:
		l.emit(&mir.Store{Type: typ, Value: value, Ptr: ptr})
	}
}

// loadValue reads a value of the given type from an address.  Aggregates are
// not loaded: their address is their value.
func (l *Lowerer) loadValue(typ types.Type, ptr mir.Value) mir.Value {
	switch {
	case !isValueType(typ):
		return nil
	case types.IsAggregate(typ):
		return ptr
	default:
		return l.temp(&mir.Load{Type: typ, Ptr: ptr})
	}
}

// offsetPtr returns the address a number of bytes past a base address.
func (l *Lowerer) offsetPtr(base mir.Value, offset int) mir.Value {
	if offset == 0 {
		return base
	}

	return l.temp(&mir.GetElementPtr{Base: base, Index: &mir.IntConst{Value: int64(offset)}})
}

// isValueType returns whether values of a type exist at runtime.
func isValueType(typ types.Type) bool {
	return !types.IsVoid(typ)
}
