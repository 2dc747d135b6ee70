package walk

import (
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// Walker is responsible for walking function bodies, performing semantic
// analysis on them, and producing their HLIR.  A walker is created once per
// function.
type Walker struct {
	ctx *common.CompileContext

	// The global symbol table.
	table *depm.GlobalTable

	// The table of the module containing the function being walked.
	mt *depm.ModuleTable

	// The display path of the function's file.
	file string

	// The function being built.
	fn *hlir.Function

	// The stack of local scopes used to lookup variables.
	localScopes []map[string]*hlir.Variable

	// The stack of enclosing loops.
	loops []*loopInfo
}

// loopInfo is the state of an enclosing loop.
type loopInfo struct {
	frame *hlir.LoopFrame

	// Whether the loop is a `while` loop: they cannot break with a value.
	isWhile bool

	// Whether the loop is ever broken out of.
	broken bool

	// Whether the loop is broken out of without a value.
	bareBreak bool

	// The type of the values the loop is broken with.  This is nil until the
	// first `break` with a value.
	valueType types.Type

	// The type the loop's value is expected to have.  This may be nil.
	expected types.Type
}

// Analyze walks the body of every function of the program and returns the
// HLIR of every function that was analyzed without error.  Functions are
// returned in module order then definition order.
func Analyze(ctx *common.CompileContext, table *depm.GlobalTable) []*hlir.Function {
	var fns []*hlir.Function

	for _, mt := range table.Order {
		for _, sig := range mt.FuncOrder {
			w := &Walker{
				ctx:   ctx,
				table: table,
				mt:    mt,
				file:  mt.Module.DisplayPath,
			}

			if fn, ok := w.walkFunc(sig); ok {
				fns = append(fns, fn)
			}
		}
	}

	return fns
}

// walkFunc walks a single function.  It returns false if any error was
// reported while walking it.
func (w *Walker) walkFunc(sig *depm.FuncSig) (fn *hlir.Function, ok bool) {
	errorsBefore := w.ctx.Reporter.ErrorCount()

	defer func() {
		ok = ok && w.ctx.Reporter.ErrorCount() == errorsBefore
	}()
	defer w.ctx.Reporter.CatchErrors(w.file)

	w.fn = &hlir.Function{
		Name:       sig.Name,
		Key:        sig.Key,
		File:       w.file,
		ReturnType: sig.ReturnType,
		Variables:  make(map[string]*hlir.Variable),
		Span:       sig.Def.Name.Span,
	}

	w.pushScope()
	defer w.popScope()

	for _, param := range sig.Params {
		w.fn.Params = append(w.fn.Params, w.declareParam(param))
	}

	if sig.Def.Body != nil {
		w.fn.Body = w.walkFuncBody(sig)
	}

	return w.fn, true
}

// declareParam declares a function parameter.  By-reference parameters are
// variables of reference type.
func (w *Walker) declareParam(param *depm.ParamSig) *hlir.Variable {
	v := &hlir.Variable{
		Key:     w.ctx.Names.Next(),
		Name:    param.Name,
		Type:    param.Type,
		Mutable: param.Mutable,
		IsParam: true,
		Span:    param.Span,
	}

	if param.ByRef {
		kind := types.RefShared
		if param.Mutable {
			kind = types.RefMutable
		}

		v.Type = &types.RefType{ElemType: param.Type, Kind: kind}
		v.Mutable = false
	}

	w.defineLocal(v)
	return v
}

// walkFuncBody walks the body of a function.  The final expression of the
// body is its return value when its type matches the return type.
func (w *Walker) walkFuncBody(sig *depm.FuncSig) *hlir.Block {
	yieldsValue := !types.IsVoid(sig.ReturnType)

	body := w.walkBlock(sig.Def.Body, sig.ReturnType, yieldsValue)

	if body.Value != nil {
		w.mustEqual(sig.ReturnType, body.Value.Type(), body.Value.Span())
	}

	return body
}

// -----------------------------------------------------------------------------

// lookup looks up a local variable by name in all visible scopes.
func (w *Walker) lookup(name string) (*hlir.Variable, bool) {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(w.localScopes) - 1; i > -1; i-- {
		if v, ok := w.localScopes[i][name]; ok {
			return v, true
		}
	}

	return nil, false
}

// defineLocal defines a variable in the current local scope and gives it a
// unique key.  Variables named `_` are given a key but are never visible.
func (w *Walker) defineLocal(v *hlir.Variable) {
	w.fn.Variables[v.Key] = v

	if v.Name == "_" {
		return
	}

	currScope := w.localScopes[len(w.localScopes)-1]

	if prev, ok := currScope[v.Name]; ok {
		panic(report.Raise(v.Span, "variable `%s` already declared in this scope", v.Name).
			WithLabel(prev.Span, "previous declaration here"))
	}

	currScope[v.Name] = v
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.localScopes = append(w.localScopes, make(map[string]*hlir.Variable))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.localScopes = w.localScopes[:len(w.localScopes)-1]
}

// -----------------------------------------------------------------------------

// error reports an error on the given span that should abort walking of the
// current function.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// recError reports a recoverable error on the given span.
func (w *Walker) recError(span *report.TextSpan, msg string, args ...interface{}) {
	w.ctx.Reporter.Error(w.file, span, msg, args...)
}

// warn reports a compile warning.
func (w *Walker) warn(span *report.TextSpan, msg string, args ...interface{}) {
	w.ctx.Reporter.Warn(w.file, span, msg, args...)
}
