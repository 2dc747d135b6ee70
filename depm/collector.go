package depm

import (
	"strconv"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/syntax"
	"github.com/SeppDev/eclipse-sub000/types"
)

// Collector builds the global table from the module set.  It runs in several
// passes over every module: first every name is declared, then use
// declarations are resolved, then the bodies of types and the signatures of
// functions are resolved against the now complete set of names.
type Collector struct {
	ctx *common.CompileContext

	table *GlobalTable
}

// Collect builds the global table of a module set.
func Collect(ctx *common.CompileContext, set *ModuleSet) *GlobalTable {
	c := &Collector{
		ctx: ctx,
		table: &GlobalTable{
			Modules: make(map[string]*ModuleTable),
			Prelude: preludeFuncs(),
			Set:     set,
		},
	}

	c.reserveExternNames(set)

	for _, mod := range set.Order {
		mt := &ModuleTable{
			Module:   mod,
			Funcs:    make(map[string]*FuncSig),
			Types:    make(map[string]types.NamedType),
			Uses:     make(map[string]*Symbol),
			defSpans: make(map[string]*report.TextSpan),
		}

		c.table.Modules[mod.Key()] = mt
		c.table.Order = append(c.table.Order, mt)

		c.declareNames(mt)
	}

	for _, mt := range c.table.Order {
		c.resolveUses(mt)
	}

	for _, mt := range c.table.Order {
		c.resolveTypeDefs(mt)
	}

	for _, mt := range c.table.Order {
		c.resolveSignatures(mt)
	}

	c.checkExterns()
	c.checkInfiniteTypes()

	if set.Entry != nil {
		c.checkMain(c.table.Modules[set.Entry.Key()])
	}

	return c.table
}

// preludeFuncs returns the built-in functions visible from every module.
func preludeFuncs() map[string]*FuncSig {
	return map[string]*FuncSig{
		"print": {
			Name:       "print",
			Key:        "print",
			Public:     true,
			Params:     []*ParamSig{{Name: "value", Type: types.PrimTypeI32}},
			ReturnType: types.PrimTypeVoid,
		},
	}
}

// reserveExternNames reserves the symbol names of every external function
// so that no generated name collides with them.
func (c *Collector) reserveExternNames(set *ModuleSet) {
	for _, mod := range set.Order {
		for _, item := range mod.AST.Items {
			if fd, ok := item.(*ast.FuncDef); ok {
				if _, isExtern := fd.Modifiers.Has(syntax.TOK_EXTERN); isExtern {
					c.ctx.Names.Reserve(fd.Name.Value)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

// declareNames declares every function and type of a module.
func (c *Collector) declareNames(mt *ModuleTable) {
	for _, item := range mt.Module.AST.Items {
		c.declareItem(mt, item)
	}
}

// declareItem declares a single item catching any errors.
func (c *Collector) declareItem(mt *ModuleTable, item ast.ASTNode) {
	defer c.ctx.Reporter.CatchErrors(mt.Module.DisplayPath)

	switch v := item.(type) {
	case *ast.FuncDef:
		c.checkModifiers(mt, v.Modifiers, true)
		c.defineName(mt, "function", v.Name)

		sig := &FuncSig{
			Name:   v.Name.Value,
			Module: mt,
			Def:    v,
		}

		_, sig.Public = v.Modifiers.Has(syntax.TOK_PUB)
		_, sig.Extern = v.Modifiers.Has(syntax.TOK_EXTERN)

		if sig.Extern && common.IsRuntimeSymbol(sig.Name) {
			panic(report.Raise(v.Name.Span, "external function cannot be named `%s`: the symbol is defined by the runtime", sig.Name))
		}

		switch {
		case sig.Extern:
			sig.Key = sig.Name
		case sig.Name == "main" && mt.Module.Path.Equals(common.EntryPath().WithoutExtension()):
			sig.Key = "main"
		default:
			sig.Key = c.ctx.Names.Next()
		}

		mt.Funcs[sig.Name] = sig
		mt.FuncOrder = append(mt.FuncOrder, sig)
	case *ast.StructDef:
		c.checkModifiers(mt, v.Modifiers, false)
		c.defineName(mt, "type", v.Name)

		mt.Types[v.Name.Value] = types.NewStructType(v.Name.Value, mt.Module.Key(), v.Name.Span)
	case *ast.EnumDef:
		c.checkModifiers(mt, v.Modifiers, false)
		c.defineName(mt, "type", v.Name)

		mt.Types[v.Name.Value] = types.NewEnumType(v.Name.Value, mt.Module.Key(), v.Name.Span)
	}
}

// defineName records a module-level name raising an error if it is already
// defined.
func (c *Collector) defineName(mt *ModuleTable, kind string, name ast.Ident) {
	if prevSpan, ok := mt.defSpans[name.Value]; ok {
		raiseDuplicate(kind, name, prevSpan)
	}

	mt.defSpans[name.Value] = name.Span
}

// checkModifiers checks the modifiers applied to a definition.  `async` is
// not supported and `static` and `unsafe` have no effect.
func (c *Collector) checkModifiers(mt *ModuleTable, mods ast.Modifiers, isFunc bool) {
	for _, mod := range mods {
		switch mod.Kind {
		case syntax.TOK_ASYNC:
			panic(report.Raise(mod.Span(), "async functions are not supported"))
		case syntax.TOK_STATIC, syntax.TOK_UNSAFE:
			c.ctx.Reporter.Warn(mt.Module.DisplayPath, mod.Span(), "modifier %s has no effect", syntax.KindString(mod.Kind))
		case syntax.TOK_EXTERN:
			if !isFunc {
				panic(report.Raise(mod.Span(), "only functions can be external"))
			} else if mod.Value != "C" {
				panic(report.Raise(mod.Span(), "unsupported external ABI: `%s`", mod.Value))
			}
		}
	}
}

// -----------------------------------------------------------------------------

// resolveUses resolves the use declarations of a module.
func (c *Collector) resolveUses(mt *ModuleTable) {
	for _, item := range mt.Module.AST.Items {
		if ud, ok := item.(*ast.UseDecl); ok {
			for _, path := range ud.Tree.Flatten() {
				c.resolveUsePath(mt, path)
			}
		}
	}
}

// resolveUsePath binds the last component of a use path in the module scope.
// A path ending in `self` binds the module named by the rest of the path.
func (c *Collector) resolveUsePath(mt *ModuleTable, path []ast.Ident) {
	defer c.ctx.Reporter.CatchErrors(mt.Module.DisplayPath)

	name := path[len(path)-1]
	if name.Value == "self" && len(path) > 1 {
		path = path[:len(path)-1]
		name = path[len(path)-1]
	}

	sym := c.table.ResolvePath(mt, path)

	if name.Value == "self" || name.Value == "super" {
		panic(report.Raise(name.Span, "cannot import `%s` by name", name.Value))
	}

	if prevSpan, ok := mt.defSpans[name.Value]; ok {
		raiseDuplicate(sym.KindName(), name, prevSpan)
	}

	mt.defSpans[name.Value] = name.Span
	mt.Uses[name.Value] = sym
}

// -----------------------------------------------------------------------------

// resolveTypeDefs resolves the fields of every struct and the variants of
// every enum of a module.
func (c *Collector) resolveTypeDefs(mt *ModuleTable) {
	for _, item := range mt.Module.AST.Items {
		switch v := item.(type) {
		case *ast.StructDef:
			c.resolveStructDef(mt, v)
		case *ast.EnumDef:
			c.resolveEnumDef(mt, v)
		}
	}
}

// resolveStructDef resolves the fields of a struct definition.
func (c *Collector) resolveStructDef(mt *ModuleTable, sd *ast.StructDef) {
	defer c.ctx.Reporter.CatchErrors(mt.Module.DisplayPath)

	st, ok := mt.Types[sd.Name.Value].(*types.StructType)
	if !ok {
		// The name was defined twice: the error has already been reported.
		return
	}

	c.resolveFields(mt, st, sd.Fields)
}

// resolveFields adds the fields of a struct or struct-like variant.
func (c *Collector) resolveFields(mt *ModuleTable, st *types.StructType, fields []*ast.FieldDecl) {
	for _, fd := range fields {
		field := types.StructField{
			Name: fd.Name.Value,
			Type: c.table.ResolveType(mt, fd.Type),
			Span: fd.Name.Span,
		}

		if !st.AddField(field) {
			prev, _, _ := st.GetFieldByName(fd.Name.Value)
			raiseDuplicate("field", fd.Name, prev.Span)
		}
	}
}

// resolveEnumDef resolves the variants of an enum definition.
func (c *Collector) resolveEnumDef(mt *ModuleTable, ed *ast.EnumDef) {
	defer c.ctx.Reporter.CatchErrors(mt.Module.DisplayPath)

	et, ok := mt.Types[ed.Name.Value].(*types.EnumType)
	if !ok {
		return
	}

	for _, av := range ed.Variants {
		variant := &types.EnumVariant{Name: av.Name.Value, Span: av.Name.Span}

		switch av.Kind {
		case ast.VariantUnit:
			variant.Payload = types.PrimTypeVoid
		case ast.VariantTuple:
			for _, label := range av.Payload {
				variant.TupleElems = append(variant.TupleElems, c.table.ResolveType(mt, label))
			}

			variant.Payload = types.NewTupleType(variant.TupleElems)
		case ast.VariantStruct:
			st := types.NewStructType(ed.Name.Value+"::"+av.Name.Value, mt.Module.Key(), av.Name.Span)
			c.resolveFields(mt, st, av.Fields)
			variant.Payload = st
		}

		if !et.AddVariant(variant) {
			prev, _, _ := et.GetVariant(av.Name.Value)
			raiseDuplicate("variant", av.Name, prev.Span)
		}
	}
}

// -----------------------------------------------------------------------------

// resolveSignatures resolves the parameter and return types of every function
// of a module.
func (c *Collector) resolveSignatures(mt *ModuleTable) {
	for _, sig := range mt.FuncOrder {
		c.resolveSignature(mt, sig)
	}
}

// resolveSignature resolves a single function signature.
func (c *Collector) resolveSignature(mt *ModuleTable, sig *FuncSig) {
	defer c.ctx.Reporter.CatchErrors(mt.Module.DisplayPath)

	// Signatures which fail to resolve are still usable by the analyzer.
	sig.ReturnType = types.PrimTypeVoid

	seen := make(map[string]*report.TextSpan)
	for _, param := range sig.Def.Params {
		if prevSpan, ok := seen[param.Name.Value]; ok && param.Name.Value != "_" {
			raiseDuplicate("parameter", param.Name, prevSpan)
		}
		seen[param.Name.Value] = param.Name.Span

		sig.Params = append(sig.Params, &ParamSig{
			Name:    param.Name.Value,
			Type:    c.table.ResolveType(mt, param.Type),
			ByRef:   param.ByRef,
			Mutable: param.Mutable,
			Span:    param.Span(),
		})
	}

	if sig.Def.ReturnType != nil {
		sig.ReturnType = c.table.ResolveType(mt, sig.Def.ReturnType)
	}

	if sig.Extern {
		for i, param := range sig.Params {
			if !types.IsBasic(param.Type) || param.ByRef {
				panic(report.Raise(sig.Def.Params[i].Span(), "parameters of external functions must be basic types"))
			}
		}

		if !types.IsBasic(sig.ReturnType) && !types.IsVoid(sig.ReturnType) {
			panic(report.Raise(sig.Def.ReturnType.Span(), "external functions must return a basic type or `void`"))
		}
	}
}

// checkExterns checks that every module declaring the same external symbol
// declares it with the same signature: the symbol is only declared once.
func (c *Collector) checkExterns() {
	first := make(map[string]*FuncSig)

	for _, mt := range c.table.Order {
		for _, sig := range mt.FuncOrder {
			if !sig.Extern {
				continue
			}

			prev, ok := first[sig.Key]
			if !ok {
				first[sig.Key] = sig
				continue
			}

			if !sameSignature(prev, sig) {
				c.ctx.Reporter.Error(
					mt.Module.DisplayPath,
					sig.Def.Name.Span,
					"external function `%s` conflicts with its declaration in `%s`",
					sig.Name,
					prev.Module.Module.DisplayPath,
				)
			}
		}
	}
}

// sameSignature returns whether two functions have the same parameter and
// return types.
func sameSignature(a, b *FuncSig) bool {
	if len(a.Params) != len(b.Params) || !types.Equals(a.ReturnType, b.ReturnType) {
		return false
	}

	for i, param := range a.Params {
		if !types.Equals(param.Type, b.Params[i].Type) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// ResolveType converts a type label into a type from within a module.  Errors
// are raised as local compile errors.
func (gt *GlobalTable) ResolveType(from *ModuleTable, label ast.TypeExpr) types.Type {
	typ := gt.resolveType(from, label)

	if typ == types.PrimTypeStr {
		panic(report.Raise(label.Span(), "type `str` has no size: use `&str`"))
	}

	return typ
}

// resolveType converts a type label into a type.  Unsized types are allowed.
func (gt *GlobalTable) resolveType(from *ModuleTable, label ast.TypeExpr) types.Type {
	switch v := label.(type) {
	case *ast.PrimType:
		if pt, ok := types.LookupPrimitive(v.Name); ok {
			return pt
		}

		report.ReportICE("parser produced unknown primitive type `%s`", v.Name)
	case *ast.SelfType:
		panic(report.Raise(v.Span(), "`Self` is only allowed inside an implementation"))
	case *ast.TupleType:
		elemTypes := make([]types.Type, len(v.Elems))
		for i, elem := range v.Elems {
			elemTypes[i] = gt.ResolveType(from, elem)
		}

		return types.NewTupleType(elemTypes)
	case *ast.ArrayType:
		n, err := strconv.Atoi(v.Len.Value)
		if err != nil || n < 0 {
			panic(report.Raise(v.Len.Span, "invalid array length: `%s`", v.Len.Value))
		}

		elemType := gt.ResolveType(from, v.Elem)
		if types.IsVoid(elemType) {
			panic(report.Raise(v.Elem.Span(), "array elements cannot be of type `%s`", elemType.Repr()))
		}

		return &types.ArrayType{ElemType: elemType, Len: n}
	case *ast.SliceType:
		panic(report.Raise(v.Span(), "slice types are not supported"))
	case *ast.RefType:
		elemType := gt.resolveType(from, v.Elem)
		if rt, ok := elemType.(*types.RefType); ok && rt.Kind == types.RefShared && v.Mutable {
			panic(report.Raise(v.Span(), "cannot mutably borrow through a shared reference"))
		}

		typ, err := types.AddReference(elemType)
		if err == nil && v.Mutable {
			typ, err = types.ToMutable(typ)
		}

		if err != nil {
			panic(report.Raise(v.Span(), "%s", err))
		}

		return typ
	case *ast.PointerType:
		typ, err := types.AddPointer(gt.resolveType(from, v.Elem))
		if err != nil {
			panic(report.Raise(v.Span(), "%s", err))
		}

		return typ
	case *ast.NamedType:
		sym := gt.ResolvePath(from, v.Path)
		if sym.Kind != SymType {
			panic(report.Raise(v.Span(), "%s `%s` is not a type", sym.KindName(), sym.Name))
		}

		return sym.Type
	}

	report.ReportICE("unknown type label: %T", label)
	return nil
}

// -----------------------------------------------------------------------------

// checkMain checks the entry function of the program.
func (c *Collector) checkMain(mt *ModuleTable) {
	if mt == nil {
		return
	}

	sig, ok := mt.Funcs["main"]
	if !ok {
		c.ctx.Reporter.Error(mt.Module.DisplayPath, nil, "missing `main` function")
		return
	}

	if len(sig.Params) > 0 {
		c.ctx.Reporter.Error(mt.Module.DisplayPath, sig.Def.Name.Span, "`main` must not take any parameters")
		return
	}

	if sig.ReturnType != nil && !types.IsVoid(sig.ReturnType) && !types.IsIntegral(sig.ReturnType) {
		c.ctx.Reporter.Error(mt.Module.DisplayPath, sig.Def.ReturnType.Span(), "`main` must return `void` or an integer type")
		return
	}

	c.table.Main = sig
}
