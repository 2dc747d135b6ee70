package depm

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// GlobalTable is the table of every function signature and user-defined type
// of the program organized by module.
type GlobalTable struct {
	// The module tables keyed by module key.
	Modules map[string]*ModuleTable

	// The module tables in module parse order.
	Order []*ModuleTable

	// The built-in functions visible from every module.
	Prelude map[string]*FuncSig

	// The entry function of the program.  This is nil if it is missing or
	// invalid.
	Main *FuncSig

	// The module set the table was built from.
	Set *ModuleSet
}

// ModuleTable is the collection of definitions of a single module.
type ModuleTable struct {
	// The module the table describes.
	Module *Module

	// The functions defined in the module keyed by name.
	Funcs map[string]*FuncSig

	// The functions in definition order.
	FuncOrder []*FuncSig

	// The named types defined in the module keyed by name.
	Types map[string]types.NamedType

	// The names brought into the module's scope by use declarations.
	Uses map[string]*Symbol

	// The spans of the names of every module-level definition: used to report
	// duplicate definitions.
	defSpans map[string]*report.TextSpan
}

// FuncSig is the signature of a function.
type FuncSig struct {
	// The source name of the function.
	Name string

	// The codegen key of the function: the symbol name it is emitted under.
	Key string

	// The module the function is defined in.  This is nil for built-in
	// functions.
	Module *ModuleTable

	// Whether the function is visible outside of its module.
	Public bool

	// Whether the function is defined externally.  External functions with no
	// body are only declared.
	Extern bool

	// The parameters of the function.
	Params []*ParamSig

	// The return type of the function.
	ReturnType types.Type

	// The function's definition.  This is nil for built-in functions.
	Def *ast.FuncDef
}

// ParamSig is a single parameter of a function signature.
type ParamSig struct {
	Name string

	// The declared type of the parameter.  For by-reference parameters, this
	// is the type of the referenced value.
	Type types.Type

	// Whether the parameter is passed by reference: `&x: T`.
	ByRef bool

	// Whether the parameter may be mutated.
	Mutable bool

	Span *report.TextSpan
}

// Enumeration of symbol kinds.
const (
	SymModule = iota
	SymFunc
	SymType
	SymVariant
)

// Symbol is the result of resolving a name or path.
type Symbol struct {
	// The kind of the symbol.  This must be one of the enumerated symbol
	// kinds.
	Kind int

	// The name the symbol was resolved from.
	Name string

	// The module of a module symbol.
	Module *ModuleTable

	// The function of a function symbol.
	Func *FuncSig

	// The type of a type symbol or the enum of a variant symbol.
	Type types.NamedType

	// The variant and tag of a variant symbol.
	Variant *types.EnumVariant
	Tag     int
}

// KindName returns the user-facing name of the symbol's kind.
func (sym *Symbol) KindName() string {
	switch sym.Kind {
	case SymModule:
		return "module"
	case SymFunc:
		return "function"
	case SymType:
		return "type"
	default:
		return "enum variant"
	}
}

// -----------------------------------------------------------------------------

// Lookup resolves a single name from within a module.  Local definitions come
// first, then use declarations, then imported modules, then the prelude.  It
// returns nil if the name is not defined.
func (gt *GlobalTable) Lookup(from *ModuleTable, name string) *Symbol {
	if fn, ok := from.Funcs[name]; ok {
		return &Symbol{Kind: SymFunc, Name: name, Func: fn}
	} else if nt, ok := from.Types[name]; ok {
		return &Symbol{Kind: SymType, Name: name, Type: nt}
	} else if sym, ok := from.Uses[name]; ok {
		return sym
	} else if mod, ok := from.Module.Imports[name]; ok {
		if mt, ok := gt.Modules[mod.Key()]; ok {
			return &Symbol{Kind: SymModule, Name: name, Module: mt}
		}
	} else if fn, ok := gt.Prelude[name]; ok {
		return &Symbol{Kind: SymFunc, Name: name, Func: fn}
	}

	return nil
}

// ResolvePath resolves a `::` separated path from within a module.  The first
// component may be `self` or `super`.  Errors are raised as local compile
// errors.
func (gt *GlobalTable) ResolvePath(from *ModuleTable, path []ast.Ident) *Symbol {
	first := path[0]

	var sym *Symbol
	switch first.Value {
	case "self":
		sym = &Symbol{Kind: SymModule, Name: first.Value, Module: from}
	case "super":
		sym = gt.superOf(from, first)
	default:
		if sym = gt.Lookup(from, first.Value); sym == nil {
			panic(report.Raise(first.Span, "undefined symbol: `%s`", first.Value))
		}
	}

	for _, comp := range path[1:] {
		sym = gt.resolveMember(from, sym, comp)
	}

	gt.checkVisible(from, sym, path[len(path)-1])
	return sym
}

// superOf returns the parent module of a module.
func (gt *GlobalTable) superOf(from *ModuleTable, ident ast.Ident) *Symbol {
	if from.Module.Parent != nil {
		if mt, ok := gt.Modules[from.Module.Parent.Key()]; ok {
			return &Symbol{Kind: SymModule, Name: ident.Value, Module: mt}
		}
	}

	panic(report.Raise(ident.Span, "module `%s` has no parent module", from.Module.Path.String()))
}

// resolveMember resolves a path component within a module or enum symbol.
func (gt *GlobalTable) resolveMember(from *ModuleTable, sym *Symbol, comp ast.Ident) *Symbol {
	switch sym.Kind {
	case SymModule:
		mt := sym.Module

		if comp.Value == "super" {
			return gt.superOf(mt, comp)
		} else if fn, ok := mt.Funcs[comp.Value]; ok {
			return &Symbol{Kind: SymFunc, Name: comp.Value, Func: fn}
		} else if nt, ok := mt.Types[comp.Value]; ok {
			return &Symbol{Kind: SymType, Name: comp.Value, Type: nt}
		} else if mod, ok := mt.Module.Imports[comp.Value]; ok {
			if imt, ok := gt.Modules[mod.Key()]; ok {
				return &Symbol{Kind: SymModule, Name: comp.Value, Module: imt}
			}
		}

		panic(report.Raise(comp.Span, "module `%s` has no member named `%s`", mt.Module.Path.String(), comp.Value))
	case SymType:
		if et, ok := sym.Type.(*types.EnumType); ok {
			if variant, tag, ok := et.GetVariant(comp.Value); ok {
				return &Symbol{Kind: SymVariant, Name: comp.Value, Type: et, Variant: variant, Tag: tag}
			}

			panic(report.Raise(comp.Span, "enum `%s` has no variant named `%s`", et.Name(), comp.Value))
		}
	}

	panic(report.Raise(comp.Span, "%s `%s` has no members", sym.KindName(), sym.Name))
}

// checkVisible raises an error if a function symbol is not visible from the
// given module: functions of other modules must be public.
func (gt *GlobalTable) checkVisible(from *ModuleTable, sym *Symbol, ident ast.Ident) {
	if sym.Kind == SymFunc && sym.Func.Module != nil && sym.Func.Module != from && !sym.Func.Public {
		panic(report.Raise(ident.Span, "function `%s` is private to module `%s`", sym.Func.Name, sym.Func.Module.Module.Path.String()))
	}
}
