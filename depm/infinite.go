package depm

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/types"
)

/*
Infinite Type Checking
----------------------

A named type which contains itself by value (directly or through other named
types, tuples, or arrays) would have infinite size.  References and pointers
break the containment since they are always pointer sized.

All named types have one of three colors associated with them: white, grey,
and black.  All named types start white.  A depth-first search of the type
containment graph is then performed from each named type which is not yet
black.  When a node is visited it is colored grey, then all the named types it
contains by value are visited, then it is colored black.  Reaching a grey node
means a cycle has been found.
*/

// checkInfiniteTypes checks every named type of the program reporting those
// which have infinite size.  Types are checked in definition order so that
// errors are reported deterministically.
func (c *Collector) checkInfiniteTypes() {
	for _, mt := range c.table.Order {
		for _, item := range mt.Module.AST.Items {
			var name string
			switch v := item.(type) {
			case *ast.StructDef:
				name = v.Name.Value
			case *ast.EnumDef:
				name = v.Name.Value
			default:
				continue
			}

			nt, ok := mt.Types[name]
			if !ok || nt.Color() == types.ColorBlack {
				continue
			}

			if !searchFrom(nt) {
				c.ctx.Reporter.Error(mt.Module.DisplayPath, nt.DefSpan(), "type `%s` has infinite size", nt.Name())
			}
		}
	}
}

// searchFrom performs the infinite type detection algorithm starting from the
// given named type.  It returns false if a cycle is found.
func searchFrom(nt types.NamedType) bool {
	switch nt.Color() {
	case types.ColorBlack:
		return true
	case types.ColorGrey:
		return false
	default: // White
		nt.SetColor(types.ColorGrey)
		result := searchChildren(nt)
		nt.SetColor(types.ColorBlack)
		return result
	}
}

// searchChildren searches the types directly contained by a type.
func searchChildren(typ types.Type) bool {
	// References, pointers, and primitives aren't searched because they
	// can't contain a type by value.
	switch v := typ.(type) {
	case *types.StructType:
		for _, field := range v.Fields {
			if !searchContained(field.Type) {
				return false
			}
		}
	case *types.EnumType:
		for _, variant := range v.Variants {
			if !searchContained(variant.Payload) {
				return false
			}
		}
	}

	return true
}

// searchContained searches a type contained by value in a named type.
func searchContained(typ types.Type) bool {
	switch v := typ.(type) {
	case types.NamedType:
		return searchFrom(v)
	case *types.TupleType:
		for _, elemType := range v.ElementTypes {
			if !searchContained(elemType) {
				return false
			}
		}
	case *types.ArrayType:
		return searchContained(v.ElemType)
	}

	return true
}
