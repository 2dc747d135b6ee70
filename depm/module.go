package depm

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/common"
)

// Module is a single parsed source file of the program.
type Module struct {
	// The path of the module's file without its extension: `src/main`.
	Path common.Path

	// The display path of the module's file: `src/main.ecl`.
	DisplayPath string

	// The AST of the module.
	AST *ast.File

	// The modules imported by this module keyed by import name.
	Imports map[string]*Module

	// The module which first imported this module.  This is used to resolve
	// `super`.  It is nil for the entry module.
	Parent *Module
}

// Key returns the unique key of the module: its extension-less file path.
func (m *Module) Key() string {
	return m.Path.Key()
}

// IsModuleRoot returns whether the module is a module root: the entry module
// or a `mod` file.  Module roots resolve their imports beside themselves
// rather than in a directory named after themselves.
func (m *Module) IsModuleRoot() bool {
	return m.Path.Equals(common.EntryPath().WithoutExtension()) || m.Path.Last() == "mod"
}

// ModuleSet is the collection of every module of the program.
type ModuleSet struct {
	// The modules keyed by module key.
	Modules map[string]*Module

	// The modules in the order they were parsed: a depth-first traversal of
	// the import graph starting from the entry module.
	Order []*Module

	// The entry module.  This is nil if the entry module failed to load.
	Entry *Module

	// The source text of every file read keyed by display path.
	Sources map[string]string
}

// Lookup returns the source text of a file by its display path.  It is used
// to render diagnostics.
func (ms *ModuleSet) Lookup(file string) (string, bool) {
	src, ok := ms.Sources[file]
	return src, ok
}
