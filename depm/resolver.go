package depm

import (
	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/syntax"
)

// ModuleResolver walks the import graph of a program starting from its entry
// module: every file is read, lexed and parsed exactly once.
type ModuleResolver struct {
	ctx *common.CompileContext

	// The file resolver used to read and locate source files.
	fr FileResolver

	// The module set being built.
	set *ModuleSet

	// The stack of files still to be parsed.  Imports are pushed in reverse
	// so that modules are parsed depth-first in declaration order.
	work []*pendingModule

	// The set of module keys which have been queued.  Every file is queued at
	// most once, so cyclic imports cannot cause the resolver to loop.
	queued map[string]*pendingModule
}

// pendingModule is a module which has been queued but not yet parsed.
type pendingModule struct {
	// The path to the module's file including its extension.
	path common.Path

	// The module which first imported this module.
	parent *Module

	// The modules waiting for this module to be parsed to complete their
	// import maps keyed by the import name they used.
	importers []pendingImport

	// The parsed module.  This remains nil if the module failed to load.
	module *Module
}

// pendingImport is an import whose target has not yet been parsed.
type pendingImport struct {
	importer *Module
	name     string
}

// ResolveModules parses the entry module and every module reachable from it
// through imports.  Failures to read, parse, or resolve a module are reported
// and the module is dropped: resolution continues with its siblings.
func ResolveModules(ctx *common.CompileContext, fr FileResolver, entry common.Path) *ModuleSet {
	mr := &ModuleResolver{
		ctx: ctx,
		fr:  fr,
		set: &ModuleSet{
			Modules: make(map[string]*Module),
			Sources: make(map[string]string),
		},
		queued: make(map[string]*pendingModule),
	}

	mr.enqueue(entry, nil)

	for len(mr.work) > 0 {
		pm := mr.work[len(mr.work)-1]
		mr.work = mr.work[:len(mr.work)-1]

		mr.loadModule(pm)
	}

	if root, ok := mr.queued[entry.Key()]; ok && root.module != nil {
		mr.set.Entry = root.module
	}

	return mr.set
}

// enqueue queues a file to be parsed if it has not already been queued.  It
// returns the pending module for the file.
func (mr *ModuleResolver) enqueue(path common.Path, parent *Module) *pendingModule {
	if pm, ok := mr.queued[path.Key()]; ok {
		return pm
	}

	pm := &pendingModule{path: path, parent: parent}
	mr.queued[path.Key()] = pm
	mr.work = append(mr.work, pm)
	return pm
}

// loadModule reads, lexes, and parses a queued module and queues its imports.
func (mr *ModuleResolver) loadModule(pm *pendingModule) {
	displayPath := pm.path.FilePath()

	src, err := mr.fr.ReadFile(pm.path)
	if err != nil {
		mr.ctx.Reporter.StdError(displayPath, err)
		return
	}

	mr.set.Sources[displayPath] = src

	toks := syntax.Tokenize(mr.ctx, displayPath, src)
	file, ok := syntax.Parse(mr.ctx, pm.path, toks)
	if !ok {
		return
	}

	mod := &Module{
		Path:        pm.path.WithoutExtension(),
		DisplayPath: displayPath,
		AST:         file,
		Imports:     make(map[string]*Module),
		Parent:      pm.parent,
	}

	pm.module = mod
	mr.set.Modules[mod.Key()] = mod
	mr.set.Order = append(mr.set.Order, mod)

	// Complete the import maps of the modules which imported this module
	// before it was parsed.
	for _, pi := range pm.importers {
		pi.importer.Imports[pi.name] = mod
	}

	var queuedImports []*pendingModule
	seen := make(map[string]ast.Ident)
	for _, imp := range file.Imports {
		if prev, ok := seen[imp.Value]; ok {
			mr.ctx.Reporter.Report(duplicateImport(displayPath, imp, prev))
			continue
		}
		seen[imp.Value] = imp

		importPath, ok := mr.resolveImport(mod, imp)
		if !ok {
			continue
		}

		if existing, ok := mr.queued[importPath.Key()]; ok {
			if existing.module != nil {
				mod.Imports[imp.Value] = existing.module
			} else {
				existing.importers = append(existing.importers, pendingImport{importer: mod, name: imp.Value})
			}

			continue
		}

		ipm := &pendingModule{path: importPath, parent: mod}
		ipm.importers = append(ipm.importers, pendingImport{importer: mod, name: imp.Value})
		mr.queued[importPath.Key()] = ipm
		queuedImports = append(queuedImports, ipm)
	}

	for i := len(queuedImports) - 1; i >= 0; i-- {
		mr.work = append(mr.work, queuedImports[i])
	}
}

// resolveImport determines the file an import refers to.  Module roots look
// for `<dir>/<name>.ecl` and `<dir>/<name>/mod.ecl` beside themselves; leaf
// files look inside the directory named after themselves.  Exactly one of the
// two candidates must exist.
func (mr *ModuleResolver) resolveImport(mod *Module, imp ast.Ident) (common.Path, bool) {
	var dir common.Path
	if mod.IsModuleRoot() {
		dir = mod.Path.Parent()
	} else {
		dir = mod.Path
	}

	filePath := dir.Join(imp.Value).WithExtension(common.SourceExtension)
	modPath := dir.Join(imp.Value, "mod").WithExtension(common.SourceExtension)

	fileExists := mr.fr.Exists(filePath)
	modExists := mr.fr.Exists(modPath)

	switch {
	case fileExists && modExists:
		mr.ctx.Reporter.Error(
			mod.DisplayPath,
			imp.Span,
			"ambiguous module `%s`: both `%s` and `%s` exist",
			imp.Value,
			filePath.FilePath(),
			modPath.FilePath(),
		)
	case fileExists:
		return filePath, true
	case modExists:
		return modPath, true
	default:
		mr.ctx.Reporter.Error(
			mod.DisplayPath,
			imp.Span,
			"unresolved module `%s`: neither `%s` nor `%s` exist",
			imp.Value,
			filePath.FilePath(),
			modPath.FilePath(),
		)
	}

	return common.Path{}, false
}
