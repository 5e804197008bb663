package transform

import (
	"go/ast"
	"go/token"
	"go/types"

	"go.uber.org/zap"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/plan"
)

// Names of the factories exported by the runtime package.
const (
	DeserializerFactory = "CreateUcDeserializer"
	SerializerFactory   = "CreateUcSerializer"
)

// FactoryExports holds the resolved factory functions. A nil entry means
// the runtime package does not export it and nothing will match it.
type FactoryExports struct {
	Deserializer *types.Func
	Serializer   *types.Func
}

// Gate recognizes factory calls by symbol identity.
//
// The factories are resolved once, the first time an import of the runtime
// package (directly or through an imported package) is seen. Until then
// every call is a non-match.
type Gate struct {
	runtime  string
	prog     *analyze.Program
	pkg      *types.Package
	exports  *FactoryExports
	reexport map[*types.Var]*types.Func
}

// NewGate creates a Gate for the runtime package with the given import path.
func NewGate(runtime string, prog *analyze.Program) *Gate {
	return &Gate{runtime: runtime, prog: prog}
}

// Resolved reports whether the runtime package has been seen.
func (g *Gate) Resolved() bool {
	return g.exports != nil
}

// Runtime returns the runtime package, or nil before resolution.
func (g *Gate) Runtime() *types.Package {
	return g.pkg
}

// Exports returns the resolved factories, or nil before resolution.
func (g *Gate) Exports() *FactoryExports {
	return g.exports
}

// Import inspects an import spec of file and resolves the factories when
// it leads to the runtime package.
func (g *Gate) Import(file *analyze.File, spec *ast.ImportSpec) {
	if g.exports != nil {
		return // No need to inspect further.
	}

	pkgName := file.Info().PkgNameOf(spec)
	if pkgName == nil {
		return
	}

	if runtime := g.findRuntime(pkgName.Imported(), make(map[*types.Package]bool)); runtime != nil {
		g.resolve(runtime)
	}
}

// findRuntime searches pkg and its transitive imports for the runtime package.
func (g *Gate) findRuntime(pkg *types.Package, seen map[*types.Package]bool) *types.Package {
	if pkg == nil || seen[pkg] {
		return nil
	}

	seen[pkg] = true

	if pkg.Path() == g.runtime {
		return pkg
	}

	for _, imported := range pkg.Imports() {
		if found := g.findRuntime(imported, seen); found != nil {
			return found
		}
	}

	return nil
}

func (g *Gate) resolve(runtime *types.Package) {
	g.pkg = runtime
	g.exports = &FactoryExports{
		Deserializer: lookupFunc(runtime, DeserializerFactory),
		Serializer:   lookupFunc(runtime, SerializerFactory),
	}

	Logger().Debug("resolved runtime factories",
		zap.String("runtime", runtime.Path()),
		zap.Bool("deserializer", g.exports.Deserializer != nil),
		zap.Bool("serializer", g.exports.Serializer != nil))
}

func lookupFunc(pkg *types.Package, name string) *types.Func {
	fn, _ := pkg.Scope().Lookup(name).(*types.Func)
	return fn
}

// Match reports which factory call denotes, if any.
func (g *Gate) Match(info *types.Info, call *ast.CallExpr) (plan.TaskKind, bool) {
	if g.exports == nil {
		// No imports of the runtime package yet.
		return 0, false
	}

	id := calleeIdent(call.Fun)
	if id == nil {
		return 0, false
	}

	var fn *types.Func

	switch obj := info.Uses[id].(type) {
	case *types.Func:
		fn = obj
	case *types.Var:
		fn = g.reexports()[obj]
	}

	if fn == nil {
		// Callee is not a function symbol.
		return 0, false
	}

	switch fn.Origin() {
	case g.exports.Deserializer:
		return plan.TaskDeserializer, true
	case g.exports.Serializer:
		return plan.TaskSerializer, true
	}

	return 0, false
}

// calleeIdent returns the identifier naming the called function.
func calleeIdent(fun ast.Expr) *ast.Ident {
	switch f := ast.Unparen(fun).(type) {
	case *ast.Ident:
		return f
	case *ast.SelectorExpr:
		return f.Sel
	case *ast.IndexExpr:
		return calleeIdent(f.X)
	case *ast.IndexListExpr:
		return calleeIdent(f.X)
	default:
		return nil
	}
}

// reexports indexes package-level variables initialized with a function,
// e.g. `var CreateSerializer = churi.CreateUcSerializer`.
func (g *Gate) reexports() map[*types.Var]*types.Func {
	if g.reexport != nil {
		return g.reexport
	}

	g.reexport = make(map[*types.Var]*types.Func)

	// Test variants type-check their own copy of the package, so every
	// root is indexed, not only the files of Program.Files.
	for _, pkg := range g.prog.Packages {
		for _, syntax := range pkg.Syntax {
			for _, decl := range syntax.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.VAR {
					continue
				}

				for _, spec := range gen.Specs {
					g.indexReexport(pkg.TypesInfo, spec.(*ast.ValueSpec))
				}
			}
		}
	}

	return g.reexport
}

func (g *Gate) indexReexport(info *types.Info, spec *ast.ValueSpec) {
	if len(spec.Names) != len(spec.Values) {
		return
	}

	for i, name := range spec.Names {
		v, ok := info.Defs[name].(*types.Var)
		if !ok {
			continue
		}

		id := calleeIdent(spec.Values[i])
		if id == nil {
			continue
		}

		if fn, ok := info.Uses[id].(*types.Func); ok {
			g.reexport[v] = fn
		}
	}
}
