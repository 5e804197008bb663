package transform

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"go.uber.org/zap"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/editor"
)

// packageNames returns the registry of package-level names of file's
// package. It is seeded with every identifier of every file of the package,
// test files included, so reserved names neither collide with nor get
// shadowed by existing code.
func (t *Transformer) packageNames(file *analyze.File) *Registry {
	pkgPath := file.Pkg.PkgPath
	if names, ok := t.names[pkgPath]; ok {
		return names
	}

	names := NewRegistry()

	for _, pkg := range t.prog.Packages {
		if pkg.PkgPath != pkgPath {
			continue
		}

		for _, name := range pkg.Types.Scope().Names() {
			names.reserved[name] = struct{}{}
		}

		for _, syntax := range pkg.Syntax {
			ast.Inspect(syntax, func(n ast.Node) bool {
				if id, ok := n.(*ast.Ident); ok {
					names.reserved[id.Name] = struct{}{}
				}

				return true
			})

			for _, spec := range syntax.Imports {
				if name := importName(pkg.TypesInfo, spec); name != "" {
					names.reserved[name] = struct{}{}
				}
			}
		}
	}

	t.names[pkgPath] = names

	return names
}

// distAlias returns the alias the generated package is imported under in
// the file, adding the import on first use.
func (t *Transformer) distAlias(fc *fileContext) string {
	if fc.alias != "" {
		return fc.alias
	}

	fc.alias = t.packageNames(fc.file).Reserve(t.cfg.DistPackage)
	fc.imports = append(fc.imports, &ast.ImportSpec{
		Name: ast.NewIdent(fc.alias),
		Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(t.cfg.DistImportPath)},
	})

	return fc.alias
}

// firstImport returns the first import declaration of file, or nil.
func firstImport(file *ast.File) *ast.GenDecl {
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			return gen
		}
	}

	return nil
}

// appendImports returns a copy of the import declaration gen with specs
// added at its end. A single unparenthesized import gets parentheses.
func appendImports(gen *ast.GenDecl, specs []ast.Spec) *ast.GenDecl {
	merged := *gen

	if !merged.Lparen.IsValid() {
		merged.Lparen = gen.TokPos
		merged.Rparen = gen.End()
	}

	merged.Specs = make([]ast.Spec, 0, len(gen.Specs)+len(specs))
	merged.Specs = append(merged.Specs, gen.Specs...)

	// Added specs are placed on the closing parenthesis, after every
	// comment of the block.
	for _, spec := range specs {
		is := *spec.(*ast.ImportSpec)
		path := *is.Path
		path.ValuePos = merged.Rparen
		is.Path = &path

		if is.Name != nil {
			is.Name = &ast.Ident{NamePos: merged.Rparen, Name: is.Name.Name}
		}

		merged.Specs = append(merged.Specs, &is)
	}

	return &merged
}

// importName returns the name an import binds in the file scope, or "" for
// blank, dot and unresolved imports.
func importName(info *types.Info, spec *ast.ImportSpec) string {
	if spec.Name != nil {
		switch spec.Name.Name {
		case "_", ".":
			return ""
		default:
			return spec.Name.Name
		}
	}

	if pkgName := info.PkgNameOf(spec); pkgName != nil {
		return pkgName.Imported().Name()
	}

	return ""
}

// pruneImports removes original imports the rewritten file no longer uses,
// typically the runtime package once every factory call is gone.
func (t *Transformer) pruneImports(fc *fileContext, out *ast.File) {
	used := make(map[string]bool)

	ast.Inspect(out, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = true
			}
		}

		return true
	})

	info := fc.file.Info()
	decls := out.Decls[:0:0]

	for _, decl := range out.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			decls = append(decls, decl)
			continue
		}

		var specs []ast.Spec

		for _, spec := range gen.Specs {
			is := spec.(*ast.ImportSpec)

			if name := importName(info, is); name != "" && !used[name] {
				Logger().Debug("pruned unused import",
					zap.String("file", fc.file.Path),
					zap.String("path", is.Path.Value))

				continue
			}

			specs = append(specs, is)
		}

		switch {
		case len(specs) == len(gen.Specs):
			decls = append(decls, gen)
		case len(specs) > 0:
			pruned := *gen
			pruned.Specs = specs
			decls = append(decls, &pruned)
		}
	}

	out.Decls = decls
	out.Imports = editor.Imports(out)
}
