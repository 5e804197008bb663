package transform

import (
	"go/ast"
	"go/token"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ast/astutil"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/editor"
)

// fileContext holds the rewriting state of one file.
type fileContext struct {
	file    *analyze.File
	editor  *editor.Editor
	imports []ast.Spec
	alias   string
}

// statementContext holds the rewriting state of one top-level declaration.
type statementContext struct {
	file   *fileContext
	decl   ast.Decl
	prefix []ast.Decl
}

// TransformFile rewrites a single file. The parsed file is never modified:
// a new tree is returned when something was rewritten, the original one
// otherwise.
func (t *Transformer) TransformFile(file *analyze.File) *ast.File {
	fc := &fileContext{
		file:   file,
		editor: editor.New(),
	}

	for _, decl := range file.Syntax.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			for _, spec := range gen.Specs {
				t.gate.Import(file, spec.(*ast.ImportSpec))
			}

			continue
		}

		if !t.gate.Resolved() {
			continue
		}

		t.statement(fc, decl)
	}

	if fc.editor.Len() == 0 {
		return file.Syntax
	}

	var leading []ast.Decl

	if len(fc.imports) > 0 {
		if gen := firstImport(file.Syntax); gen != nil {
			fc.editor.MapNode(gen, func() []ast.Node {
				return []ast.Node{appendImports(gen, fc.imports)}
			})
		} else {
			leading = append(leading, &ast.GenDecl{Tok: token.IMPORT, Specs: fc.imports})
		}
	}

	out := fc.editor.EmitFile(file.Syntax, leading...)
	t.pruneImports(fc, out)

	Logger().Debug("rewrote file",
		zap.String("file", file.Path),
		zap.Int("replacements", fc.editor.Len()))

	return out
}

// statement visits the expressions of a top-level declaration. Hoisted
// declarations collected on the way are placed right before it.
func (t *Transformer) statement(fc *fileContext, decl ast.Decl) {
	st := &statementContext{file: fc, decl: decl}

	astutil.Apply(decl, func(c *astutil.Cursor) bool {
		call, ok := c.Node().(*ast.CallExpr)
		if !ok {
			return true
		}

		return !t.call(st, c, call)
	}, nil)

	if len(st.prefix) == 0 {
		return
	}

	fc.editor.MapNode(decl, func() []ast.Node {
		nodes := make([]ast.Node, 0, len(st.prefix)+1)
		for _, prefix := range st.prefix {
			nodes = append(nodes, prefix)
		}

		return append(nodes, fc.editor.Rebuild(decl))
	})
}
