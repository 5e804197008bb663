package transform

import (
	"fmt"
	"go/ast"
	"go/token"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ast/astutil"

	"uc-transformer/internal/common"
	"uc-transformer/internal/diagnostic"
	"uc-transformer/internal/editor"
	"uc-transformer/internal/plan"
)

const (
	// modelSuffix is appended to the seed of a hoisted model variable.
	modelSuffix = "_ucModel"
	// modelFallback names hoisted models of calls without a variable name.
	modelFallback = "UcModel"
)

// fallbackSeed returns the function seed of calls without a variable name.
func fallbackSeed(kind plan.TaskKind) string {
	if kind == plan.TaskSerializer {
		return "writeValue"
	}

	return "readValue"
}

// call rewrites a recognized factory call. It reports whether the call was
// rewritten; children of a rewritten call are not visited.
func (t *Transformer) call(st *statementContext, c *astutil.Cursor, call *ast.CallExpr) bool {
	if len(call.Args) == 0 {
		// Model argument required.
		return false
	}

	file := st.file.file

	kind, ok := t.gate.Match(file.Info(), call)
	if !ok {
		return false
	}

	if discarded(c) {
		t.diags.AddInfo(diagnostic.CodeDiscardedCall,
			fmt.Sprintf("result of %s call is discarded, call left as is", kind),
			t.position(call.Pos()), "")

		return false
	}

	replacement := t.extractModel(st, c, call, kind)
	st.file.editor.MapNode(call, func() []ast.Node {
		return []ast.Node{replacement}
	})

	return true
}

// discarded reports whether the call's value is unused. Such calls cannot
// be replaced by a function reference.
func discarded(c *astutil.Cursor) bool {
	switch c.Parent().(type) {
	case *ast.ExprStmt:
		return true
	case *ast.GoStmt, *ast.DeferStmt:
		return c.Name() == "Call"
	default:
		return false
	}
}

// extractModel hoists the model of call, imports the generated function and
// records the compile task. It returns the expression replacing the call.
func (t *Transformer) extractModel(
	st *statementContext,
	c *astutil.Cursor,
	call *ast.CallExpr,
	kind plan.TaskKind,
) ast.Expr {
	fc := st.file
	file := fc.file
	names := t.packageNames(file)

	var fnID, modelID string
	if name := variableName(c); name != "" {
		fnID = t.fnIDs.Reserve(common.Exported(name))
		modelID = names.Reserve(common.Exported(name) + modelSuffix)
	} else {
		fnID = t.fnIDs.Reserve(common.Exported(fallbackSeed(kind)))
		modelID = names.Reserve(modelFallback)
	}

	st.prefix = append(st.prefix, &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent(modelID)},
			Values: []ast.Expr{editor.Clone(call.Args[0])},
		}},
	})

	if len(call.Args) > 1 {
		msg := fmt.Sprintf("%s call has %d arguments, only the model is kept", kind, len(call.Args))
		t.diags.AddWarning(diagnostic.CodeExtraArguments, msg, t.position(call.Pos()), fnID)
		Logger().Warn(msg, zap.String("position", t.position(call.Pos())), zap.String("function", fnID))
	}

	task := plan.CompileTask{
		FunctionID:        fnID,
		ModelID:           modelID,
		OriginFile:        file.Path,
		OriginPackage:     file.Pkg.PkgPath,
		OriginPackageName: file.Pkg.Name,
	}

	switch kind {
	case plan.TaskDeserializer:
		t.tasks.CompileDeserializer(task)
	case plan.TaskSerializer:
		t.tasks.CompileSerializer(task)
	}

	Logger().Debug("extracted model",
		zap.Stringer("kind", kind),
		zap.String("function", fnID),
		zap.String("model", modelID),
		zap.String("position", t.position(call.Pos())))

	// The replacement takes the place of the call, so comments around it
	// are printed where they were.
	pos := call.Pos()

	if file.Pkg.PkgPath == t.cfg.DistImportPath {
		// The generated file joins this package.
		return &ast.Ident{NamePos: pos, Name: fnID}
	}

	return &ast.SelectorExpr{
		X:   &ast.Ident{NamePos: pos, Name: t.distAlias(fc)},
		Sel: &ast.Ident{NamePos: pos, Name: fnID},
	}
}

// variableName returns the name of the variable the call initializes, or ""
// when there is none. Only declarations count: `var x = call` and
// `x := call`, not assignments to existing variables.
func variableName(c *astutil.Cursor) string {
	var lhs []ast.Expr

	switch parent := c.Parent().(type) {
	case *ast.ValueSpec:
		if c.Name() != "Values" || len(parent.Names) != len(parent.Values) {
			return ""
		}

		return identName(parent.Names[c.Index()])

	case *ast.AssignStmt:
		if parent.Tok != token.DEFINE || c.Name() != "Rhs" || len(parent.Lhs) != len(parent.Rhs) {
			return ""
		}

		lhs = parent.Lhs

	default:
		return ""
	}

	id, ok := lhs[c.Index()].(*ast.Ident)
	if !ok {
		return ""
	}

	return identName(id)
}

func identName(id *ast.Ident) string {
	if id.Name == "_" {
		return ""
	}

	return id.Name
}

func (t *Transformer) position(pos token.Pos) string {
	return t.prog.Fset.Position(pos).String()
}
