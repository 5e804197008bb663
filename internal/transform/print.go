package transform

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"sort"
)

// hoistMarker formats the placeholder comments standing in for synthesized
// declarations while a file is printed. Single-line block comments are never
// reformatted by the printer.
const hoistMarker = "/*uc-transformer:hoisted:%d*/"

var printConfig = printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}

// hoisted is a run of synthesized declarations and the position of the
// declaration they precede, doc comment included.
type hoisted struct {
	anchor token.Pos
	decls  []ast.Decl
}

// Print renders a (possibly rewritten) file as gofmt-ed source.
//
// go/printer places comments by source offset, which synthesized
// declarations do not have. They are printed apart and spliced in front of
// the declaration they precede, so every comment of the original file stays
// attached to its own declaration.
func Print(fset *token.FileSet, file *ast.File) ([]byte, error) {
	filename := fset.Position(file.Package).Filename

	positioned, runs := splitHoisted(file)

	var buf bytes.Buffer
	if err := printConfig.Fprint(&buf, fset, positioned); err != nil {
		return nil, fmt.Errorf("printing %s: %w", filename, err)
	}

	src := buf.Bytes()

	for i, run := range runs {
		text, err := printDecls(run.decls)
		if err != nil {
			return nil, fmt.Errorf("printing %s: %w", filename, err)
		}

		if !run.anchor.IsValid() {
			src = append(src, text...)
			continue
		}

		src = bytes.Replace(src, []byte(marker(i)), text, 1)
	}

	formatted, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("formatting %s: %w (unformatted code returned)", filename, err)
	}

	return formatted, nil
}

// splitHoisted removes synthesized declarations from file and leaves a
// marker comment right before the doc comment of the declaration following
// each run of them.
func splitHoisted(file *ast.File) (*ast.File, []hoisted) {
	var (
		decls   []ast.Decl
		runs    []hoisted
		pending []ast.Decl
	)

	for _, decl := range file.Decls {
		if !decl.Pos().IsValid() {
			pending = append(pending, decl)
			continue
		}

		if len(pending) > 0 {
			runs = append(runs, hoisted{anchor: declStart(decl), decls: pending})
			pending = nil
		}

		decls = append(decls, decl)
	}

	if len(pending) > 0 {
		runs = append(runs, hoisted{decls: pending})
	}

	if len(runs) == 0 {
		return file, nil
	}

	comments := make([]*ast.CommentGroup, 0, len(file.Comments)+len(runs))
	comments = append(comments, file.Comments...)

	for i, run := range runs {
		if !run.anchor.IsValid() {
			continue
		}

		comments = append(comments, &ast.CommentGroup{List: []*ast.Comment{{
			Slash: run.anchor - 1,
			Text:  marker(i),
		}}})
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Pos() < comments[j].Pos()
	})

	out := *file
	out.Decls = decls
	out.Comments = comments

	return &out, runs
}

// declStart returns the position of decl's doc comment, or of decl itself.
func declStart(decl ast.Decl) token.Pos {
	var doc *ast.CommentGroup

	switch d := decl.(type) {
	case *ast.GenDecl:
		doc = d.Doc
	case *ast.FuncDecl:
		doc = d.Doc
	}

	if doc != nil {
		return doc.Pos()
	}

	return decl.Pos()
}

func printDecls(decls []ast.Decl) ([]byte, error) {
	fset := token.NewFileSet()

	var buf bytes.Buffer

	buf.WriteByte('\n')

	for _, decl := range decls {
		if err := printConfig.Fprint(&buf, fset, decl); err != nil {
			return nil, err
		}

		buf.WriteString("\n\n")
	}

	return buf.Bytes(), nil
}

func marker(i int) string {
	return fmt.Sprintf(hoistMarker, i)
}
