package plan

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"uc-transformer/internal/gen"
)

// CompilerDir is the directory, relative to the library, of the compiler
// program emitted by CompilerSource.
const CompilerDir = "uccompiler"

// ErrMainPackage is returned when a model lives in a main package, which
// the compiler program cannot import.
var ErrMainPackage = errors.New("models of a main package cannot be compiled")

// CompilerSource returns a main program that compiles the plan with the
// runtime's compiler package and writes the library file. It returns nil
// for an empty plan.
//
// The program expects the runtime to provide:
//
//	package compiler
//	type Models map[string]any
//	func NewUcdCompiler(models Models) Compiler
//	func NewUcsCompiler(models Models) Compiler
//	func Generate(ctx context.Context, pkgName string, compilers ...Compiler) ([]byte, error)
func (p *Plan) CompilerSource(runtime string) (*gen.GeneratedFile, error) {
	if p.Empty() {
		return nil, nil
	}

	f := jen.NewFile("main")
	f.HeaderComment("Code generated by " + gen.Generator + ". DO NOT EDIT.")

	if err := p.importModels(f); err != nil {
		return nil, err
	}

	compilerPkg := path.Join(runtime, "compiler")

	var (
		body      []jen.Code
		compilers []jen.Code
	)

	compilers = append(compilers, jen.Id("ctx"), jen.Lit(p.PackageName))

	for _, c := range []struct {
		kind    TaskKind
		id      string
		factory string
	}{
		{TaskDeserializer, "ucdCompiler", "NewUcdCompiler"},
		{TaskSerializer, "ucsCompiler", "NewUcsCompiler"},
	} {
		bindings := p.Bindings(c.kind)
		if len(bindings) == 0 {
			continue
		}

		models := jen.Dict{}
		for _, b := range bindings {
			models[jen.Lit(b.FunctionID)] = jen.Qual(b.ImportPath, b.ModelID)
		}

		body = append(body,
			jen.Id(c.id).Op(":=").Qual(compilerPkg, c.factory).Call(
				jen.Qual(compilerPkg, "Models").Values(models),
			),
		)
		compilers = append(compilers, jen.Id(c.id))
	}

	body = append(body,
		jen.Line(),
		jen.Id("ctx").Op(":=").Qual("context", "Background").Call(),
		jen.List(jen.Id("code"), jen.Err()).Op(":=").Qual(compilerPkg, "Generate").Call(compilers...),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Qual("log", "Fatal").Call(jen.Err()),
		),
		jen.Line(),
		jen.If(
			jen.Err().Op(":=").Qual("os", "WriteFile").Call(jen.Lit(p.Dist), jen.Id("code"), jen.Op("0o644")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Qual("log", "Fatal").Call(jen.Err()),
		),
	)

	f.Func().Id("main").Params().Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering compiler source: %w", err)
	}

	return &gen.GeneratedFile{
		Filename: filepath.Join(filepath.Dir(p.Dist), CompilerDir, "main.go"),
		Content:  buf.Bytes(),
	}, nil
}

// importModels names every model package of the program. Packages sharing
// a name get numbered aliases.
func (p *Plan) importModels(f *jen.File) error {
	taken := map[string]bool{"compiler": true, "context": true, "log": true, "os": true, "main": true}
	seen := make(map[string]bool)

	for _, kind := range TaskKinds {
		for _, b := range p.Bindings(kind) {
			if seen[b.ImportPath] {
				continue
			}

			seen[b.ImportPath] = true

			if b.PackageName == "main" {
				return fmt.Errorf("%w: %s declares %s", ErrMainPackage, b.OriginFile, b.ModelID)
			}

			alias := b.PackageName
			for i := 1; taken[alias]; i++ {
				alias = fmt.Sprintf("%s_%d", b.PackageName, i)
			}

			taken[alias] = true
			f.ImportAlias(b.ImportPath, alias)
		}
	}

	return nil
}
