package transform

import (
	"errors"
	"fmt"
	"go/ast"
	"path/filepath"

	"go.uber.org/zap"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/diagnostic"
	"uc-transformer/internal/plan"
)

// ErrNoRuntime is returned when no runtime import path is configured.
var ErrNoRuntime = errors.New("runtime import path is not set")

// Config configures a Transformer.
type Config struct {
	// Runtime is the import path of the package exporting the factories.
	Runtime string
	// Dist is the path of the generated library file. Its directory is the
	// generated package imported by rewritten files.
	Dist string
	// DistImportPath overrides the import path of the generated package.
	DistImportPath string
	// DistPackage overrides the package name of the generated package.
	DistPackage string
}

// Transformer rewrites the files of one program. It must not be shared
// between programs: reserved identifiers are scoped to it.
type Transformer struct {
	cfg   Config
	prog  *analyze.Program
	tasks plan.Tasks
	gate  *Gate
	fnIDs *Registry
	names map[string]*Registry
	diags diagnostic.Diagnostics
}

// Result is the outcome of transforming one file.
type Result struct {
	File *analyze.File
	// Output is the rewritten file, or File.Syntax when nothing was rewritten.
	Output *ast.File
}

// Changed reports whether the file was rewritten.
func (r Result) Changed() bool {
	return r.Output != r.File.Syntax
}

// New creates a Transformer reporting compile tasks to tasks.
func New(cfg Config, prog *analyze.Program, tasks plan.Tasks) (*Transformer, error) {
	if cfg.Runtime == "" {
		return nil, ErrNoRuntime
	}

	if cfg.DistImportPath == "" || cfg.DistPackage == "" {
		dist, err := filepath.Abs(cfg.Dist)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", cfg.Dist, err)
		}

		importPath, name, err := prog.ImportPathOf(filepath.Dir(dist))
		if err != nil {
			return nil, fmt.Errorf("generated package of %s: %w", cfg.Dist, err)
		}

		if cfg.DistImportPath == "" {
			cfg.DistImportPath = importPath
		}

		if cfg.DistPackage == "" {
			cfg.DistPackage = name
		}
	}

	return &Transformer{
		cfg:   cfg,
		prog:  prog,
		tasks: tasks,
		gate:  NewGate(cfg.Runtime, prog),
		fnIDs: NewRegistry(distNames(cfg, prog)...),
		names: make(map[string]*Registry),
	}, nil
}

// distNames returns the names declared by the generated package outside of
// the generated file, which generated functions must not redeclare.
func distNames(cfg Config, prog *analyze.Program) []string {
	pkg := prog.Package(cfg.DistImportPath)
	if pkg == nil || pkg.Types == nil {
		return nil
	}

	dist, _ := filepath.Abs(cfg.Dist)
	scope := pkg.Types.Scope()

	var names []string

	for _, name := range scope.Names() {
		if prog.Fset.Position(scope.Lookup(name).Pos()).Filename == dist {
			continue
		}

		names = append(names, name)
	}

	return names
}

// Config returns the configuration with the generated package resolved.
func (t *Transformer) Config() Config {
	return t.cfg
}

// Gate returns the symbol gate of the program.
func (t *Transformer) Gate() *Gate {
	return t.gate
}

// Diagnostics returns the findings collected so far.
func (t *Transformer) Diagnostics() diagnostic.Diagnostics {
	return t.diags
}

// Transform rewrites every file of the program, in program order.
func (t *Transformer) Transform() []Result {
	files := t.prog.Files()
	results := make([]Result, 0, len(files))

	for _, file := range files {
		results = append(results, Result{File: file, Output: t.TransformFile(file)})
	}

	t.hints()

	Logger().Info("transformed program",
		zap.Int("files", len(files)),
		zap.Int("functions", t.fnIDs.Len()),
		zap.Bool("runtime", t.gate.Resolved()))

	return results
}
