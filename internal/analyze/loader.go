package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// ErrNoPackages is returned when the patterns match no package.
var ErrNoPackages = errors.New("no packages matched")

// Options configures how packages are loaded.
type Options struct {
	// Dir is the directory the patterns are resolved in. Defaults to the
	// current directory.
	Dir string
	// Env is appended to the process environment of the build system query.
	Env []string
	// BuildFlags are passed to the build system, e.g. "-tags=integration".
	BuildFlags []string
	// VFS replaces or adds file contents. Relative keys are resolved
	// against Dir.
	VFS map[string][]byte
	// Tests includes test packages.
	Tests bool
}

// Analyzer loads Go packages into a Program.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// LoadProgram loads the specified packages.
// Patterns are standard Go package patterns (e.g., "./...", "example.com/app/store").
//
// The program must type-check: any package error is returned and no Program
// is produced.
func (a *Analyzer) LoadProgram(patterns ...string) (*Program, error) {
	dir, err := a.dir()
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode:       LoadMode,
		Dir:        dir,
		Fset:       fset,
		Tests:      a.opts.Tests,
		BuildFlags: a.opts.BuildFlags,
		Overlay:    a.overlay(dir),
	}

	if len(a.opts.Env) > 0 {
		cfg.Env = append(os.Environ(), a.opts.Env...)
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoPackages, patterns)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return newProgram(fset, pkgs), nil
}

// newProgram orders the root packages so that dependencies come first.
// Test variants follow every other package, so their non-test files are
// claimed by the package itself. Generated test mains are dropped.
func newProgram(fset *token.FileSet, roots []*packages.Package) *Program {
	isRoot := make(map[*packages.Package]bool, len(roots))
	for _, pkg := range roots {
		isRoot[pkg] = true
	}

	prog := &Program{Fset: fset}

	var variants []*packages.Package

	packages.Visit(roots, nil, func(pkg *packages.Package) {
		switch {
		case !isRoot[pkg], isTestMain(pkg):
			return
		case IsTestVariant(pkg):
			variants = append(variants, pkg)
			return
		}

		prog.Packages = append(prog.Packages, pkg)

		if prog.Module == nil && pkg.Module != nil {
			prog.Module = &Module{Path: pkg.Module.Path, Dir: pkg.Module.Dir}
		}
	})

	prog.Packages = append(prog.Packages, variants...)

	return prog
}

// isTestMain reports whether pkg is the main package synthesized by
// "go test", e.g. "example.com/app.test".
func isTestMain(pkg *packages.Package) bool {
	return pkg.Name == "main" && strings.HasSuffix(pkg.ID, ".test")
}

func (a *Analyzer) dir() (string, error) {
	if a.opts.Dir == "" {
		return os.Getwd()
	}

	dir, err := filepath.Abs(a.opts.Dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", a.opts.Dir, err)
	}

	return dir, nil
}

func (a *Analyzer) overlay(dir string) map[string][]byte {
	if len(a.opts.VFS) == 0 {
		return nil
	}

	overlay := make(map[string][]byte, len(a.opts.VFS))
	for name, content := range a.opts.VFS {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}

		overlay[name] = content
	}

	return overlay
}
