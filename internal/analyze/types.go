package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"uc-transformer/internal/common"
)

// Module describes the main module of a loaded program.
type Module struct {
	Path string // e.g., "example.com/app"
	Dir  string // Absolute module root directory
}

// File is a single parsed source file of a root package.
type File struct {
	// Path is the absolute file name.
	Path string
	// Syntax is the parsed file. It is never modified by the transformer.
	Syntax *ast.File
	// Pkg is the package the file belongs to.
	Pkg *packages.Package
}

// Dir returns the directory containing the file.
func (f *File) Dir() string {
	return filepath.Dir(f.Path)
}

// Info returns the type information of the owning package.
func (f *File) Info() *types.Info {
	return f.Pkg.TypesInfo
}

// Types returns the type-checked owning package.
func (f *File) Types() *types.Package {
	return f.Pkg.Types
}

// Program holds the root packages of one compilation unit.
type Program struct {
	// Fset is shared by every syntax tree of the program.
	Fset *token.FileSet
	// Packages lists root packages with dependencies before their importers.
	Packages []*packages.Package
	// Module is the main module, or nil when loaded outside of a module.
	Module *Module
}

// Files returns every file of every root package in processing order. Each
// file is listed once: test variants of a package only contribute their
// _test.go files.
func (p *Program) Files() []*File {
	seen := make(map[string]bool)

	var files []*File

	for _, pkg := range p.Packages {
		for _, syntax := range pkg.Syntax {
			path := p.Fset.Position(syntax.Package).Filename
			if seen[path] {
				continue
			}

			seen[path] = true
			files = append(files, &File{
				Path:   path,
				Syntax: syntax,
				Pkg:    pkg,
			})
		}
	}

	return files
}

// Package returns the root package with the given import path, or nil.
// The package itself is preferred over its test variant.
func (p *Program) Package(pkgPath string) *packages.Package {
	var variant *packages.Package

	for _, pkg := range p.Packages {
		if pkg.PkgPath != pkgPath {
			continue
		}

		if !IsTestVariant(pkg) {
			return pkg
		}

		if variant == nil {
			variant = pkg
		}
	}

	return variant
}

// PackageInDir returns the root package located in dir, or nil.
func (p *Program) PackageInDir(dir string) *packages.Package {
	for _, pkg := range p.Packages {
		if IsTestVariant(pkg) {
			continue
		}

		if first, ok := common.First(pkg.GoFiles); ok && filepath.Dir(first) == dir {
			return pkg
		}
	}

	return nil
}

// IsTestVariant reports whether pkg was built for a test: the package
// recompiled with its _test.go files, or an external _test package.
func IsTestVariant(pkg *packages.Package) bool {
	return pkg.ForTest != ""
}
