package analyze

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"uc-transformer/internal/common"
)

var (
	// ErrNoModule is returned when a directory is not inside a Go module.
	ErrNoModule = errors.New("not inside a Go module")
	// ErrOutsideModule is returned when a directory is outside the module it is resolved against.
	ErrOutsideModule = errors.New("directory is outside of the module")
)

// FindModule returns the module containing dir by locating the nearest
// go.mod. The directory itself does not have to exist.
func FindModule(dir string) (*Module, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for d := dir; ; d = filepath.Dir(d) {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))

		switch {
		case err == nil:
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return nil, fmt.Errorf("%s: no module directive", filepath.Join(d, "go.mod"))
			}

			return &Module{Path: modPath, Dir: d}, nil

		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}

		if filepath.Dir(d) == d {
			return nil, fmt.Errorf("%w: %s", ErrNoModule, dir)
		}
	}
}

// ImportPath returns the import path of the package located in dir.
func (m *Module) ImportPath(dir string) (string, error) {
	rel, err := filepath.Rel(m.Dir, dir)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w %s: %s", ErrOutsideModule, m.Path, dir)
	}

	return path.Join(m.Path, rel), nil
}

// ImportPathOf returns the import path and package name of the package in
// dir. The package does not have to exist yet: its import path is then
// derived from the enclosing module and its name from the last path element.
func (p *Program) ImportPathOf(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	if pkg := p.PackageInDir(dir); pkg != nil {
		return pkg.PkgPath, pkg.Name, nil
	}

	mod := p.Module
	if mod == nil {
		if mod, err = FindModule(dir); err != nil {
			return "", "", err
		}
	}

	importPath, err := mod.ImportPath(dir)
	if errors.Is(err, ErrOutsideModule) {
		// Generated output may live in another module of the workspace.
		if mod, err = FindModule(dir); err != nil {
			return "", "", err
		}

		importPath, err = mod.ImportPath(dir)
	}

	if err != nil {
		return "", "", err
	}

	return importPath, common.PkgAlias(importPath), nil
}
