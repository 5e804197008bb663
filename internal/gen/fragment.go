package gen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrImportConflict is returned when two fragments import different
// packages under the same name.
var ErrImportConflict = errors.New("conflicting imports")

// Import is one import of a generated file.
type Import struct {
	// Alias is the local package name. Empty means the package's own name.
	Alias string `json:"alias,omitempty"`
	// Path is the import path.
	Path string `json:"path"`
}

// Fragment is a piece of generated code contributed by a backend.
type Fragment struct {
	// Imports used by Code.
	Imports []Import `json:"imports,omitempty"`
	// Code holds top-level declarations, without package clause or imports.
	Code []byte `json:"code"`
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the path of the file, relative to the output directory
	// or absolute.
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// mergeImports deduplicates the imports of fragments, sorted by path.
func mergeImports(fragments []*Fragment) ([]Import, error) {
	byPath := make(map[string]Import)
	byAlias := make(map[string]string)

	for _, fragment := range fragments {
		for _, imp := range fragment.Imports {
			if prev, ok := byPath[imp.Path]; ok {
				if prev.Alias != imp.Alias {
					return nil, fmt.Errorf("%w: %q imported as %q and %q",
						ErrImportConflict, imp.Path, prev.Alias, imp.Alias)
				}

				continue
			}

			if imp.Alias != "" {
				if path, ok := byAlias[imp.Alias]; ok {
					return nil, fmt.Errorf("%w: %q names both %q and %q",
						ErrImportConflict, imp.Alias, path, imp.Path)
				}

				byAlias[imp.Alias] = imp.Path
			}

			byPath[imp.Path] = imp
		}
	}

	imports := make([]Import, 0, len(byPath))
	for _, imp := range byPath {
		imports = append(imports, imp)
	}

	slices.SortFunc(imports, func(a, b Import) int {
		return strings.Compare(a.Path, b.Path)
	})

	return imports, nil
}
