package plan

import (
	"fmt"
	"path/filepath"
	"strings"

	"uc-transformer/internal/common"
)

// Binding ties a generated function to the model it is compiled from.
type Binding struct {
	// FunctionID is the generated function name.
	FunctionID string
	// ModelID is the hoisted model variable.
	ModelID string
	// Specifier is the slash-separated path of the origin file relative to
	// the library directory, always starting with "./" or "../".
	Specifier string
	// ImportPath is the import path of the package declaring ModelID.
	ImportPath string
	// PackageName is the name of that package.
	PackageName string
	// OriginFile is the absolute path of the file declaring ModelID.
	OriginFile string
}

// Plan is the frozen view of a Lib. It is read-only.
type Plan struct {
	// Dist is the absolute path of the library file to write.
	Dist string
	// ImportPath is the import path of the library package.
	ImportPath string
	// PackageName is the package name of the library file.
	PackageName string
	// TempDir holds intermediate files.
	TempDir string
	// Deserializers and Serializers are bindings in discovery order.
	Deserializers []Binding
	Serializers   []Binding
}

// Empty reports whether there is nothing to generate.
func (p *Plan) Empty() bool {
	return common.IsEmpty(p.Deserializers) && common.IsEmpty(p.Serializers)
}

// Bindings returns the bindings of the given kind.
func (p *Plan) Bindings(kind TaskKind) []Binding {
	switch kind {
	case TaskDeserializer:
		return p.Deserializers
	case TaskSerializer:
		return p.Serializers
	default:
		return nil
	}
}

func bind(distDir string, tasks []CompileTask) ([]Binding, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	bindings := make([]Binding, 0, len(tasks))

	for _, task := range tasks {
		spec, err := Specifier(distDir, task.OriginFile)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", task.FunctionID, err)
		}

		bindings = append(bindings, Binding{
			FunctionID:  task.FunctionID,
			ModelID:     task.ModelID,
			Specifier:   spec,
			ImportPath:  task.OriginPackage,
			PackageName: task.OriginPackageName,
			OriginFile:  task.OriginFile,
		})
	}

	return bindings, nil
}

// Specifier returns the path of file relative to dir, with forward slashes
// and a leading "./" or "../".
func Specifier(dir, file string) (string, error) {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return "", err
	}

	spec := filepath.ToSlash(rel)
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		spec = "./" + spec
	}

	return spec, nil
}
