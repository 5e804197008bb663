package plan

import (
	"gopkg.in/yaml.v3"
)

// Manifest is the reviewable form of a Plan.
type Manifest struct {
	Version       string             `yaml:"version"`
	Dist          string             `yaml:"dist"`
	Package       string             `yaml:"package"`
	ImportPath    string             `yaml:"import_path,omitempty"`
	Deserializers []ManifestFunction `yaml:"deserializers,omitempty"`
	Serializers   []ManifestFunction `yaml:"serializers,omitempty"`
}

// ManifestFunction describes one generated function.
type ManifestFunction struct {
	Function string `yaml:"function"`
	Model    string `yaml:"model"`
	From     string `yaml:"from"`
	Package  string `yaml:"package"`
}

// Export builds the manifest of the plan.
func Export(p *Plan) *Manifest {
	return &Manifest{
		Version:       "1",
		Dist:          p.Dist,
		Package:       p.PackageName,
		ImportPath:    p.ImportPath,
		Deserializers: exportBindings(p.Deserializers),
		Serializers:   exportBindings(p.Serializers),
	}
}

// ExportYAML renders the manifest of the plan as YAML.
func ExportYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(Export(p))
}

func exportBindings(bindings []Binding) []ManifestFunction {
	if len(bindings) == 0 {
		return nil
	}

	functions := make([]ManifestFunction, 0, len(bindings))
	for _, b := range bindings {
		functions = append(functions, ManifestFunction{
			Function: b.FunctionID,
			Model:    b.ModelID,
			From:     b.Specifier,
			Package:  b.ImportPath,
		})
	}

	return functions
}
