package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"text/template"
)

// Generator is the name stamped into generated file headers.
const Generator = "uc-transformer"

// RenderOptions configures RenderLib.
type RenderOptions struct {
	// PackageName is the package clause of the file.
	PackageName string
	// Filename is the destination of the file.
	Filename string
	// DebugDir receives an unformatted copy of the file when formatting
	// fails. Empty disables it.
	DebugDir string
}

type libTemplateData struct {
	Generator   string
	PackageName string
	Imports     []Import
	Fragments   []*Fragment
}

var libTemplate = template.Must(
	template.New("lib").
		Parse(`// Code generated by {{.Generator}}. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Fragments}}
{{printf "%s" .Code}}
{{end}}
`))

// RenderLib merges fragments into a single formatted library file. On a
// formatting failure the unformatted code is returned along with the error.
func RenderLib(opts RenderOptions, fragments ...*Fragment) (*GeneratedFile, error) {
	imports, err := mergeImports(fragments)
	if err != nil {
		return nil, err
	}

	data := &libTemplateData{
		Generator:   Generator,
		PackageName: opts.PackageName,
		Imports:     imports,
		Fragments:   fragments,
	}

	var buf bytes.Buffer
	if err := libTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if opts.DebugDir != "" {
			_ = writeDebugUnformatted(opts.DebugDir, filepath.Base(opts.Filename), buf.Bytes())
		}

		return &GeneratedFile{
			Filename: opts.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: opts.Filename,
		Content:  formatted,
	}, nil
}
