package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"uc-transformer/internal/gen"
	"uc-transformer/internal/plan"
)

// ErrNoCommand is returned when Exec has no command to run.
var ErrNoCommand = errors.New("backend command is not set")

// Request is the JSON document written to the command's stdin.
type Request struct {
	Kind     string           `json:"kind"`
	Package  string           `json:"package"`
	Bindings []RequestBinding `json:"bindings"`
}

// RequestBinding is one function to compile.
type RequestBinding struct {
	Function   string `json:"function"`
	Model      string `json:"model"`
	ImportPath string `json:"importPath"`
	From       string `json:"from"`
}

// Response is the JSON document read from the command's stdout.
type Response struct {
	Imports []gen.Import `json:"imports,omitempty"`
	Code    string       `json:"code"`
}

// Exec compiles bindings by running an external command. The task kind is
// appended to the arguments.
type Exec struct {
	// Command is the program and its leading arguments.
	Command []string
	// Dir is the working directory of the command.
	Dir string
	// Env is appended to the current environment.
	Env []string
	// Package is the package name of the generated library.
	Package string
}

var _ plan.Backend = (*Exec)(nil)

// Compile implements plan.Backend.
func (e *Exec) Compile(ctx context.Context, kind plan.TaskKind, bindings []plan.Binding) (*gen.Fragment, error) {
	if len(e.Command) == 0 {
		return nil, ErrNoCommand
	}

	req := Request{
		Kind:     kind.String(),
		Package:  e.Package,
		Bindings: make([]RequestBinding, 0, len(bindings)),
	}

	for _, b := range bindings {
		req.Bindings = append(req.Bindings, RequestBinding{
			Function:   b.FunctionID,
			Model:      b.ModelID,
			ImportPath: b.ImportPath,
			From:       b.Specifier,
		})
	}

	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	args := append(append([]string(nil), e.Command[1:]...), kind.String())

	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", e.Command[0], err, msg)
		}

		return nil, fmt.Errorf("running %s: %w", e.Command[0], err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", e.Command[0], err)
	}

	return &gen.Fragment{Imports: resp.Imports, Code: []byte(resp.Code)}, nil
}
