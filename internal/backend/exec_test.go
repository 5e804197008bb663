package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uc-transformer/internal/gen"
	"uc-transformer/internal/plan"
)

// TestHelperProcess is not a real test. It acts as the backend command when
// UC_BACKEND_HELPER is set.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv("UC_BACKEND_HELPER")
	if mode == "" {
		return
	}

	defer os.Exit(0)

	if mode == "fail" {
		fmt.Fprint(os.Stderr, "model is not compilable")
		os.Exit(3)
	}

	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(2)
	}

	if mode == "garbage" {
		fmt.Print("not json")
		return
	}

	kind := os.Args[len(os.Args)-1]

	var code string
	for _, b := range req.Bindings {
		code += fmt.Sprintf("// %s %s\nfunc %s() {}\n", kind, b.From, b.Function)
	}

	_ = json.NewEncoder(os.Stdout).Encode(Response{
		Imports: []gen.Import{{Path: "example.com/" + req.Package}},
		Code:    code,
	})
	_, _ = io.Copy(io.Discard, os.Stdin)
}

func helper(mode string) *Exec {
	return &Exec{
		Command: []string{os.Args[0], "-test.run=^TestHelperProcess$", "--"},
		Env:     []string{"UC_BACKEND_HELPER=" + mode},
		Package: "uclib",
	}
}

var bindings = []plan.Binding{
	{FunctionID: "ReadValue", ModelID: "ReadValue_ucModel", Specifier: "../deser/deser.go"},
	{FunctionID: "ReadValue_1", ModelID: "UcModel", Specifier: "./local.go"},
}

func TestExec_Compile(t *testing.T) {
	fragment, err := helper("ok").Compile(context.Background(), plan.TaskDeserializer, bindings)
	require.NoError(t, err)

	assert.Equal(t, []gen.Import{{Path: "example.com/uclib"}}, fragment.Imports)
	assert.Equal(t,
		"// deserializer ../deser/deser.go\nfunc ReadValue() {}\n// deserializer ./local.go\nfunc ReadValue_1() {}\n",
		string(fragment.Code))
}

func TestExec_CompileFailure(t *testing.T) {
	_, err := helper("fail").Compile(context.Background(), plan.TaskSerializer, bindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is not compilable")
}

func TestExec_CompileBadOutput(t *testing.T) {
	_, err := helper("garbage").Compile(context.Background(), plan.TaskSerializer, bindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestExec_NoCommand(t *testing.T) {
	_, err := (&Exec{}).Compile(context.Background(), plan.TaskSerializer, bindings)
	require.ErrorIs(t, err, ErrNoCommand)
}
