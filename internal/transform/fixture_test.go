package transform

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/plan"
)

const (
	fixtureDir     = "testdata/uctest"
	fixtureRuntime = "example.com/uctest/churi"
)

var (
	fixtureOnce sync.Once
	fixtureProg *analyze.Program
	fixtureErr  error
)

// loadFixture loads the fixture module once. Transformers never modify
// parsed files, so the program is shared between tests.
func loadFixture(t *testing.T) *analyze.Program {
	t.Helper()

	fixtureOnce.Do(func() {
		fixtureProg, fixtureErr = analyze.NewAnalyzer(analyze.Options{
			Dir: fixtureDir,
			Env: []string{"GOWORK=off"},
		}).LoadProgram("./...")
	})
	require.NoError(t, fixtureErr)

	return fixtureProg
}

// fixtureFile returns the file whose path ends with name, e.g. "multi/a/a.go".
func fixtureFile(t *testing.T, prog *analyze.Program, name string) *analyze.File {
	t.Helper()

	suffix := string(filepath.Separator) + filepath.FromSlash(name)
	for _, file := range prog.Files() {
		if strings.HasSuffix(file.Path, suffix) {
			return file
		}
	}

	require.Failf(t, "fixture file not found", "%s", name)

	return nil
}

// newFixtureTransformer creates a transformer generating into uclib/uclib.go.
func newFixtureTransformer(t *testing.T, prog *analyze.Program) (*Transformer, *plan.Lib) {
	t.Helper()

	dist := filepath.Join(fixtureDir, "uclib", "uclib.go")
	lib := plan.NewLib(plan.LibConfig{Dist: dist})

	tr, err := New(Config{Runtime: fixtureRuntime, Dist: dist}, prog, lib)
	require.NoError(t, err)

	return tr, lib
}

// transformed transforms the named files in order and prints the last one.
func transformed(t *testing.T, tr *Transformer, prog *analyze.Program, names ...string) string {
	t.Helper()

	var out []byte

	for _, name := range names {
		file := fixtureFile(t, prog, name)

		var err error
		out, err = Print(prog.Fset, tr.TransformFile(file))
		require.NoError(t, err)
	}

	return string(out)
}

func taskIDs(lib *plan.Lib, kind plan.TaskKind) (fnIDs, modelIDs []string) {
	for _, task := range lib.Tasks(kind) {
		fnIDs = append(fnIDs, task.FunctionID)
		modelIDs = append(modelIDs, task.ModelID)
	}

	return fnIDs, modelIDs
}
