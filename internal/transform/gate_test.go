package transform

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/plan"
)

// firstCall returns the first call of the file whose callee is named name.
func firstCall(t *testing.T, file *analyze.File, name string) *ast.CallExpr {
	t.Helper()

	var found *ast.CallExpr

	ast.Inspect(file.Syntax, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || found != nil {
			return found == nil
		}

		if id := calleeIdent(call.Fun); id != nil && id.Name == name {
			found = call
		}

		return true
	})
	require.NotNil(t, found, "no call to %s", name)

	return found
}

func importAll(g *Gate, file *analyze.File) {
	for _, spec := range file.Syntax.Imports {
		g.Import(file, spec)
	}
}

func TestGate_UnresolvedMatchesNothing(t *testing.T) {
	prog := loadFixture(t)
	file := fixtureFile(t, prog, "ser/ser.go")
	g := NewGate(fixtureRuntime, prog)

	_, ok := g.Match(file.Info(), firstCall(t, file, SerializerFactory))
	assert.False(t, ok)
	assert.False(t, g.Resolved())
	assert.Nil(t, g.Exports())
}

func TestGate_DirectImport(t *testing.T) {
	prog := loadFixture(t)
	file := fixtureFile(t, prog, "ser/ser.go")
	g := NewGate(fixtureRuntime, prog)

	importAll(g, file)
	require.True(t, g.Resolved())
	assert.NotNil(t, g.Exports().Deserializer)
	assert.NotNil(t, g.Exports().Serializer)

	kind, ok := g.Match(file.Info(), firstCall(t, file, SerializerFactory))
	require.True(t, ok)
	assert.Equal(t, plan.TaskSerializer, kind)
}

func TestGate_AliasedImport(t *testing.T) {
	prog := loadFixture(t)
	file := fixtureFile(t, prog, "viaalias/viaalias.go")
	g := NewGate(fixtureRuntime, prog)

	importAll(g, file)

	kind, ok := g.Match(file.Info(), firstCall(t, file, DeserializerFactory))
	require.True(t, ok)
	assert.Equal(t, plan.TaskDeserializer, kind)
}

func TestGate_Reexport(t *testing.T) {
	prog := loadFixture(t)
	file := fixtureFile(t, prog, "viareexport/viareexport.go")
	g := NewGate(fixtureRuntime, prog)

	importAll(g, file)
	require.True(t, g.Resolved(), "runtime is reachable through the re-exporting package")

	kind, ok := g.Match(file.Info(), firstCall(t, file, "CreateSerializer"))
	require.True(t, ok)
	assert.Equal(t, plan.TaskSerializer, kind)
}

func TestGate_SameNameIsNotAMatch(t *testing.T) {
	prog := loadFixture(t)
	g := NewGate(fixtureRuntime, prog)
	importAll(g, fixtureFile(t, prog, "ser/ser.go"))

	file := fixtureFile(t, prog, "none/none.go")

	_, ok := g.Match(file.Info(), firstCall(t, file, SerializerFactory))
	assert.False(t, ok)

	_, ok = g.Match(file.Info(), firstCall(t, file, "ToUpper"))
	assert.False(t, ok)
}

func TestGate_OtherRuntime(t *testing.T) {
	prog := loadFixture(t)
	file := fixtureFile(t, prog, "ser/ser.go")
	g := NewGate("example.com/elsewhere/churi", prog)

	importAll(g, file)
	assert.False(t, g.Resolved())
}
