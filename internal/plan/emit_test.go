package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uc-transformer/internal/gen"
)

// fakeBackend emits one function per binding.
type fakeBackend struct {
	mu    sync.Mutex
	fail  map[TaskKind]error
	calls map[TaskKind][]string
}

func (b *fakeBackend) Compile(_ context.Context, kind TaskKind, bindings []Binding) (*gen.Fragment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.calls == nil {
		b.calls = make(map[TaskKind][]string)
	}

	var code strings.Builder

	for _, binding := range bindings {
		b.calls[kind] = append(b.calls[kind], binding.FunctionID)
		fmt.Fprintf(&code, "func %s() string { return %q }\n\n", binding.FunctionID, binding.Specifier)
	}

	if err := b.fail[kind]; err != nil {
		return nil, err
	}

	return &gen.Fragment{Code: []byte(code.String())}, nil
}

func finalizedPlan(t *testing.T, deser, ser int) *Plan {
	t.Helper()

	root := t.TempDir()
	lib := NewLib(LibConfig{Dist: filepath.Join(root, "uclib", "uclib.go"), PackageName: "uclib"})

	for i := range deser {
		lib.CompileDeserializer(task(fmt.Sprintf("ReadValue%d", i), "M", filepath.Join(root, "deser", "deser.go")))
	}

	for i := range ser {
		lib.CompileSerializer(task(fmt.Sprintf("WriteValue%d", i), "M", filepath.Join(root, "ser", "ser.go")))
	}

	p, err := lib.Finalize()
	require.NoError(t, err)

	return p
}

func TestPlan_EmitWritesLibrary(t *testing.T) {
	p := finalizedPlan(t, 1, 2)
	backend := &fakeBackend{}

	require.NoError(t, p.Emit(context.Background(), backend))

	assert.Equal(t, []string{"ReadValue0"}, backend.calls[TaskDeserializer])
	assert.Equal(t, []string{"WriteValue0", "WriteValue1"}, backend.calls[TaskSerializer])

	content, err := os.ReadFile(p.Dist)
	require.NoError(t, err)

	src := string(content)
	assert.True(t, strings.HasPrefix(src, "// Code generated by uc-transformer. DO NOT EDIT."))
	assert.Contains(t, src, "package uclib")
	assert.Contains(t, src, `func ReadValue0() string { return "../deser/deser.go" }`)
	assert.Less(t, strings.Index(src, "ReadValue0"), strings.Index(src, "WriteValue0"))
	assert.Less(t, strings.Index(src, "WriteValue0"), strings.Index(src, "WriteValue1"))
}

func TestPlan_EmitSkipsEmptyKinds(t *testing.T) {
	p := finalizedPlan(t, 0, 1)
	backend := &fakeBackend{fail: map[TaskKind]error{TaskDeserializer: errors.New("must not run")}}

	require.NoError(t, p.Emit(context.Background(), backend))
	assert.NotContains(t, backend.calls, TaskDeserializer)
}

func TestPlan_EmitEmptyPlan(t *testing.T) {
	p := finalizedPlan(t, 0, 0)
	backend := &fakeBackend{}

	require.NoError(t, p.Emit(context.Background(), backend))
	assert.Empty(t, backend.calls)

	_, err := os.Stat(p.Dist)
	assert.True(t, os.IsNotExist(err))
}

func TestPlan_EmitBackendFailureWritesNothing(t *testing.T) {
	p := finalizedPlan(t, 1, 1)
	cause := errors.New("boom")
	backend := &fakeBackend{fail: map[TaskKind]error{TaskSerializer: cause}}

	err := p.Emit(context.Background(), backend)
	require.ErrorIs(t, err, ErrBackend)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "serializer")

	_, statErr := os.Stat(p.Dist)
	assert.True(t, os.IsNotExist(statErr), "library must not be written")
}

func TestPlan_EmitNilFragment(t *testing.T) {
	p := finalizedPlan(t, 1, 0)

	err := p.Emit(context.Background(), BackendFunc(func(context.Context, TaskKind, []Binding) (*gen.Fragment, error) {
		return nil, nil
	}))
	require.ErrorIs(t, err, ErrBackend)
}

func TestPlan_EmitInvalidCode(t *testing.T) {
	p := finalizedPlan(t, 1, 0)

	err := p.Emit(context.Background(), BackendFunc(func(context.Context, TaskKind, []Binding) (*gen.Fragment, error) {
		return &gen.Fragment{Code: []byte("func {")}, nil
	}))
	require.Error(t, err)

	_, statErr := os.Stat(p.Dist)
	assert.True(t, os.IsNotExist(statErr))
}
