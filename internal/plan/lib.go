package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

// ErrAlreadyFinalized is returned when a Lib is finalized twice.
var ErrAlreadyFinalized = errors.New("library plan is already finalized")

// LibConfig describes the generated library.
type LibConfig struct {
	// Dist is the path of the generated library file.
	Dist string
	// ImportPath is the import path of the package containing Dist.
	ImportPath string
	// PackageName is the package name of the generated file.
	PackageName string
	// TempDir holds intermediate files. Defaults to the directory of Dist.
	TempDir string
}

// Lib collects compile tasks of a whole program.
type Lib struct {
	cfg           LibConfig
	deserializers []CompileTask
	serializers   []CompileTask
	finalized     bool
}

// NewLib creates an empty Lib.
func NewLib(cfg LibConfig) *Lib {
	return &Lib{cfg: cfg}
}

// CompileDeserializer records a deserializer task.
func (l *Lib) CompileDeserializer(task CompileTask) {
	l.record(TaskDeserializer, task)
}

// CompileSerializer records a serializer task.
func (l *Lib) CompileSerializer(task CompileTask) {
	l.record(TaskSerializer, task)
}

func (l *Lib) record(kind TaskKind, task CompileTask) {
	if l.finalized {
		Logger().Warn("task recorded after finalization is ignored",
			zap.Stringer("kind", kind),
			zap.String("function", task.FunctionID))

		return
	}

	switch kind {
	case TaskDeserializer:
		l.deserializers = append(l.deserializers, task)
	case TaskSerializer:
		l.serializers = append(l.serializers, task)
	}
}

// Tasks returns the tasks of the given kind in discovery order.
func (l *Lib) Tasks(kind TaskKind) []CompileTask {
	switch kind {
	case TaskDeserializer:
		return slices.Clone(l.deserializers)
	case TaskSerializer:
		return slices.Clone(l.serializers)
	default:
		return nil
	}
}

// Len returns the number of recorded tasks of every kind.
func (l *Lib) Len() int {
	return len(l.deserializers) + len(l.serializers)
}

// Finalize freezes the recorded tasks into a Plan. It must be called once,
// after the whole program has been transformed.
func (l *Lib) Finalize() (*Plan, error) {
	if l.finalized {
		return nil, ErrAlreadyFinalized
	}

	l.finalized = true

	dist, err := filepath.Abs(l.cfg.Dist)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", l.cfg.Dist, err)
	}

	p := &Plan{
		Dist:        dist,
		ImportPath:  l.cfg.ImportPath,
		PackageName: l.cfg.PackageName,
		TempDir:     l.cfg.TempDir,
	}

	if p.Deserializers, err = bind(filepath.Dir(dist), l.deserializers); err != nil {
		return nil, err
	}

	if p.Serializers, err = bind(filepath.Dir(dist), l.serializers); err != nil {
		return nil, err
	}

	Logger().Info("finalized library plan",
		zap.String("dist", dist),
		zap.Int("deserializers", len(p.Deserializers)),
		zap.Int("serializers", len(p.Serializers)))

	return p, nil
}
