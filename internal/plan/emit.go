package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uc-transformer/internal/gen"
)

// ErrBackend wraps every failure reported by a Backend.
var ErrBackend = errors.New("backend failed")

// Backend compiles the bindings of one kind into library code.
type Backend interface {
	Compile(ctx context.Context, kind TaskKind, bindings []Binding) (*gen.Fragment, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, kind TaskKind, bindings []Binding) (*gen.Fragment, error)

// Compile calls f.
func (f BackendFunc) Compile(ctx context.Context, kind TaskKind, bindings []Binding) (*gen.Fragment, error) {
	return f(ctx, kind, bindings)
}

// Emit compiles every non-empty kind concurrently and writes the library
// file. Nothing is written unless every compilation succeeds. An empty plan
// writes nothing.
func (p *Plan) Emit(ctx context.Context, backend Backend) error {
	if p.Empty() {
		Logger().Debug("nothing to emit", zap.String("dist", p.Dist))
		return nil
	}

	fragments := make([]*gen.Fragment, len(TaskKinds))
	g, gctx := errgroup.WithContext(ctx)

	for i, kind := range TaskKinds {
		bindings := p.Bindings(kind)
		if len(bindings) == 0 {
			continue
		}

		g.Go(func() error {
			fragment, err := backend.Compile(gctx, kind, bindings)
			if err != nil {
				return fmt.Errorf("%w: compiling %s: %w", ErrBackend, kind, err)
			}

			if fragment == nil {
				return fmt.Errorf("%w: compiling %s: no code returned", ErrBackend, kind)
			}

			Logger().Debug("compiled",
				zap.Stringer("kind", kind),
				zap.Int("functions", len(bindings)))

			fragments[i] = fragment

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	compiled := make([]*gen.Fragment, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment != nil {
			compiled = append(compiled, fragment)
		}
	}

	file, err := gen.RenderLib(gen.RenderOptions{
		PackageName: p.PackageName,
		Filename:    p.Dist,
		DebugDir:    p.TempDir,
	}, compiled...)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", p.Dist, err)
	}

	if err := gen.WriteFileAtomic(p.Dist, file.Content, p.TempDir); err != nil {
		return err
	}

	Logger().Info("emitted library", zap.String("dist", p.Dist))

	return nil
}
