package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"uc-transformer/internal/analyze"
	"uc-transformer/internal/backend"
	"uc-transformer/internal/config"
	"uc-transformer/internal/gen"
	"uc-transformer/internal/plan"
	"uc-transformer/internal/transform"
)

const defaultConfigFile = "uc-transformer.yaml"

type cmdTransform struct {
	configPath     string
	runtime        string
	dist           string
	outDir         string
	tags           []string
	diff           bool
	planPath       string
	compilerSource bool
	backend        []string
}

func (*cmdTransform) help() *commandHelp {
	return &commandHelp{
		usage:   "transform [packages...]",
		summary: "Rewrite factory calls and plan the generated library",
	}
}

func (cmd *cmdTransform) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.configPath, "config", "c", "", "configuration file (default "+defaultConfigFile+" when present)")
	flags.StringVar(&cmd.runtime, "runtime", "", "import path of the runtime package")
	flags.StringVar(&cmd.dist, "dist", "", "generated library file")
	flags.StringVarP(&cmd.outDir, "out", "o", "", "write rewritten files to this directory instead of in place")
	flags.StringSliceVar(&cmd.tags, "tags", nil, "build tags")
	flags.BoolVar(&cmd.diff, "diff", false, "print unified diffs instead of writing files")
	flags.StringVar(&cmd.planPath, "plan", "", "write the library plan as YAML to this file (- for stdout)")
	flags.BoolVar(&cmd.compilerSource, "compiler-source", false, "write a program compiling the library with the runtime compiler")
	flags.StringSliceVar(&cmd.backend, "backend", nil, "backend command compiling the library")
}

func (cmd *cmdTransform) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.config(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	buildFlags := []string(nil)
	if len(cfg.Tags) > 0 {
		buildFlags = append(buildFlags, "-tags="+strings.Join(cfg.Tags, ","))
	}

	prog, err := analyze.NewAnalyzer(analyze.Options{
		Dir:        cfg.Dir,
		BuildFlags: buildFlags,
		Tests:      cfg.Tests,
	}).LoadProgram(cfg.Patterns...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	dist := cfg.DistPath()

	distImportPath, distPackage, err := prog.ImportPathOf(filepath.Dir(dist))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	lib := plan.NewLib(plan.LibConfig{
		Dist:        dist,
		ImportPath:  distImportPath,
		PackageName: distPackage,
		TempDir:     cfg.TempPath(),
	})

	tr, err := transform.New(transform.Config{
		Runtime:        cfg.Runtime,
		Dist:           dist,
		DistImportPath: distImportPath,
		DistPackage:    distPackage,
	}, prog, lib)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	results := tr.Transform()

	diags := tr.Diagnostics()
	for _, d := range diags.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}

	files, err := cmd.render(prog, cfg, results)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	p, err := lib.Finalize()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Rewritten files reference the library, so they are only written once
	// the library is.
	if err := cmd.emit(ctx, cfg, p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := writeRewritten(cfg, files); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

// config loads the configuration file and applies flags on top of it.
func (cmd *cmdTransform) config(argv []string) (*config.Config, error) {
	path := cmd.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg := config.Default()

	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if cmd.runtime != "" {
		cfg.Runtime = cmd.runtime
	}

	if cmd.dist != "" {
		cfg.Dist = cmd.dist
	}

	if cmd.outDir != "" {
		cfg.OutDir = cmd.outDir
	}

	if len(cmd.tags) > 0 {
		cfg.Tags = cmd.tags
	}

	if len(cmd.backend) > 0 {
		cfg.Backend.Command = cmd.backend
	}

	if len(argv) > 0 {
		cfg.Patterns = argv
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// render prints the rewritten files. With --diff, their diffs are printed
// and nothing is returned.
func (cmd *cmdTransform) render(
	prog *analyze.Program,
	cfg *config.Config,
	results []transform.Result,
) ([]gen.GeneratedFile, error) {
	base := cfg.Dir
	if prog.Module != nil {
		base = prog.Module.Dir
	}

	var (
		files   []gen.GeneratedFile
		printer *diffPrinter
	)

	if cmd.diff {
		printer = newDiffPrinter(os.Stdout)
	}

	for _, r := range results {
		if !r.Changed() {
			continue
		}

		content, err := transform.Print(prog.Fset, r.Output)
		if err != nil {
			return nil, fmt.Errorf("printing %s: %w", r.File.Path, err)
		}

		rel, err := filepath.Rel(base, r.File.Path)
		if err != nil {
			return nil, err
		}

		if printer != nil {
			before, err := os.ReadFile(r.File.Path)
			if err != nil {
				return nil, err
			}

			if err := printer.print(filepath.ToSlash(rel), before, content); err != nil {
				return nil, err
			}

			continue
		}

		name := r.File.Path
		if cfg.OutDir != "" {
			name = rel
		}

		files = append(files, gen.GeneratedFile{Filename: name, Content: content})
	}

	return files, nil
}

// writeRewritten writes rendered files in place, or under OutDir.
func writeRewritten(cfg *config.Config, files []gen.GeneratedFile) error {
	if len(files) == 0 {
		return nil
	}

	logger.Info("writing rewritten files", zap.Int("files", len(files)), zap.String("out", cfg.OutDir))

	return gen.WriteFiles(files, cfg.OutDir)
}

// emit writes the plan outputs requested by flags and runs the backend.
func (cmd *cmdTransform) emit(ctx context.Context, cfg *config.Config, p *plan.Plan) error {
	if cmd.planPath != "" {
		data, err := plan.ExportYAML(p)
		if err != nil {
			return fmt.Errorf("exporting plan: %w", err)
		}

		if cmd.planPath == "-" {
			_, err = os.Stdout.Write(data)
		} else {
			err = os.WriteFile(cmd.planPath, data, 0o644)
		}

		if err != nil {
			return err
		}
	}

	if cmd.compilerSource {
		file, err := p.CompilerSource(cfg.Runtime)
		if err != nil {
			return err
		}

		if file != nil {
			if err := gen.WriteFiles([]gen.GeneratedFile{*file}, ""); err != nil {
				return err
			}
		}
	}

	if len(cfg.Backend.Command) == 0 {
		if !p.Empty() && !cmd.compilerSource {
			logger.Warn("no backend configured, library not emitted", zap.String("dist", p.Dist))
		}

		return nil
	}

	if cmd.diff {
		return nil
	}

	err := p.Emit(ctx, &backend.Exec{
		Command: cfg.Backend.Command,
		Dir:     cfg.Backend.Dir,
		Env:     cfg.Backend.Env,
		Package: p.PackageName,
	})
	if errors.Is(err, plan.ErrBackend) {
		return fmt.Errorf("library %s not written: %w", p.Dist, err)
	}

	return err
}
