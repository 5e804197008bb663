// Package compiler generates serializer libraries.
package compiler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"example.com/uctest/churi"
)

// Models maps function names to models.
type Models map[string]churi.Model

// Compiler emits functions of one kind.
type Compiler interface {
	emit(b *strings.Builder)
}

type compiler struct {
	kind   string
	models Models
}

func (c *compiler) emit(b *strings.Builder) {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(b, "\n// %s %s\nvar %s any\n", c.kind, churi.Name(c.models[name]), name)
	}
}

// NewUcdCompiler creates a deserializer compiler.
func NewUcdCompiler(models Models) Compiler {
	return &compiler{kind: "deserializer", models: models}
}

// NewUcsCompiler creates a serializer compiler.
func NewUcsCompiler(models Models) Compiler {
	return &compiler{kind: "serializer", models: models}
}

// Generate renders the library of pkgName.
func Generate(ctx context.Context, pkgName string, compilers ...Compiler) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n", pkgName)

	for _, c := range compilers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.emit(&b)
	}

	return []byte(b.String()), nil
}
