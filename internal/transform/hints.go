package transform

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"uc-transformer/internal/diagnostic"
	"uc-transformer/internal/match"
)

// hints reports likely configuration mistakes once the whole program is
// transformed.
func (t *Transformer) hints() {
	if !t.gate.Resolved() {
		t.runtimeHint()
		return
	}

	exports := t.gate.Exports()

	if exports.Deserializer == nil {
		t.factoryHint(DeserializerFactory)
	}

	if exports.Serializer == nil {
		t.factoryHint(SerializerFactory)
	}
}

// runtimeHint suggests an imported package whose path is close to the
// configured runtime.
func (t *Transformer) runtimeHint() {
	seen := make(map[string]bool)

	var paths []string

	for _, file := range t.prog.Files() {
		for _, spec := range file.Syntax.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil || seen[path] {
				continue
			}

			seen[path] = true
			paths = append(paths, path)
		}
	}

	suggestion, ok := match.Closest(t.cfg.Runtime, paths, match.Budget(t.cfg.Runtime))
	if !ok {
		return
	}

	msg := fmt.Sprintf("runtime %s is not imported, did you mean %s?", t.cfg.Runtime, suggestion)
	t.diags.AddWarning(diagnostic.CodeRuntimeNotImported, msg, "", "")
	Logger().Warn(msg, zap.String("runtime", t.cfg.Runtime))
}

// factoryHint reports a factory missing from the runtime package.
func (t *Transformer) factoryHint(name string) {
	runtime := t.gate.Runtime()

	msg := fmt.Sprintf("runtime %s does not export %s", runtime.Path(), name)
	if suggestion, ok := match.Closest(name, runtime.Scope().Names(), match.Budget(name)); ok {
		msg += fmt.Sprintf(", did you mean %s?", suggestion)
	}

	t.diags.AddWarning(diagnostic.CodeMissingFactory, msg, "", "")
	Logger().Warn(msg, zap.String("runtime", runtime.Path()))
}
