package editor

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
)

// Producer yields the nodes that replace a mapped node in the output.
type Producer func() []ast.Node

var (
	nodeType = reflect.TypeFor[ast.Node]()
	posType  = reflect.TypeFor[token.Pos]()
)

// Editor holds the replacements registered for one file.
type Editor struct {
	producers map[ast.Node]Producer
}

// New creates an empty Editor.
func New() *Editor {
	return &Editor{producers: make(map[ast.Node]Producer)}
}

// MapNode registers the producer of node's replacement.
// A node may be mapped at most once; mapping it again panics.
func (e *Editor) MapNode(node ast.Node, producer Producer) {
	if _, ok := e.producers[node]; ok {
		panic(fmt.Sprintf("editor: %T at %d is already mapped", node, node.Pos()))
	}

	e.producers[node] = producer
}

// IsMapped reports whether a producer is registered for node.
func (e *Editor) IsMapped(node ast.Node) bool {
	_, ok := e.producers[node]
	return ok
}

// Len returns the number of mapped nodes.
func (e *Editor) Len() int {
	return len(e.producers)
}

// EmitNode returns the nodes that take node's place in the output.
// For a mapped node this is the producer's result, otherwise the rebuilt node.
func (e *Editor) EmitNode(node ast.Node) []ast.Node {
	if producer, ok := e.producers[node]; ok {
		return producer()
	}

	return []ast.Node{e.Rebuild(node)}
}

// Rebuild returns node with its children emitted. Producers registered for
// node itself are not consulted, so a producer may call Rebuild on its own
// node to embed the rewritten original.
//
// The original node is returned when no descendant is mapped.
func (e *Editor) Rebuild(node ast.Node) ast.Node {
	if node == nil || len(e.producers) == 0 {
		return node
	}

	v := reflect.ValueOf(node)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return node
	}

	elem := v.Elem()

	var out reflect.Value

	for i := range elem.NumField() {
		if !elem.Type().Field(i).IsExported() {
			continue
		}

		replaced, changed := e.rebuildField(elem.Field(i))
		if !changed {
			continue
		}

		if !out.IsValid() {
			out = reflect.New(elem.Type())
			out.Elem().Set(elem)
		}

		out.Elem().Field(i).Set(replaced)
	}

	if !out.IsValid() {
		return node
	}

	return out.Interface().(ast.Node)
}

func (e *Editor) rebuildField(field reflect.Value) (reflect.Value, bool) {
	switch field.Kind() {
	case reflect.Interface, reflect.Pointer:
		if field.IsNil() {
			return field, false
		}

		child, ok := field.Interface().(ast.Node)
		if !ok {
			return field, false
		}

		emitted := e.EmitNode(child)
		if len(emitted) != 1 {
			panic(fmt.Sprintf("editor: %T replaced by %d nodes where exactly one is allowed", child, len(emitted)))
		}

		if emitted[0] == child {
			return field, false
		}

		return assignable(emitted[0], field.Type()), true

	case reflect.Slice:
		if !field.Type().Elem().Implements(nodeType) {
			return field, false
		}

		return e.rebuildSlice(field)

	default:
		return field, false
	}
}

// rebuildSlice emits every element, splicing one-to-many replacements.
func (e *Editor) rebuildSlice(slice reflect.Value) (reflect.Value, bool) {
	var (
		items   []reflect.Value
		changed bool
	)

	for i := range slice.Len() {
		item := slice.Index(i)

		child, ok := item.Interface().(ast.Node)
		if !ok || (item.Kind() == reflect.Interface && item.IsNil()) {
			items = append(items, item)
			continue
		}

		emitted := e.EmitNode(child)
		if len(emitted) != 1 || emitted[0] != child {
			changed = true
		}

		for _, n := range emitted {
			items = append(items, assignable(n, slice.Type().Elem()))
		}
	}

	if !changed {
		return slice, false
	}

	return reflect.Append(reflect.MakeSlice(slice.Type(), 0, len(items)), items...), true
}

func assignable(node ast.Node, to reflect.Type) reflect.Value {
	v := reflect.ValueOf(node)
	if !v.Type().AssignableTo(to) {
		panic(fmt.Sprintf("editor: %T cannot replace a node of type %s", node, to))
	}

	return v
}

// EmitFile returns the rewritten file. Leading declarations are placed
// before every original declaration; they are expected to be imports.
//
// The original file is returned when nothing is mapped and there are no
// leading declarations.
func (e *Editor) EmitFile(file *ast.File, leading ...ast.Decl) *ast.File {
	rebuilt := e.Rebuild(file).(*ast.File)
	if rebuilt == file && len(leading) == 0 {
		return file
	}

	out := *rebuilt

	decls := make([]ast.Decl, 0, len(leading)+len(rebuilt.Decls))
	decls = append(decls, leading...)
	out.Decls = append(decls, rebuilt.Decls...)
	out.Imports = Imports(&out)

	return &out
}

// Imports collects the import specs of file's import declarations.
func Imports(file *ast.File) []*ast.ImportSpec {
	var imports []*ast.ImportSpec

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}

		for _, spec := range gen.Specs {
			imports = append(imports, spec.(*ast.ImportSpec))
		}
	}

	return imports
}
