package editor

import (
	"go/ast"
	"reflect"
)

// Clone returns a deep copy of node with every position cleared.
//
// Cleared positions keep the printer from attaching surrounding comments
// to the copy when it is placed elsewhere in the file. Resolution data
// (ast.Object, ast.Scope) is dropped.
func Clone[N ast.Node](node N) N {
	v := reflect.ValueOf(node)
	if !v.IsValid() {
		return node
	}

	return cloneValue(v).Interface().(N)
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}

		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))

		return out

	case reflect.Pointer:
		if v.IsNil() {
			return v
		}

		if !v.Type().Implements(nodeType) {
			return reflect.Zero(v.Type())
		}

		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))

		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()

		for i := range v.NumField() {
			field := v.Type().Field(i)
			if !field.IsExported() || field.Type == posType {
				continue
			}

			out.Field(i).Set(cloneValue(v.Field(i)))
		}

		return out

	case reflect.Slice:
		if v.IsNil() {
			return v
		}

		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}

		return out

	default:
		return v
	}
}
