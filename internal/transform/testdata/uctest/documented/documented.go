// Package documented keeps its comments next to the code they describe.
package documented

import "example.com/uctest/churi"

// Plain is not rewritten.
var Plain = churi.Name(churi.Number) // plain

// ReadNumber reads numbers.
var ReadNumber = churi.CreateUcDeserializer(churi.Number) // trailing

// WriteText writes text.
func WriteText() churi.Serializer {
	// The serializer is created once.
	write := churi.CreateUcSerializer(churi.String) // inline

	return write
}
