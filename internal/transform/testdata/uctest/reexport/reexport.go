// Package reexport forwards the runtime factories.
package reexport

import "example.com/uctest/churi"

// CreateSerializer is the runtime serializer factory.
var CreateSerializer = churi.CreateUcSerializer

// Number is the runtime number model.
var Number = churi.Number
