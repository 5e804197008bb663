package assign

import "example.com/uctest/churi"

// Current is replaced by Reset.
var Current churi.Deserializer

func Reset() {
	Current = churi.CreateUcDeserializer(churi.String)
}
