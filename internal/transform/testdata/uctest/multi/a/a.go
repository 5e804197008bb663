package a

import "example.com/uctest/churi"

var value = churi.CreateUcSerializer(churi.String)

func Write(v any) (string, error) {
	return value(v)
}
