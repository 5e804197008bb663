package nested

import "example.com/uctest/churi"

type Codecs struct {
	Read  churi.Deserializer
	Write churi.Serializer
}

var Default = Codecs{
	Read:  churi.CreateUcDeserializer(churi.String),
	Write: churi.CreateUcSerializer(churi.Number, churi.WithName("number")),
}

func Local() churi.Deserializer {
	read := churi.CreateUcDeserializer(churi.Number)
	return read
}

var Pair, Other = churi.CreateUcDeserializer(churi.String), churi.CreateUcSerializer(churi.String)

func Discard() {
	churi.CreateUcSerializer(churi.String)
}
