package none

import "strings"

var Greeting = strings.ToUpper("none")

func CreateUcSerializer(v any) any { return v }

var Fake = CreateUcSerializer(Greeting)
