package ser

import "example.com/uctest/churi"

var WriteValue = churi.CreateUcSerializer(churi.Number)
