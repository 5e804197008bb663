package deser

import (
	"example.com/uctest/churi"
	"example.com/uctest/models"
)

var ReadValue = churi.CreateUcDeserializer(churi.String)

var ReadText = churi.CreateUcDeserializer(models.Text)
