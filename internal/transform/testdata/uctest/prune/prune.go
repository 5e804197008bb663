package prune

import (
	"example.com/uctest/churi"
	"example.com/uctest/models"
)

var WriteText = churi.CreateUcSerializer(models.Text)
