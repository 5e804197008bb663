package models

import "example.com/uctest/churi"

var Text = churi.String
