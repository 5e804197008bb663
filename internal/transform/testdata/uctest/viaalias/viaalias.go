package viaalias

import uc "example.com/uctest/churi"

var ReadNumber = uc.CreateUcDeserializer(uc.Number)
