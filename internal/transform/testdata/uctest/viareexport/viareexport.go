package viareexport

import rx "example.com/uctest/reexport"

var WriteNumber = rx.CreateSerializer(rx.Number)
