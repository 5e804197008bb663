package plan

//go:generate go tool stringer -type=TaskKind -linecomment -output=kind_string.go

// TaskKind tells which factory a compile task originates from.
type TaskKind int

const (
	TaskDeserializer TaskKind = iota // deserializer
	TaskSerializer                   // serializer
)

// TaskKinds lists every kind in emission order.
var TaskKinds = []TaskKind{TaskDeserializer, TaskSerializer}

// CompileTask describes one extracted factory call.
type CompileTask struct {
	// FunctionID is the generated function name, unique in the library.
	FunctionID string
	// ModelID is the name of the hoisted model variable.
	ModelID string
	// OriginFile is the absolute path of the file the call was found in.
	OriginFile string
	// OriginPackage is the import path of that file's package.
	OriginPackage string
	// OriginPackageName is the name of that file's package.
	OriginPackageName string
}

// Tasks receives compile tasks as they are discovered.
type Tasks interface {
	CompileDeserializer(task CompileTask)
	CompileSerializer(task CompileTask)
}
