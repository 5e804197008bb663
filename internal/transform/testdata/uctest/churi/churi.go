// Package churi mimics the factory surface of the URI charge runtime.
package churi

// Model describes a value to serialize.
type Model interface {
	ucModel() string
}

type model string

func (m model) ucModel() string { return string(m) }

// Built-in models.
var (
	Number Model = model("number")
	String Model = model("string")
)

// Option configures a factory.
type Option func(*options)

type options struct {
	name string
}

// WithName names the generated function.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Deserializer reads a value.
type Deserializer func(input string) (any, error)

// Serializer writes a value.
type Serializer func(value any) (string, error)

// CreateUcDeserializer is replaced at build time.
func CreateUcDeserializer(m Model, opts ...Option) Deserializer {
	panic("churi: " + m.ucModel() + " deserializer is not compiled")
}

// CreateUcSerializer is replaced at build time.
func CreateUcSerializer(m Model, opts ...Option) Serializer {
	panic("churi: " + m.ucModel() + " serializer is not compiled")
}

// Name returns the model name.
func Name(m Model) string {
	return m.ucModel()
}
