package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportYAML(t *testing.T) {
	p := &Plan{
		Dist:        "/work/uclib/uclib.go",
		ImportPath:  "example.com/work/uclib",
		PackageName: "uclib",
		Serializers: []Binding{{
			FunctionID: "WriteValue",
			ModelID:    "WriteValue_ucModel",
			Specifier:  "../ser/ser.go",
			ImportPath: "example.com/work/ser",
		}},
	}

	data, err := ExportYAML(p)
	require.NoError(t, err)

	src := string(data)
	assert.Contains(t, src, "version: \"1\"")
	assert.Contains(t, src, "function: WriteValue")
	assert.Contains(t, src, "from: ../ser/ser.go")
	assert.NotContains(t, src, "deserializers")

	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, *Export(p), m)
}
