package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	m := map[string]interface{}{
		"str": "foo",
		"num": 1,
		"obj": map[string]interface{}{
			"bool":  false,
			"array": []string{"toto", "tutu", "tata"},
		},
	}
	str := Get(m, "str")
	assert.Equal(t, "foo", str)

	bool := Get(m, "obj.bool")
	assert.Equal(t, false, bool)

	null := Get(m, "obj.bool.null")
	assert.Nil(t, null)
}

func TestMerge(t *testing.T) {
	// Override wins on conflict, unknown keys are added
	base := map[string]interface{}{
		"Name":   "computed",
		"Memory": "2.0GB",
	}
	merged, err := Merge(base, map[string]interface{}{
		"Name":    "overridden",
		"Volumes": []string{"data"},
	})
	require.NoError(t, err)
	assert.Equal(t, "overridden", merged["Name"])
	assert.Equal(t, "2.0GB", merged["Memory"])
	assert.Equal(t, []string{"data"}, merged["Volumes"])

	// Empty override leaves base untouched
	merged, err = Merge(map[string]interface{}{"Cpu": 1024}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1024, merged["Cpu"])

	// Nil base
	merged, err = Merge(nil, map[string]interface{}{"Cpu": 256})
	require.NoError(t, err)
	assert.Equal(t, 256, merged["Cpu"])
}

type def struct {
	Name    string
	Image   string
	Command []string `mapstructure:",omitempty"`
}

func TestApply(t *testing.T) {
	m, err := Apply(def{Name: "web", Image: "nginx"}, map[string]interface{}{
		"Image":     "httpd",
		"DependsOn": "db",
	})
	require.NoError(t, err)
	assert.Equal(t, "web", m["Name"])
	assert.Equal(t, "httpd", m["Image"])
	assert.Equal(t, "db", m["DependsOn"])

	// omitempty fields are not materialized
	_, hasCommand := m["Command"]
	assert.False(t, hasCommand)
}
