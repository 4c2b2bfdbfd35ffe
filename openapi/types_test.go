package openapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPathsSortedKeys(t *testing.T) {
	paths := Paths{
		"/zebras":    {},
		"/accounts":  {},
		"/items":     {},
		"/items/{x}": {},
	}
	assert.Equal(t, []string{"/accounts", "/items", "/items/{x}", "/zebras"}, paths.sortedKeys())
}

func TestPathsMarshalJSON(t *testing.T) {
	paths := Paths{
		"/b": {Get: &Operation{OperationID: "b"}},
		"/a": {Get: &Operation{OperationID: "a"}},
		"/c": {Get: &Operation{OperationID: "c"}},
	}

	data, err := json.Marshal(paths)
	require.NoError(t, err)

	t.Run("keys in ascending order", func(t *testing.T) {
		out := string(data)
		assert.Less(t, strings.Index(out, "/a"), strings.Index(out, "/b"))
		assert.Less(t, strings.Index(out, "/b"), strings.Index(out, "/c"))
	})

	t.Run("round trip", func(t *testing.T) {
		var decoded map[string]*PathItem
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "a", decoded["/a"].Get.OperationID)
	})

	t.Run("empty paths", func(t *testing.T) {
		data, err := json.Marshal(Paths{})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})
}

func TestPathsMarshalYAML(t *testing.T) {
	paths := Paths{
		"/b": {Get: &Operation{OperationID: "b"}},
		"/a": {Get: &Operation{OperationID: "a"}},
	}

	data, err := yaml.Marshal(paths)
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "/a"), strings.Index(out, "/b"))

	var decoded map[string]*PathItem
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "a", decoded["/a"].Get.OperationID)
}

func TestResponseDescriptionAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(&Response{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":""`)
}

func TestSchemaMarshalOmitsZeroValues(t *testing.T) {
	data, err := json.Marshal(&Schema{Type: "string"})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"string"}`, string(data))
}

func TestSchemaNullableMarshal(t *testing.T) {
	data, err := json.Marshal(&Schema{Type: "string", Nullable: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string","nullable":true}`, string(data))
}
