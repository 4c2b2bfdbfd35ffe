package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findOverlay returns the first overlay for a named field, or nil.
func findOverlay(overlays []Overlay, field string) *Overlay {
	for i := range overlays {
		if overlays[i].Field == field {
			return &overlays[i]
		}
	}
	return nil
}

// findStatusOverlay returns the first overlay for a status code, or nil.
func findStatusOverlay(overlays []Overlay, code int) *Overlay {
	for i := range overlays {
		if overlays[i].StatusCode == code {
			return &overlays[i]
		}
	}
	return nil
}

func TestParseDocstring(t *testing.T) {
	t.Run("method scoped summary", func(t *testing.T) {
		overlays := ParseDocstring("GET", "get:\n    summary: List all items\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "summary", overlays[0].Field)
		assert.Equal(t, "List all items", overlays[0].Value)
		assert.False(t, overlays[0].Append)
	})

	t.Run("unscoped fields belong to the method", func(t *testing.T) {
		overlays := ParseDocstring("POST", "summary: Create an item\ndescription: Creates one item.\n")
		summary := findOverlay(overlays, "summary")
		require.NotNil(t, summary)
		assert.Equal(t, "Create an item", summary.Value)

		description := findOverlay(overlays, "description")
		require.NotNil(t, description)
		assert.Equal(t, "Creates one item.", description.Value)
	})

	t.Run("bare string becomes description", func(t *testing.T) {
		overlays := ParseDocstring("GET", "Retrieves a single item.")
		require.Len(t, overlays, 1)
		assert.Equal(t, "description", overlays[0].Field)
		assert.Equal(t, "Retrieves a single item.", overlays[0].Value)
	})

	t.Run("malformed yaml degrades to trimmed description", func(t *testing.T) {
		overlays := ParseDocstring("GET", "  Usage: call the endpoint\n  maybe twice\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "description", overlays[0].Field)
		assert.Equal(t, "Usage: call the endpoint\nmaybe twice\n", overlays[0].Value)
	})

	t.Run("empty doc text yields empty description", func(t *testing.T) {
		overlays := ParseDocstring("GET", "")
		require.Len(t, overlays, 1)
		assert.Equal(t, "description", overlays[0].Field)
		assert.Equal(t, "", overlays[0].Value)
	})

	t.Run("tags carry the append flag", func(t *testing.T) {
		overlays := ParseDocstring("GET", "get:\n    tags: [accounts]\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "tags", overlays[0].Field)
		assert.True(t, overlays[0].Append)
	})

	t.Run("status code keys become status overlays", func(t *testing.T) {
		doc := "get:\n    summary: Retrieve\n    400:\n        description: Malformed id\n"
		overlays := ParseDocstring("GET", doc)

		status := findStatusOverlay(overlays, 400)
		require.NotNil(t, status)
		fields, ok := asMap(status.Value)
		require.True(t, ok)
		assert.Equal(t, "Malformed id", fields["description"])
	})

	t.Run("unrecognized fields are dropped", func(t *testing.T) {
		overlays := ParseDocstring("GET", "get:\n    operationId: custom\n    summary: Keep me\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "summary", overlays[0].Field)
	})

	t.Run("unrecognized status codes are dropped", func(t *testing.T) {
		overlays := ParseDocstring("GET", "get:\n    418:\n        description: teapot\n")
		assert.Empty(t, overlays)
	})

	t.Run("action names coerce to method keys", func(t *testing.T) {
		overlays := ParseDocstring("list", "get:\n    summary: List things\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "List things", overlays[0].Value)
	})

	t.Run("tab indentation is tolerated", func(t *testing.T) {
		overlays := ParseDocstring("GET", "get:\n\tsummary: Tabbed\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "Tabbed", overlays[0].Value)
	})

	t.Run("string values are trimmed", func(t *testing.T) {
		overlays := ParseDocstring("GET", "summary: '  padded  '\n")
		require.Len(t, overlays, 1)
		assert.Equal(t, "padded", overlays[0].Value)
	})

	t.Run("doc for another method yields nothing", func(t *testing.T) {
		overlays := ParseDocstring("GET", "post:\n    summary: Create\n")
		assert.Empty(t, overlays)
	})
}

func TestYamlSafeClean(t *testing.T) {
	t.Run("strips non printable runes", func(t *testing.T) {
		assert.Equal(t, "abc", yamlSafeClean("a\x00b\x1bc"))
	})

	t.Run("keeps newlines", func(t *testing.T) {
		assert.Equal(t, "a\nb", yamlSafeClean("a\nb"))
	})

	t.Run("tabs become four spaces", func(t *testing.T) {
		assert.Equal(t, "    x", yamlSafeClean("\tx"))
	})
}

func TestDedentLines(t *testing.T) {
	assert.Equal(t, "first\nsecond", dedentLines("   first\n\t second"))
}

func TestAsMap(t *testing.T) {
	t.Run("string keyed map", func(t *testing.T) {
		m, ok := asMap(map[string]any{"a": 1})
		require.True(t, ok)
		assert.Equal(t, 1, m["a"])
	})

	t.Run("any keyed map", func(t *testing.T) {
		m, ok := asMap(map[any]any{400: "x"})
		require.True(t, ok)
		assert.Equal(t, "x", m[400])
	})

	t.Run("non map", func(t *testing.T) {
		_, ok := asMap("scalar")
		assert.False(t, ok)
	})
}
