package openapi

import (
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Overlay is a single key parsed from a YAML-structured doc text. Either
// Field is a named OpenAPI operation field from the allow-list, or
// StatusCode is a recognized HTTP status code whose value is layered onto
// the generated response table after the main overlay pass. Append selects
// merge-into-existing-collection semantics instead of overwrite.
type Overlay struct {
	Field      string
	StatusCode int
	Value      any
	Append     bool
}

// overlayFields is the allow-list of named operation fields a doc text may
// set, mapped to their append flag. Tags and responses merge so multiple
// doc sources compose instead of clobbering each other.
var overlayFields = map[string]bool{
	"summary":     false,
	"description": false,
	"tags":        true,
	"responses":   true,
}

// overlayStatusCodes is the allow-list of numeric status-code keys a doc
// text may set. Unrecognized keys are silently dropped.
var overlayStatusCodes = map[int]bool{
	200: true, 201: true, 202: true, 204: true,
	400: true, 401: true, 403: true, 404: true,
	500: true, 502: true, 503: true,
}

// coerceMethodNames maps action names to the doc-text key they are
// documented under.
var coerceMethodNames = map[string]string{
	"list":     "get",
	"retrieve": "read",
	"destroy":  "delete",
}

// yamlSafeClean prepares a doc text for YAML parsing: non-printable runes
// are stripped (newlines preserved, YAML is line oriented) and tabs are
// normalized to four spaces (YAML forbids tab indentation).
func yamlSafeClean(data string) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, r := range data {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteString("    ")
		case unicode.IsPrint(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dedentLines trims every line of the doc text and rejoins them. Used as
// the plain-text description when the doc text is not valid YAML.
func dedentLines(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// ParseDocstring parses a doc text formatted in YAML notation into overlay
// entries for the named method. It never fails: malformed YAML degrades to
// a single plain-text description overlay.
//
// The doc text may scope its keys under the lowercase method name:
//
//	get:
//	    summary: List all items
//	    tags: [items]
//	    401:
//	        description: Token expired
//
// A doc text without the method key is treated as belonging to the method
// entirely, and a bare string value becomes the description.
func ParseDocstring(method, doc string) []Overlay {
	method = strings.ToLower(method)
	if coerced, ok := coerceMethodNames[method]; ok {
		method = coerced
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(yamlSafeClean(doc)), &parsed); err != nil {
		// Invalid YAML, keep the raw text as a plain description.
		return []Overlay{{
			Field:  "description",
			Value:  dedentLines(doc),
			Append: overlayFields["description"],
		}}
	}

	// Empty doc text, return an empty description.
	if parsed == nil {
		return []Overlay{{
			Field:  "description",
			Value:  "",
			Append: overlayFields["description"],
		}}
	}

	// Method key missing: the whole structure belongs to this method.
	body := parsed
	if m, ok := asMap(parsed); ok {
		if v, found := m[method]; found {
			body = v
		}
	}

	// Bare string value is shorthand for the description.
	if s, ok := body.(string); ok {
		body = map[string]any{"description": s}
	}

	fields, ok := asMap(body)
	if !ok {
		return nil
	}

	var overlays []Overlay
	for key, value := range fields {
		if s, isStr := value.(string); isStr {
			value = strings.TrimSpace(s)
		}
		switch k := key.(type) {
		case string:
			if appendFlag, valid := overlayFields[k]; valid {
				overlays = append(overlays, Overlay{Field: k, Value: value, Append: appendFlag})
			}
		case int:
			if overlayStatusCodes[k] {
				overlays = append(overlays, Overlay{StatusCode: k, Value: value})
			}
		}
	}
	return overlays
}

// asMap normalizes the two mapping shapes yaml.v3 produces for untyped
// documents: map[string]any when every key is a string, map[any]any when
// any key is not (numeric status-code keys force the latter).
func asMap(v any) (map[any]any, bool) {
	switch m := v.(type) {
	case map[any]any:
		return m, true
	case map[string]any:
		out := make(map[any]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}
	return nil, false
}

// decodeValue converts an untyped overlay value into a typed document model
// object by round-tripping through YAML.
func decodeValue(v, out any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
