package openapi

import (
	"reflect"
	"strings"
)

// defaultMediaTypes is used when a view does not restrict its request or
// response media types.
var defaultMediaTypes = []string{"application/json"}

// Paginator supplies the envelope a list endpoint wraps its array schema in
// when pagination is active.
type Paginator interface {
	PaginatedResponseSchema(items *Schema) *Schema
}

// PageNumberPaginator is the standard page-number pagination envelope:
// a count, optional next/previous page links, and the results array.
type PageNumberPaginator struct{}

// PaginatedResponseSchema wraps the item array schema in the page envelope.
func (PageNumberPaginator) PaginatedResponseSchema(items *Schema) *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"count":    {Type: "integer", Example: 123},
			"next":     {Type: "string", Format: "uri", Nullable: true},
			"previous": {Type: "string", Format: "uri", Nullable: true},
			"results":  items,
		},
	}
}

// View carries the per-endpoint attributes that drive operation assembly.
// A View plays the role the serializer-introspecting view classes play in
// the hosting framework: it names the resource, the body shape, the doc
// text, and the status-code posture of one routed endpoint.
type View struct {
	// Name is the view's declared name (e.g. "ItemAPIView"). It is the
	// last-resort source for the operation-id resource name, stripped of
	// the conventional "APIView"/"View" suffixes.
	Name string

	// Tags annotate every operation of this view. The first tag seeds the
	// operation id. Empty means the "default" tag.
	Tags []string

	// Deprecated marks every operation of this view as deprecated.
	Deprecated bool

	// Many declares that the view handles multiple objects: list responses
	// and bulk POST/PUT/PATCH/DELETE bodies.
	Many bool

	// Operation explicitly overrides the derived resource name used in
	// operation ids.
	Operation string

	// Action is a custom action name (e.g. "activate") used instead of the
	// HTTP-method verb in operation ids and for doc-text lookup.
	Action string

	// AllowedStatusCodes restricts the status-code policy table rows to a
	// subset. Empty means no restriction.
	AllowedStatusCodes []int

	// Serializer is a value of the Go type describing the resource's wire
	// shape. Its schema becomes the request/response item schema, and its
	// type name (minus a "Serializer" suffix) feeds the operation id.
	Serializer any

	// Model is an optional value whose type name takes precedence over the
	// serializer name for operation ids.
	Model any

	// Description is the view-level doc text, used for any method without
	// an entry in MethodDocs. May be YAML-structured.
	Description string

	// MethodDocs maps lowercase HTTP methods (or the Action name) to
	// method-level doc texts. May be YAML-structured.
	MethodDocs map[string]string

	// Paginator wraps list responses in a pagination envelope when set.
	Paginator Paginator

	// RequestMediaTypes and ResponseMediaTypes replicate body schemas per
	// content type. Default: application/json.
	RequestMediaTypes  []string
	ResponseMediaTypes []string
}

// tags returns the view tags, defaulting to ["default"].
func (v *View) tags() []string {
	if len(v.Tags) == 0 {
		return []string{"default"}
	}
	return v.Tags
}

// firstTag returns the first view tag.
func (v *View) firstTag() string {
	return v.tags()[0]
}

// cardinality selects the status-code policy row for this view.
func (v *View) cardinality() Cardinality {
	if v.Many {
		return CardinalityMany
	}
	return CardinalityOne
}

// docFor returns the doc text for a method: the method-level doc when one
// exists, the view-level description otherwise.
func (v *View) docFor(method string) string {
	name := strings.ToLower(method)
	if v.Action != "" {
		name = strings.ToLower(v.Action)
	}
	if doc, ok := v.MethodDocs[name]; ok {
		return doc
	}
	if doc, ok := v.MethodDocs[strings.ToLower(method)]; ok {
		return doc
	}
	return v.Description
}

// allowsStatusCode reports whether the view's AllowedStatusCodes subset
// permits the code. An empty subset permits everything.
func (v *View) allowsStatusCode(code int) bool {
	if len(v.AllowedStatusCodes) == 0 {
		return true
	}
	for _, c := range v.AllowedStatusCodes {
		if c == code {
			return true
		}
	}
	return false
}

// requestMediaTypes returns the request content types, defaulting to JSON.
func (v *View) requestMediaTypes() []string {
	if len(v.RequestMediaTypes) == 0 {
		return defaultMediaTypes
	}
	return v.RequestMediaTypes
}

// responseMediaTypes returns the response content types, defaulting to JSON.
func (v *View) responseMediaTypes() []string {
	if len(v.ResponseMediaTypes) == 0 {
		return defaultMediaTypes
	}
	return v.ResponseMediaTypes
}

// serializerSchema generates a fresh inline schema for the view serializer.
// A nil serializer yields nil.
func (v *View) serializerSchema() *Schema {
	if v.Serializer == nil {
		return nil
	}
	return GenerateSchema(v.Serializer)
}

// typeName returns the simple type name of a value, unwrapping pointers.
func typeName(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
