// Package openapi provides automatic OpenAPI v3.0.2 specification generation
// from mux router routes using view metadata, Go reflection, and struct tags.
//
// The package targets the OpenAPI Specification v3.0.2. It produces a complete
// OpenAPI document from registered routes with zero external schema files:
// schemas come from Go types, response tables come from a per-method status
// code policy, and free-form YAML docstrings refine individual operations.
//
// See: https://spec.openapis.org/oas/v3.0.2
//
// # Spec Builder
//
// Create a spec, attach views to routes, and build the document:
//
//	spec := openapi.NewSpec(openapi.Info{Title: "My API", Version: "1.0.0"})
//
// # Views
//
// A View describes the resource behind a route: its serializer type, tags,
// cardinality, and per-method documentation. Attach a view to a named route
// with Op:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/users", listUsers).Methods(http.MethodGet).Name("listUsers")
//
//	spec.Op("listUsers", &openapi.View{
//	    Name:       "UserView",
//	    Tags:       []string{"users"},
//	    Serializer: UserSerializer{},
//	})
//
// Or to an already-configured mux route with Route, preserving full mux
// flexibility (Methods, Headers, Queries, Schemes, etc.):
//
//	spec.Route(r.HandleFunc("/users", createUser).Methods(http.MethodPost),
//	    &openapi.View{Tags: []string{"users"}, Serializer: UserSerializer{}})
//
// # Docstrings
//
// Views carry free-form documentation per method. A docstring that parses as
// YAML overlays operation fields; one that does not becomes the operation
// description with each line trimmed:
//
//	view.MethodDocs = map[string]string{
//	    "get": `
//	        summary: Retrieve a user
//	        tags: [accounts]
//	        400:
//	            description: Malformed user ID
//	    `,
//	}
//
// Recognized fields are summary, description, tags, and responses. Numeric
// keys add or replace individual status code responses. The docstring keys
// list, retrieve, and destroy are accepted as aliases for the get, read, and
// delete methods. Docstring parsing never fails the build.
//
// # Response Tables
//
// By default every operation documents a single 200 response. Enable the
// status table to derive responses from the per-method policy instead:
//
//	spec.UseStatusTable(true)
//
// With the table enabled, a POST on a single resource documents 201 plus the
// 400, 401, and 403 error responses, a DELETE documents 204 with no content,
// and so on. Restrict the table per view with AllowedStatusCodes.
//
// # Operation IDs
//
// Operation IDs are derived from the view: the first tag, a verb for the
// method (Retrieve, Create, Update, PartialUpdate, Destroy, or List for
// collection routes), and the resource name taken from the Operation
// override, the Model type, the Serializer type, or the view Name.
// Collection operations pluralize the resource name.
//
// # Collections and Pagination
//
// A route is treated as a collection when its view action is "list", when
// the view is marked Many, or when a GET path ends without a variable.
// Collection request bodies become arrays, collection responses become
// arrays, and a view Paginator wraps GET collection responses in its
// envelope:
//
//	view.Paginator = openapi.PageNumberPaginator{}
//	// -> {count, next, previous, results: [...]}
//
// # Struct Tags
//
// Use the "openapi" struct tag to enrich schema output:
//
//	type CreateUserInput struct {
//	    Name  string `json:"name" openapi:"description=User name,minLength=1,maxLength=100"`
//	    Email string `json:"email" openapi:"format=email"`
//	    Age   int    `json:"age,omitempty" openapi:"minimum=0,maximum=150"`
//	    Role  string `json:"role" openapi:"enum=admin|user|guest"`
//	}
//
// Supported tag keys: description, example, format, title, minimum, maximum,
// exclusiveMinimum, exclusiveMaximum, minLength, maxLength, pattern,
// multipleOf, minItems, maxItems, uniqueItems, minProperties, maxProperties,
// enum (pipe-separated), nullable, deprecated, readOnly, writeOnly.
//
// Fields marked readOnly are stripped from request bodies; fields marked
// writeOnly are stripped from responses.
//
// # Schema Generation
//
// Go types are converted to OpenAPI schemas via reflection:
//
//   - bool -> {type: "boolean"}
//   - int/uint variants -> {type: "integer"}
//   - float32/float64 -> {type: "number"}
//   - string -> {type: "string"}
//   - []byte -> {type: "string", format: "byte"}
//   - time.Time -> {type: "string", format: "date-time"}
//   - *T -> schema(T) with nullable: true
//   - []T -> {type: "array", items: schema(T)}
//   - map[string]V -> {type: "object", additionalProperties: schema(V)}
//   - struct -> {type: "object", properties: {...}, required: [...]}
//
// Schemas are always inlined so per-operation reshaping (bulk arrays,
// readOnly/writeOnly stripping, pagination envelopes) never leaks between
// operations.
//
// # Type-Level Examples
//
// Implement the Exampler interface to provide a complete example value for
// a type's schema:
//
//	func (User) OpenAPIExample() any {
//	    return User{ID: "550e8400-...", Name: "Alice"}
//	}
//
// # Serving the Specification
//
// Handle registers all OpenAPI endpoints under a base path. The config
// parameter is optional -- pass nil for defaults:
//
//	spec.Handle(r, "/swagger", nil)
//
// This registers three routes:
//
//	/swagger/            - interactive HTML docs
//	/swagger/schema.json - OpenAPI spec as JSON
//	/swagger/schema.yaml - OpenAPI spec as YAML
//
// Choose the docs UI via HandleConfig: DocsSwaggerUI (default), DocsRapiDoc,
// or DocsRedoc. The document is rebuilt per request because the servers list
// includes the requesting origin.
//
// # Building the Document
//
// Build walks the mux router and assembles a complete *Document. This is
// called by Handle, but can be used directly:
//
//	doc, err := spec.Build(r, req)
//	data, _ := json.MarshalIndent(doc, "", "  ")
//
// Every document declares the ApiKeyAuth header security scheme and requires
// it by default. Paths are serialized in sorted order in both JSON and YAML.
//
// # Subrouter Integration
//
// Build walks the entire router tree, so routes registered on subrouters
// appear with full paths:
//
//	api := r.PathPrefix("/api/v1").Subrouter()
//	spec.Route(api.HandleFunc("/users", listUsers).Methods(http.MethodGet), view)
//	doc, err := spec.Build(r, req) // pass root router, not subrouter
package openapi
