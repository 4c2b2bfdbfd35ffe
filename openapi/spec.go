package openapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// patternTypeMap maps common route variable patterns to OpenAPI type and
// format. Variables without a recognized pattern default to plain strings.
var patternTypeMap = map[string][2]string{
	`[0-9]+`:  {"integer", ""},
	`\d+`:     {"integer", ""},
	`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`: {"string", "uuid"},
}

// apiKeyScheme is the fixed header-based API-key security scheme every
// generated document declares and requires.
var apiKeyScheme = &SecurityScheme{
	Type:        "apiKey",
	In:          "header",
	Name:        "Authorization",
	Description: "Enter your bearer token in the format **Token &lt;token&gt;**",
}

// Spec collects view metadata for routes and builds a complete OpenAPI
// v3.0.2 Document from a mux router.
type Spec struct {
	info           Info
	servers        []Server
	tags           []Tag
	useStatusTable bool
	views          map[string]*View     // keyed by route name (Op)
	routeViews     map[*mux.Route]*View // keyed by route pointer (Route)
}

// NewSpec creates a new spec builder with the given API info.
func NewSpec(info Info) *Spec {
	return &Spec{
		info:       info,
		views:      make(map[string]*View),
		routeViews: make(map[*mux.Route]*View),
	}
}

// AddServer adds a server to the configured servers list. Entries merge
// with the requesting origin at build time, deduplicated by URL.
func (s *Spec) AddServer(server Server) *Spec {
	s.servers = append(s.servers, server)
	return s
}

// AddTag records a document-level tag with a description. Tags referenced
// by views do not have to be declared here; declared tags are emitted even
// when no operation uses them.
func (s *Spec) AddTag(tag Tag) *Spec {
	s.tags = append(s.tags, tag)
	return s
}

// UseStatusTable enables the method status-code policy table for response
// assembly. When disabled (the default), every operation gets a single
// generic 200 response instead.
func (s *Spec) UseStatusTable(enabled bool) *Spec {
	s.useStatusTable = enabled
	return s
}

// Op attaches a View to the named route.
func (s *Spec) Op(routeName string, view *View) *Spec {
	s.views[routeName] = view
	return s
}

// Route attaches a View to an existing mux route. The route can be
// configured with any mux features (Methods, Headers, Queries, etc.).
func (s *Spec) Route(route *mux.Route, view *View) *Spec {
	s.routeViews[route] = view
	return s
}

// Build walks the router and assembles a complete OpenAPI Document: sorted
// paths, the merged servers list, the API-key security scheme, and one
// operation per registered (path, method) pair. The request, when present,
// contributes its origin to the servers list.
func (s *Spec) Build(r *mux.Router, req *http.Request) (*Document, error) {
	doc := &Document{
		OpenAPI: "3.0.2",
		Info:    s.info,
		Components: &Components{
			SecuritySchemes: map[string]*SecurityScheme{
				"ApiKeyAuth": apiKeyScheme,
			},
		},
		Security: []SecurityRequirement{{"ApiKeyAuth": {}}},
		Paths:    make(Paths),
	}

	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}

		// Look up the view: first by route pointer, then by route name.
		view, ok := s.routeViews[route]
		if !ok {
			view, ok = s.views[route.GetName()]
			if !ok {
				return nil
			}
		}

		openAPIPath, pathParams := parsePath(pathTpl)

		pathItem, ok := doc.Paths[openAPIPath]
		if !ok {
			pathItem = &PathItem{}
			doc.Paths[openAPIPath] = pathItem
		}

		schema := &autoSchema{view: view, useStatusTable: s.useStatusTable}
		for _, method := range methods {
			op, err := schema.operation(openAPIPath, method, pathParams)
			if err != nil {
				return err
			}
			assignOperation(pathItem, method, op)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Servers = s.buildServers(req)
	doc.Tags = s.tags
	return doc, nil
}

// buildServers merges the configured servers with the request origin,
// deduplicated by URL. With neither configured servers nor a request the
// servers list is omitted entirely, with a logged warning.
func (s *Spec) buildServers(req *http.Request) []Server {
	if len(s.servers) == 0 && req == nil {
		slog.Warn("no servers configured and no request context, omitting servers list")
		return nil
	}

	var servers []Server
	seen := make(map[string]bool)

	add := func(server Server) {
		if server.URL == "" {
			slog.Warn("dropping server entry without a url",
				"description", server.Description)
			return
		}
		if seen[server.URL] {
			return
		}
		seen[server.URL] = true
		servers = append(servers, server)
	}

	for _, server := range s.servers {
		add(server)
	}
	if req != nil {
		add(Server{URL: requestOrigin(req), Description: "Request origin"})
	}
	return servers
}

// requestOrigin derives the scheme://host origin of a request.
func requestOrigin(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + req.Host
}

// assignOperation assigns an operation to the correct HTTP method field
// on the path item.
func assignOperation(pathItem *PathItem, method string, op *Operation) {
	switch method {
	case http.MethodGet:
		pathItem.Get = op
	case http.MethodPost:
		pathItem.Post = op
	case http.MethodPut:
		pathItem.Put = op
	case http.MethodDelete:
		pathItem.Delete = op
	case http.MethodPatch:
		pathItem.Patch = op
	case http.MethodHead:
		pathItem.Head = op
	case http.MethodOptions:
		pathItem.Options = op
	case http.MethodTrace:
		pathItem.Trace = op
	}
}

// parsePath extracts variables from a mux path template, converts it to
// OpenAPI format, and generates path parameter objects. Variable patterns
// may themselves contain braces ({id:[0-9]{8}}), so matching pairs are
// found with a depth counter rather than a regexp.
func parsePath(tpl string) (string, []*Parameter) {
	var params []*Parameter
	var path strings.Builder

	depth := 0
	start := 0
	for i := 0; i < len(tpl); i++ {
		switch tpl[i] {
		case '{':
			if depth == 0 {
				path.WriteString(tpl[start:i])
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}

			varName, pattern, _ := strings.Cut(tpl[start+1:i], ":")

			param := &Parameter{
				Name:     varName,
				In:       "path",
				Required: true,
				Schema:   &Schema{Type: "string"},
			}
			if pattern != "" {
				if typeInfo, ok := patternTypeMap[pattern]; ok {
					param.Schema = &Schema{Type: typeInfo[0]}
					if typeInfo[1] != "" {
						param.Schema.Format = typeInfo[1]
					}
				}
			}
			params = append(params, param)

			path.WriteString("{" + varName + "}")
			start = i + 1
		}
	}
	path.WriteString(tpl[start:])

	return path.String(), params
}
