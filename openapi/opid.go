package openapi

import "strings"

// methodVerbs maps lowercase HTTP methods to the titleized action verb used
// in operation ids.
var methodVerbs = map[string]string{
	"get":    "Retrieve",
	"post":   "Create",
	"put":    "Update",
	"patch":  "PartialUpdate",
	"delete": "Destroy",
}

// titleize upper-cases the first letter of a name.
func titleize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// isListView reports whether the routed endpoint is a collection endpoint:
// either the view declares the "list" action, or it is a GET whose final
// path segment is not a path variable.
func isListView(path, method string, view *View) bool {
	if view.Action != "" {
		return strings.ToLower(view.Action) == "list"
	}
	if method != "GET" {
		return false
	}
	components := strings.Split(strings.Trim(path, "/"), "/")
	if len(components) > 0 && strings.Contains(components[len(components)-1], "{") {
		return false
	}
	return true
}

// operationID derives a stable operation id: the first view tag, an action
// suffix ("List" for collection endpoints, "List"+method for bulk writes,
// the mapped verb otherwise), and a resource name resolved with fallback
// priority explicit override -> model type -> serializer type -> view name.
// Collection operations pluralize the resource name with a naive trailing
// "s" when not already present.
func operationID(path, method string, view *View) string {
	action := view.firstTag()
	many := false

	var suffix string
	switch {
	case isListView(path, method, view):
		suffix = "List"
		many = true
	case view.Many:
		suffix = "List" + titleize(strings.ToLower(method))
		many = true
	case view.Action != "":
		suffix = titleize(view.Action)
	default:
		verb, ok := methodVerbs[strings.ToLower(method)]
		if !ok {
			verb = titleize(strings.ToLower(method))
		}
		suffix = verb
	}
	action += suffix

	name := resourceName(view, suffix)

	if many && !strings.HasSuffix(name, "s") {
		name += "s"
	}
	return action + name
}

// resourceName resolves the resource part of an operation id. The view name
// fallback strips the conventional view-class suffixes, then trims the
// action suffix when the name would otherwise duplicate it.
func resourceName(view *View, actionSuffix string) string {
	if view.Operation != "" {
		return view.Operation
	}
	if name := typeName(view.Model); name != "" {
		return name
	}
	if name := typeName(view.Serializer); name != "" {
		return strings.TrimSuffix(name, "Serializer")
	}

	name := view.Name
	if strings.HasSuffix(name, "APIView") {
		name = strings.TrimSuffix(name, "APIView")
	} else {
		name = strings.TrimSuffix(name, "View")
	}
	if name != actionSuffix {
		name = strings.TrimSuffix(name, actionSuffix)
	}
	return name
}
