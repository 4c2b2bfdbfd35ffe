package openapi

import (
	"fmt"
	"net/http"
)

// Cardinality describes whether an operation handles a single resource
// instance or a collection/bulk set. It selects the row of the method
// status-code policy table.
type Cardinality string

const (
	// CardinalityOne is for operations on a single resource instance.
	CardinalityOne Cardinality = "one"
	// CardinalityMany is for list endpoints and bulk operations.
	CardinalityMany Cardinality = "many"
)

// statusCodePolicy lists the success and error status codes an operation
// may produce.
type statusCodePolicy struct {
	StatusCodes []int
	ErrorCodes  []int
}

// statusCodeInfo carries the static description for a status code and
// whether responses with that code carry a body.
type statusCodeInfo struct {
	Description string
	Content     bool
}

// methodStatusCodes maps HTTP method and cardinality to the allowed
// success and error status codes. Every code listed here must have an
// entry in statusCodeResponses or document generation fails.
var methodStatusCodes = map[string]map[Cardinality]statusCodePolicy{
	http.MethodGet: {
		CardinalityOne: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{401, 403, 404},
		},
		CardinalityMany: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{401, 403},
		},
	},
	http.MethodPost: {
		CardinalityOne: {
			StatusCodes: []int{201},
			ErrorCodes:  []int{400, 401, 403},
		},
		CardinalityMany: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{400, 401, 403},
		},
	},
	http.MethodPatch: {
		CardinalityOne: {
			StatusCodes: []int{200, 204},
			ErrorCodes:  []int{400, 401, 403},
		},
		CardinalityMany: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{400, 401, 403},
		},
	},
	http.MethodPut: {
		CardinalityOne: {
			StatusCodes: []int{202},
			ErrorCodes:  []int{400, 401, 403},
		},
		CardinalityMany: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{400, 401, 403},
		},
	},
	http.MethodDelete: {
		CardinalityOne: {
			StatusCodes: []int{204},
			ErrorCodes:  []int{400, 401, 403, 406},
		},
		CardinalityMany: {
			StatusCodes: []int{200},
			ErrorCodes:  []int{400, 401, 403},
		},
	},
}

// statusCodeResponses maps status codes to their static response
// description. Codes with Content false (204, 406) emit no content map.
var statusCodeResponses = map[int]statusCodeInfo{
	200: {Description: "Successful", Content: true},
	201: {Description: "Created", Content: true},
	202: {Description: "Update Accepted", Content: true},
	204: {Description: "Empty Content", Content: false},
	400: {Description: "Invalid Content", Content: true},
	401: {Description: "Unauthorized", Content: true},
	403: {Description: "Forbidden", Content: true},
	404: {Description: "Not Found", Content: true},
	406: {Description: "Not Acceptable", Content: false},
	500: {Description: "Internal Server Error", Content: true},
	502: {Description: "Bad Gateway", Content: true},
	503: {Description: "Service Unavailable", Content: true},
}

// defaultErrorSchema returns the shared error payload shape used for error
// status codes that do not declare their own schema. A fresh value is
// returned on every call because response assembly may mutate schemas.
func defaultErrorSchema() *Schema {
	return &Schema{
		Properties: map[string]*Schema{
			"detail": {Type: "string", Description: "Error message"},
		},
	}
}

// methodPolicy returns the status-code policy row for the given method and
// cardinality. An unknown method/cardinality combination is a configuration
// error and fatal to document generation, matching the behavior of the
// status-table lookups there is no validation layer in front of.
func methodPolicy(method string, card Cardinality) (statusCodePolicy, error) {
	byCard, ok := methodStatusCodes[method]
	if !ok {
		return statusCodePolicy{}, fmt.Errorf("no status-code policy for method %q", method)
	}
	policy, ok := byCard[card]
	if !ok {
		return statusCodePolicy{}, fmt.Errorf("no status-code policy for method %q cardinality %q", method, card)
	}
	return policy, nil
}

// statusInfo returns the static description entry for a status code.
// Codes missing from the table are fatal to document generation.
func statusInfo(code int) (statusCodeInfo, error) {
	info, ok := statusCodeResponses[code]
	if !ok {
		return statusCodeInfo{}, fmt.Errorf("no response description for status code %d", code)
	}
	return info, nil
}
