package openapi

import (
	"fmt"
	"strconv"
)

// autoSchema assembles one Operation Object per (path, method) pair from a
// View's attributes and doc text. It is the per-operation half of document
// generation; Spec.Build drives it while walking the router.
type autoSchema struct {
	view           *View
	useStatusTable bool
}

// operation builds the complete Operation Object: derived operation id,
// tags, deprecation flag, path parameters, shaped request body, the
// per-status response table, and the doc-text overlays layered on top.
func (a *autoSchema) operation(path, method string, params []*Parameter) (*Operation, error) {
	responses, err := a.responses(path, method)
	if err != nil {
		return nil, err
	}

	op := &Operation{
		OperationID: operationID(path, method, a.view),
		Tags:        a.view.tags(),
		Deprecated:  a.view.Deprecated,
		Parameters:  params,
		RequestBody: a.requestBody(path, method),
		Responses:   responses,
	}

	overlays := ParseDocstring(method, a.view.docFor(method))
	if err := a.applyOverlays(op, overlays); err != nil {
		return nil, err
	}

	// A DELETE on a single resource carries no request body.
	if !a.view.Many && method == "DELETE" {
		op.RequestBody = nil
	}

	return op, nil
}

// applyOverlays layers parsed doc-text overlays onto the operation. Named
// field overlays run first (overwrite or merge per their append flag), then
// status-code overlays are layered onto the response table.
func (a *autoSchema) applyOverlays(op *Operation, overlays []Overlay) error {
	var errorCodes []Overlay
	for _, o := range overlays {
		if o.Field == "" {
			errorCodes = append(errorCodes, o)
			continue
		}
		if err := a.applyFieldOverlay(op, o); err != nil {
			return err
		}
	}

	for _, o := range errorCodes {
		if err := a.applyStatusOverlay(op, o); err != nil {
			return err
		}
	}
	return nil
}

// applyFieldOverlay writes a single named overlay into the operation.
// Append semantics exist only for the collection-valued fields; an append
// overlay against anything else is an unimplemented combination and fatal.
func (a *autoSchema) applyFieldOverlay(op *Operation, o Overlay) error {
	if !o.Append {
		switch o.Field {
		case "summary":
			op.Summary = overlayString(o.Value)
		case "description":
			op.Description = overlayString(o.Value)
		case "tags":
			var tags []string
			if err := decodeValue(o.Value, &tags); err != nil {
				return fmt.Errorf("tags overlay: %w", err)
			}
			op.Tags = tags
		case "responses":
			responses := make(map[string]*Response)
			if err := decodeValue(o.Value, &responses); err != nil {
				return fmt.Errorf("responses overlay: %w", err)
			}
			op.Responses = responses
		}
		return nil
	}

	switch o.Field {
	case "tags":
		switch v := o.Value.(type) {
		case string:
			op.Tags = append(op.Tags, v)
		default:
			var tags []string
			if err := decodeValue(v, &tags); err != nil {
				return fmt.Errorf("tags overlay: %w", err)
			}
			op.Tags = append(op.Tags, tags...)
		}
	case "responses":
		responses := make(map[string]*Response)
		if err := decodeValue(o.Value, &responses); err != nil {
			return fmt.Errorf("responses overlay: %w", err)
		}
		if op.Responses == nil {
			op.Responses = make(map[string]*Response)
		}
		for code, resp := range responses {
			op.Responses[code] = resp
		}
	default:
		return fmt.Errorf("append overlay not implemented for field %q", o.Field)
	}
	return nil
}

// applyStatusOverlay layers one status-code overlay onto the response
// table. A missing description falls back to the static status table, a
// missing schema falls back to the default error shape.
func (a *autoSchema) applyStatusOverlay(op *Operation, o Overlay) error {
	fields, _ := asMap(o.Value)

	description := ""
	if d, ok := fields["description"]; ok {
		description = overlayString(d)
	}
	if description == "" {
		info, err := statusInfo(o.StatusCode)
		if err != nil {
			return err
		}
		description = info.Description
	}

	schema := defaultErrorSchema()
	if s, ok := fields["schema"]; ok {
		schema = &Schema{}
		if err := decodeValue(s, schema); err != nil {
			return fmt.Errorf("status %d overlay schema: %w", o.StatusCode, err)
		}
	}

	if op.Responses == nil {
		op.Responses = make(map[string]*Response)
	}
	op.Responses[strconv.Itoa(o.StatusCode)] = &Response{
		Description: description,
		Content:     mediaContent(schema, a.view.responseMediaTypes()),
	}
	return nil
}

// requestBody shapes the request body for write methods. Bulk views have
// their object schema rewrapped into an array whose items carry the object
// properties; PATCH drops the required list; readOnly fields never appear
// in a request.
func (a *autoSchema) requestBody(path, method string) *RequestBody {
	switch method {
	case "PUT", "PATCH", "POST", "DELETE":
	default:
		return nil
	}

	schema := a.view.serializerSchema()
	if schema == nil || schema.Type != "object" {
		return nil
	}

	if method == "PATCH" {
		schema.Required = nil
	}

	for name, prop := range schema.Properties {
		if prop.ReadOnly {
			delete(schema.Properties, name)
			schema.Required = removeString(schema.Required, name)
		}
	}

	if isListView(path, method, a.view) || a.view.Many {
		properties := schema.Properties
		schema = &Schema{Type: "array", Required: schema.Required}
		if len(properties) > 0 {
			schema.Items = &Schema{Properties: properties}
		}
	}

	return &RequestBody{
		Content: mediaContent(schema, a.view.requestMediaTypes()),
	}
}

// responses assembles the per-status response table. Bulk views wrap the
// item schema in an array (and the paginator envelope on list endpoints);
// writeOnly fields never appear in a response. With the status table
// disabled a single generic 200 entry is produced.
func (a *autoSchema) responses(path, method string) (map[string]*Response, error) {
	item := a.view.serializerSchema()
	if item == nil {
		item = &Schema{}
	}

	for name, prop := range item.Properties {
		if prop.WriteOnly {
			delete(item.Properties, name)
			item.Required = removeString(item.Required, name)
		}
	}

	schema := item
	if a.view.Many {
		schema = &Schema{Type: "array", Items: item}
		if isListView(path, method, a.view) && a.view.Paginator != nil {
			schema = a.view.Paginator.PaginatedResponseSchema(schema)
		}
	}

	if !a.useStatusTable {
		// description is mandatory per the specification, even when there
		// is nothing meaningful to put into it.
		return map[string]*Response{
			"200": {
				Description: "",
				Content:     mediaContent(schema, a.view.responseMediaTypes()),
			},
		}, nil
	}

	return a.allowedResponses(method, schema)
}

// allowedResponses builds the response table from the status-code policy
// row for the method and cardinality, intersected with the view's
// AllowedStatusCodes subset. Success codes carry the operation schema,
// error codes the default error schema.
func (a *autoSchema) allowedResponses(method string, schema *Schema) (map[string]*Response, error) {
	policy, err := methodPolicy(method, a.view.cardinality())
	if err != nil {
		return nil, err
	}

	responses := make(map[string]*Response)
	for _, code := range policy.StatusCodes {
		if !a.view.allowsStatusCode(code) {
			continue
		}
		resp, err := a.statusCodeResponse(code, schema)
		if err != nil {
			return nil, err
		}
		responses[strconv.Itoa(code)] = resp
	}
	for _, code := range policy.ErrorCodes {
		if !a.view.allowsStatusCode(code) {
			continue
		}
		resp, err := a.statusCodeResponse(code, defaultErrorSchema())
		if err != nil {
			return nil, err
		}
		responses[strconv.Itoa(code)] = resp
	}
	return responses, nil
}

// statusCodeResponse creates one response entry from the static status
// table. Codes flagged as content-less (204, 406) emit no content map.
func (a *autoSchema) statusCodeResponse(code int, schema *Schema) (*Response, error) {
	info, err := statusInfo(code)
	if err != nil {
		return nil, err
	}
	resp := &Response{Description: info.Description}
	if info.Content {
		resp.Content = mediaContent(schema, a.view.responseMediaTypes())
	}
	return resp, nil
}

// mediaContent replicates a schema for each supported content type. An
// object schema with no properties yields an empty media type object.
func mediaContent(schema *Schema, mediaTypes []string) map[string]*MediaType {
	content := make(map[string]*MediaType, len(mediaTypes))
	for _, ct := range mediaTypes {
		if schema != nil && schema.Properties != nil && len(schema.Properties) == 0 {
			content[ct] = &MediaType{}
			continue
		}
		content[ct] = &MediaType{Schema: schema}
	}
	return content
}

// overlayString renders an overlay value as a string.
func overlayString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// removeString returns the slice without the named element.
func removeString(list []string, name string) []string {
	out := list[:0]
	for _, s := range list {
		if s != name {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
