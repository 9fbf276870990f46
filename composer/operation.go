package composer

import "github.com/erraggy/oasforge/schema"

// operation accumulates the configuration one declared endpoint carries.
type operation struct {
	id          string
	summary     string
	description string
	tags        []string
	deprecated  bool
	params      []*parameter
	requestBody *requestBody
	responses   map[int]*response
}

type parameter struct {
	name        string
	in          string
	description string
	required    bool
	value       any
	node        *schema.Schema
}

type requestBody struct {
	contentType string
	description string
	required    bool
	value       any
	node        *schema.Schema
}

type response struct {
	contentType string
	description string
	value       any
	node        *schema.Schema
}

func newOperation() *operation {
	return &operation{responses: make(map[int]*response)}
}

// OperationOption configures a declared operation.
type OperationOption func(*operation)

// WithOperationID sets the operationId. IDs must be unique across the
// document; duplicates surface as errors from Document.
func WithOperationID(id string) OperationOption {
	return func(op *operation) {
		op.id = id
	}
}

// WithSummary sets the operation summary.
func WithSummary(summary string) OperationOption {
	return func(op *operation) {
		op.summary = summary
	}
}

// WithDescription sets the operation description.
func WithDescription(desc string) OperationOption {
	return func(op *operation) {
		op.description = desc
	}
}

// WithTags appends tags to the operation.
func WithTags(tags ...string) OperationOption {
	return func(op *operation) {
		op.tags = append(op.tags, tags...)
	}
}

// WithDeprecated marks the operation deprecated.
func WithDeprecated(deprecated bool) OperationOption {
	return func(op *operation) {
		op.deprecated = deprecated
	}
}

// WithQueryParam adds a query parameter whose schema is derived from
// paramType.
func WithQueryParam(name string, paramType any, opts ...ParamOption) OperationOption {
	return addParam("query", name, paramType, false, opts)
}

// WithPathParam adds a path parameter. Path parameters are always required.
func WithPathParam(name string, paramType any, opts ...ParamOption) OperationOption {
	return addParam("path", name, paramType, true, opts)
}

// WithHeaderParam adds a header parameter.
func WithHeaderParam(name string, paramType any, opts ...ParamOption) OperationOption {
	return addParam("header", name, paramType, false, opts)
}

func addParam(in, name string, paramType any, required bool, opts []ParamOption) OperationOption {
	return func(op *operation) {
		p := &parameter{name: name, in: in, required: required, value: paramType}
		for _, opt := range opts {
			opt(p)
		}
		op.params = append(op.params, p)
	}
}

// ParamOption configures a parameter.
type ParamOption func(*parameter)

// WithParamDescription sets the parameter description.
func WithParamDescription(desc string) ParamOption {
	return func(p *parameter) {
		p.description = desc
	}
}

// WithParamRequired marks the parameter required.
func WithParamRequired(required bool) ParamOption {
	return func(p *parameter) {
		p.required = required
	}
}

// WithParamSchema supplies the parameter's node directly, bypassing type
// scanning.
func WithParamSchema(node *schema.Schema) ParamOption {
	return func(p *parameter) {
		p.node = node
	}
}

// WithRequestBody sets the request body, deriving its schema from bodyType.
func WithRequestBody(contentType string, bodyType any, opts ...RequestBodyOption) OperationOption {
	return func(op *operation) {
		rb := &requestBody{contentType: contentType, value: bodyType}
		for _, opt := range opts {
			opt(rb)
		}
		op.requestBody = rb
	}
}

// WithRequestBodySchema sets the request body from a prebuilt node.
func WithRequestBodySchema(contentType string, node *schema.Schema, opts ...RequestBodyOption) OperationOption {
	return func(op *operation) {
		rb := &requestBody{contentType: contentType, node: node}
		for _, opt := range opts {
			opt(rb)
		}
		op.requestBody = rb
	}
}

// RequestBodyOption configures a request body.
type RequestBodyOption func(*requestBody)

// WithBodyRequired marks the request body required.
func WithBodyRequired(required bool) RequestBodyOption {
	return func(rb *requestBody) {
		rb.required = required
	}
}

// WithBodyDescription sets the request body description.
func WithBodyDescription(desc string) RequestBodyOption {
	return func(rb *requestBody) {
		rb.description = desc
	}
}

// WithResponse declares a response whose schema derives from responseType.
// A nil responseType produces a body-less response.
func WithResponse(statusCode int, responseType any, description string) OperationOption {
	return func(op *operation) {
		op.responses[statusCode] = &response{
			contentType: "application/json",
			description: description,
			value:       responseType,
		}
	}
}

// WithResponseSchema declares a response from a prebuilt node.
func WithResponseSchema(statusCode int, contentType string, node *schema.Schema, description string) OperationOption {
	return func(op *operation) {
		op.responses[statusCode] = &response{
			contentType: contentType,
			description: description,
			node:        node,
		}
	}
}
