// Package graphql defines the JSON envelope Launchbook speaks over HTTP.
// It is deliberately not a query engine: a request carries the operation
// text and variables verbatim, and a response carries data alongside any
// structured errors. Both sides of the wire share these types.
package graphql

import (
	"encoding/json"
	"strings"
)

// Request is the body of a POST to the /graphql endpoint.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Error is one structured error returned alongside a response. Its
// presence does not imply the absence of data.
type Error struct {
	Message string `json:"message"`
}

func (e Error) Error() string { return e.Message }

// Response is the body of a /graphql reply. Data is kept raw so callers
// can decode into their own operation-specific shapes.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []Error         `json:"errors,omitempty"`
}

// Messages flattens the structured errors into plain strings, for logs.
func (r *Response) Messages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// ErrorResponse builds a data-less response carrying the given messages.
func ErrorResponse(msgs ...string) *Response {
	resp := &Response{}
	for _, m := range msgs {
		resp.Errors = append(resp.Errors, Error{Message: m})
	}
	return resp
}

// StringVar extracts a string variable from a request, tolerating both a
// missing key and an explicit null. The boolean reports presence of a
// usable string value.
func StringVar(req *Request, name string) (string, bool) {
	v, ok := req.Variables[name]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringSliceVar extracts a list-of-strings variable from a request.
func StringSliceVar(req *Request, name string) ([]string, bool) {
	v, ok := req.Variables[name]
	if !ok || v == nil {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, true
}
