package validation

// Response is the transport shape of a Result.
type Response struct {
	Valid  bool            `json:"valid"`
	Errors []ErrorResponse `json:"errors"`
}

// ErrorResponse is the transport shape of a FieldError.
type ErrorResponse struct {
	FieldID *string `json:"field_id"`
	Message string  `json:"message"`
	Path    string  `json:"path"`
}

// Response converts the result to its transport shape.
// Errors is always a non-nil slice so it encodes as an empty list.
func (r Result) Response() Response {
	resp := Response{Valid: r.Valid(), Errors: make([]ErrorResponse, 0, len(r.errors))}
	for _, e := range r.errors {
		resp.Errors = append(resp.Errors, ErrorResponse{FieldID: e.FieldID, Message: e.Message, Path: e.Path})
	}
	return resp
}
