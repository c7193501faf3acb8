package client

// Pagination describes the slice of a collection a response covers.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Response is the envelope every PoultryPro endpoint wraps its payload in.
type Response[T any] struct {
	Success    bool        `json:"success"`
	Data       *T          `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// failure returns an error describing a success=false envelope.
func (r *Response[T]) failure() error {
	return errFromEnvelope(r.Message, r.Error)
}

// value returns the envelope payload, or the zero value when absent.
func value[T any](r *Response[T]) T {
	if r.Data == nil {
		var zero T
		return zero
	}
	return *r.Data
}
