package pkg

import "fmt"

// AppError is an error that knows how it is rendered over HTTP.
type AppError struct {
	Code       string
	Title      string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code    string         `json:"code"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewDomainErrorSimple builds an AppError whose title doubles as the message.
func NewDomainErrorSimple(code, title string, status int) *AppError {
	return &AppError{Code: code, Title: title, Message: title, HTTPStatus: status}
}

// NewDomainError builds an AppError around a cause. The cause is kept for
// logging but never rendered.
func NewDomainError(code, title string, err error, status int) *AppError {
	return &AppError{Code: code, Title: title, Message: title, HTTPStatus: status, Err: err}
}

// WithMessage returns a copy of e with a user-facing message.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a copy of e with key set in Details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Code:    e.Code,
		Title:   e.Title,
		Message: e.Message,
		Details: e.Details,
	}
}
