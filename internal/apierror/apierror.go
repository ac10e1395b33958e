package apierror

import (
	"fmt"
	"net/http"
)

// ApiError is the JSON body of every failed request
type ApiError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var (
	ErrBadRequest      = func(detail string) *ApiError { return New(http.StatusBadRequest, "Bad Request", detail) }
	ErrTooManyRequests = func(detail string) *ApiError { return New(http.StatusTooManyRequests, "Too Many Requests", detail) }
	ErrInternalServer  = func(detail string) *ApiError {
		return New(http.StatusInternalServerError, "Internal Server Error", detail)
	}
	ErrLLMProcessing = func(detail string) *ApiError {
		return New(http.StatusInternalServerError, "LLM Processing Failed", detail)
	}
)

func New(code int, message, detail string) *ApiError {
	return &ApiError{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}

func (e *ApiError) WithRequestID(requestID string) *ApiError {
	e.RequestID = requestID
	return e
}

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *ApiError) StatusCode() int {
	return e.Code
}
