package urlparse

import "fmt"

// ParseError explains why a URL could not be parsed.
type ParseError struct {
	Type    ErrorType `json:"type"`
	Input   string    `json:"input"`
	Message string    `json:"message"`
}

func (e *ParseError) Error() string {
	return e.Message
}

// ErrorType classifies parse failures.
type ErrorType string

const (
	ErrorTypeCredentials ErrorType = "credentials"
	ErrorTypePort        ErrorType = "port"
	ErrorTypeHost        ErrorType = "host"
)

func newParseError(t ErrorType, input, format string, args ...any) *ParseError {
	return &ParseError{
		Type:    t,
		Input:   input,
		Message: fmt.Sprintf(format, args...),
	}
}
