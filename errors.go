package md2text

import "errors"

// ConversionError is the only error the conversion engine itself raises. It
// reports invalid input or an unexpected internal failure, carrying the
// original cause when one exists. Callers map it to their own presentation.
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// ErrEmptyMarkdown reports a conversion call without content.
var ErrEmptyMarkdown = &ConversionError{Message: "markdown content cannot be empty"}

// Option validation errors. The engine itself treats unrecognized option
// values as unset; these are for callers that validate user input strictly
// before converting.
var (
	ErrInvalidListStyle    = errors.New("invalid list style")
	ErrInvalidCodeHandling = errors.New("invalid code handling")
	ErrInvalidTableFormat  = errors.New("invalid table format")
	ErrInvalidHeadingStyle = errors.New("invalid heading style")
)
