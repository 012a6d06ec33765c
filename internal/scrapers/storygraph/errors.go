package storygraph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RequestError is a transport failure while fetching a page: the request
// could not be made, or the site answered with a non-2xx status.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("A network error occurred: %s", e.Err.Error())
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParsingError means a mandatory landmark was missing or malformed, usually
// because the site's markup changed.
type ParsingError struct {
	Details string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf(
		"Failed to parse page content. The website structure may have changed. Details: %s",
		e.Details,
	)
}

func missingLandmark(kind PageKind, landmark string) error {
	return &ParsingError{Details: fmt.Sprintf("%s: could not find %s", kind, landmark)}
}

func malformedLandmark(kind PageKind, landmark string, err error) error {
	return &ParsingError{Details: fmt.Sprintf("%s: malformed %s: %s", kind, landmark, err.Error())}
}

// UnexpectedError is everything that is neither a RequestError nor a
// ParsingError, including recovered panics.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("An unexpected error occurred: %s", e.Err.Error())
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// Classify returns the most specific envelope error found in err's chain,
// falling back to wrapping err in an UnexpectedError.
func Classify(err error) error {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr
	}
	var parsingErr *ParsingError
	if errors.As(err, &parsingErr) {
		return parsingErr
	}
	var unexpectedErr *UnexpectedError
	if errors.As(err, &unexpectedErr) {
		return unexpectedErr
	}
	return &UnexpectedError{Err: err}
}

type errorPayload struct {
	Error string `json:"error"`
}

func marshalPayload(v any) string {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		// errorPayload always marshals.
		out, _ = json.MarshalIndent(errorPayload{
			Error: Classify(err).Error(),
		}, "", "    ")
	}
	return string(out)
}

// Envelope runs fn and returns its result as indented JSON. Any error or
// panic comes back as {"error": "<message>"} instead, so callers never see a
// fault and never get a partial value.
func Envelope[T any](fn func() (T, error)) (out string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		out = marshalPayload(errorPayload{
			Error: (&UnexpectedError{Err: err}).Error(),
		})
	}()

	value, err := fn()
	if err != nil {
		return marshalPayload(errorPayload{Error: Classify(err).Error()})
	}
	return marshalPayload(value)
}
