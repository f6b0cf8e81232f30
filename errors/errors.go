package errors

import (
	"errors"
	"net/http"
)

/*
* Error codes are intended to convey detailed errors internally and to clients.
* These should be combined with the appropriate HTTP status code, but are not
* intended to supercede correct HTTP responses.
*
* The codes mirror the stages of a mutation: input is validated, then any
* foreign ids are resolved, then the target is looked up, then the store is
* written. A failure at each stage gets its own code so that callers (and
* tests) can tell a malformed id apart from an absent document.
 */

const (
	// Malformed or missing input, detected before any store or cache access.
	ValidationError ErrCode = 1
	// A supplied foreign id does not resolve to an existing document.
	InvalidReference ErrCode = 2
	// The target of a point lookup, edit or remove does not exist.
	NotFound ErrCode = 3
	// The store failed or did not acknowledge a write.
	InternalFailure ErrCode = 4
)

// ErrCode classifies a failure
type ErrCode uint8

// CatalogueError implements the Error interface.
type CatalogueError struct {
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
}

func (e *CatalogueError) Error() string {
	return e.ErrorMessage
}

// New constructs a typed error
func New(function string, errCode ErrCode, errMessage string) error {
	return &CatalogueError{
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

// Code returns the ErrCode carried by err, or 0 if err is not a
// CatalogueError
func Code(err error) ErrCode {
	var e *CatalogueError
	if errors.As(err, &e) {
		return e.ErrorCode
	}
	return 0
}

// Status maps an error to the HTTP status code it should be served with.
// Unclassified errors are treated as internal.
func Status(err error) int {
	switch Code(err) {
	case ValidationError, InvalidReference:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
