package constants

import "net/http"

// CodedError is a sentinel error carrying the HTTP status it should surface
// with. Handlers wrap these with fmt.Errorf("...: %w", err) to add context;
// the API error handler unwraps back down to the code.
type CodedError struct {
	code    int
	message string
}

func NewCodedError(code int, message string) *CodedError {
	return &CodedError{code: code, message: message}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound = NewCodedError(http.StatusNotFound, "not found")

	// ErrInvalidFormat covers malformed upload filenames and workbooks with
	// missing required columns.
	ErrInvalidFormat = NewCodedError(http.StatusBadRequest, "invalid format")

	// ErrDuplicatePeriod rejects a whole-period re-import while data for that
	// year label still exists.
	ErrDuplicatePeriod = NewCodedError(http.StatusConflict, "period already imported")

	// ErrFileMissing means the upload record exists but the backing blob is
	// gone, which is a data-integrity fault surfaced as not-found.
	ErrFileMissing = NewCodedError(http.StatusNotFound, "uploaded file not found in storage")

	ErrUnauthorized      = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAuthCookie = NewCodedError(http.StatusUnauthorized, "missing auth cookie")
)
