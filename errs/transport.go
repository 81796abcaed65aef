package errs

import "fmt"

// TransportError reports a network failure or a non-2xx HTTP status from the
// upstream provider. No retry is attempted; the caller decides how to
// surface it.
type TransportError struct {
	message string
}

func (t *TransportError) Error() string {
	return t.message
}

func TransportErrorf(format string, args ...any) *TransportError {
	return &TransportError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &TransportError{}
