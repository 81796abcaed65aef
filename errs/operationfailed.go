package errs

import "fmt"

// OperationFailedError reports that the upstream provider accepted the
// request but returned a non-success business outcome.
type OperationFailedError struct {
	message string
}

func (o *OperationFailedError) Error() string {
	return o.message
}

func OperationFailedf(format string, args ...any) *OperationFailedError {
	return &OperationFailedError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &OperationFailedError{}
