package models

// CancellationResult is the minimized response returned to the caller after
// a successful cancellation.
type CancellationResult struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	UID     string `json:"uid"`
	Status  string `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
