package models

// BookingAttendee echoes the attendee identity from the validated request,
// not from the provider, so the fields are always present.
type BookingAttendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingSummary is the minimized view of a freshly created booking.
type BookingSummary struct {
	UID      string          `json:"uid"`
	ID       int64           `json:"id"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Title    string          `json:"title"`
	Status   string          `json:"status"`
	Attendee BookingAttendee `json:"attendee"`
}

// BookingResult is the response returned to the caller after a successful
// booking creation.
type BookingResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Booking BookingSummary `json:"booking"`
}
