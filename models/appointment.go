package models

// Attendee is one participant on an appointment.
type Attendee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TimeZone string `json:"timeZone"`
}

// Appointment is the minimized view of one upstream booking.
type Appointment struct {
	ID          int64      `json:"id"`
	UID         string     `json:"uid"`
	Title       string     `json:"title"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Status      string     `json:"status"`
	EventTypeID int64      `json:"eventTypeId"`
	Description string     `json:"description"`
	Attendees   []Attendee `json:"attendees"`
	CreatedAt   string     `json:"createdAt"`
}

// AppointmentsResult lists a patient's upcoming appointments.
type AppointmentsResult struct {
	Success      bool          `json:"success"`
	Appointments []Appointment `json:"appointments"`
	TotalFound   int           `json:"total_found"`
}
