package models

import (
	"strings"

	"calbridge/errs"
)

// DefaultUpcomingLimit caps upcoming appointment listings when the caller
// does not specify one.
const DefaultUpcomingLimit = 10

// CancelAppointmentParams identifies a booking to cancel. The booking may be
// addressed either by its numeric ID or by its opaque string UID.
type CancelAppointmentParams struct {
	BookingID          IntOrString
	CancellationReason string
}

// GetAvailableSlotsParams selects the slot window for one event type.
type GetAvailableSlotsParams struct {
	EventTypeID int
	StartDate   string // ISO date, passed through unparsed
	EndDate     string // ISO date, passed through unparsed
	TimeZone    string // empty means the configured clinic timezone
	Username    string
	Format      string // "time" or "range"
	Duration    *int   // minutes; nil omits it upstream
}

// GetUpcomingAppointmentsParams filters bookings by attendee email.
type GetUpcomingAppointmentsParams struct {
	PatientEmail string
	Limit        int
	After        string // ISO date lower bound on start, optional
}

// CreateBookingParams describes a new booking request.
type CreateBookingParams struct {
	EventTypeID   int
	Start         string // ISO-8601 UTC timestamp
	AttendeeName  string
	AttendeeEmail string
	// AdditionalNotes is accepted from the caller but is not forwarded to
	// the provider; there is no upstream field mapped for it yet.
	AdditionalNotes string
}

// GetEventTypesParams scopes the event type listing to one team.
type GetEventTypesParams struct {
	TeamID int
}

func requiredString(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", errs.ValidationErrorf("missing required parameter %q", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.ValidationErrorf("parameter %q must be a string, got %T", field, v)
	}
	if s == "" {
		return "", errs.ValidationErrorf("missing required parameter %q", field)
	}
	return s, nil
}

func optionalString(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.ValidationErrorf("parameter %q must be a string, got %T", field, v)
	}
	return s, nil
}

func requiredInt(raw map[string]any, field string) (int, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, errs.ValidationErrorf("missing required parameter %q", field)
	}
	ios, err := NewIntOrString(field, v)
	if err != nil {
		return 0, err
	}
	return ios.Int(field)
}

func optionalInt(raw map[string]any, field string) (*int, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil, nil
	}
	ios, err := NewIntOrString(field, v)
	if err != nil {
		return nil, err
	}
	n, err := ios.Int(field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseCancelAppointmentParams validates the raw parameter map for a
// cancellation. Digit-only booking IDs are canonicalized to integer form;
// opaque UIDs are kept verbatim.
func ParseCancelAppointmentParams(raw map[string]any) (*CancelAppointmentParams, error) {
	v, ok := raw["booking_id"]
	if !ok || v == nil {
		return nil, errs.ValidationErrorf("missing required parameter %q", "booking_id")
	}
	bookingID, err := NewIntOrString("booking_id", v)
	if err != nil {
		return nil, err
	}
	if !bookingID.IsInt && bookingID.StrVal == "" {
		return nil, errs.ValidationErrorf("missing required parameter %q", "booking_id")
	}
	reason, err := requiredString(raw, "cancellation_reason")
	if err != nil {
		return nil, err
	}
	return &CancelAppointmentParams{
		BookingID:          bookingID.Canonicalize(),
		CancellationReason: reason,
	}, nil
}

// ParseGetAvailableSlotsParams validates the raw parameter map for a slot
// query.
func ParseGetAvailableSlotsParams(raw map[string]any) (*GetAvailableSlotsParams, error) {
	eventTypeID, err := requiredInt(raw, "event_type_id")
	if err != nil {
		return nil, err
	}
	startDate, err := requiredString(raw, "start_date")
	if err != nil {
		return nil, err
	}
	endDate, err := requiredString(raw, "end_date")
	if err != nil {
		return nil, err
	}
	timeZone, err := optionalString(raw, "time_zone")
	if err != nil {
		return nil, err
	}
	username, err := optionalString(raw, "username")
	if err != nil {
		return nil, err
	}
	format, err := optionalString(raw, "format")
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = "time"
	}
	duration, err := optionalInt(raw, "duration")
	if err != nil {
		return nil, err
	}
	return &GetAvailableSlotsParams{
		EventTypeID: eventTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		TimeZone:    timeZone,
		Username:    username,
		Format:      format,
		Duration:    duration,
	}, nil
}

// ParseGetUpcomingAppointmentsParams validates the raw parameter map for an
// upcoming appointment listing.
func ParseGetUpcomingAppointmentsParams(raw map[string]any) (*GetUpcomingAppointmentsParams, error) {
	email, err := requiredString(raw, "patient_email")
	if err != nil {
		return nil, err
	}
	limit, err := optionalInt(raw, "limit")
	if err != nil {
		return nil, err
	}
	after, err := optionalString(raw, "after")
	if err != nil {
		return nil, err
	}
	p := &GetUpcomingAppointmentsParams{
		PatientEmail: strings.TrimSpace(email),
		Limit:        DefaultUpcomingLimit,
		After:        after,
	}
	if limit != nil {
		p.Limit = *limit
	}
	return p, nil
}

// ParseCreateBookingParams validates the raw parameter map for a new
// booking.
func ParseCreateBookingParams(raw map[string]any) (*CreateBookingParams, error) {
	eventTypeID, err := requiredInt(raw, "event_type_id")
	if err != nil {
		return nil, err
	}
	start, err := requiredString(raw, "start")
	if err != nil {
		return nil, err
	}
	name, err := requiredString(raw, "attendee_name")
	if err != nil {
		return nil, err
	}
	email, err := requiredString(raw, "attendee_email")
	if err != nil {
		return nil, err
	}
	notes, err := optionalString(raw, "additional_notes")
	if err != nil {
		return nil, err
	}
	return &CreateBookingParams{
		EventTypeID:     eventTypeID,
		Start:           start,
		AttendeeName:    name,
		AttendeeEmail:   email,
		AdditionalNotes: notes,
	}, nil
}

// ParseGetEventTypesParams validates the raw parameter map for an event type
// listing.
func ParseGetEventTypesParams(raw map[string]any) (*GetEventTypesParams, error) {
	teamID, err := requiredInt(raw, "team_id")
	if err != nil {
		return nil, err
	}
	return &GetEventTypesParams{TeamID: teamID}, nil
}
