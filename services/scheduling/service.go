package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"calbridge/errs"
	"calbridge/models"
	"calbridge/services/calcom"
)

// Gateway is the upstream provider surface the translation layer depends
// on. *calcom.Client satisfies it.
type Gateway interface {
	CancelBooking(ctx context.Context, bookingID models.IntOrString, reason string) (*calcom.Response, error)
	GetAvailableSlots(ctx context.Context, p *models.GetAvailableSlotsParams) (*calcom.Response, error)
	GetUpcomingAppointments(ctx context.Context, email string, limit int, after string) (*calcom.Response, error)
	CreateBooking(ctx context.Context, p *models.CreateBookingParams) (*calcom.Response, error)
	GetEventTypes(ctx context.Context, teamID int) (*calcom.Response, error)
}

// SchedulingService validates raw tool-call parameters, dispatches the
// provider call and reshapes the provider response into the fixed contract
// the voice-assistant layer consumes.
type SchedulingService interface {
	CancelAppointment(ctx context.Context, raw map[string]any) (*models.CancellationResult, error)
	GetAvailableSlots(ctx context.Context, raw map[string]any) (*models.SlotsResult, error)
	GetUpcomingAppointments(ctx context.Context, raw map[string]any) (*models.AppointmentsResult, error)
	CreateBooking(ctx context.Context, raw map[string]any) (*models.BookingResult, error)
	GetEventTypes(ctx context.Context, raw map[string]any) (*models.ServiceTypesResult, error)
}

// DefaultSchedulingService is the stateless production implementation.
type DefaultSchedulingService struct {
	Gateway Gateway
}

var _ SchedulingService = (*DefaultSchedulingService)(nil)

const upstreamSuccess = "success"

// CancelAppointment cancels a booking by numeric ID or opaque UID.
func (s *DefaultSchedulingService) CancelAppointment(ctx context.Context, raw map[string]any) (*models.CancellationResult, error) {
	params, err := models.ParseCancelAppointmentParams(raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.Gateway.CancelBooking(ctx, params.BookingID, params.CancellationReason)
	if err != nil {
		return nil, wrapTransport("Cancellation failed", err)
	}
	if resp.Status != upstreamSuccess {
		return nil, errs.OperationFailedf("Cancellation failed - API did not return success")
	}
	var booking struct {
		ID     int64  `json:"id"`
		UID    string `json:"uid"`
		Status string `json:"status"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(resp.Data, &booking); err != nil {
		return nil, fmt.Errorf("unexpected cancellation payload: %w", err)
	}
	return &models.CancellationResult{
		Success: true,
		ID:      booking.ID,
		UID:     booking.UID,
		Status:  booking.Status,
		Title:   booking.Title,
		Message: "Appointment successfully cancelled",
	}, nil
}

// GetAvailableSlots returns the provider's slot map for one event type,
// keyed by date.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, raw map[string]any) (*models.SlotsResult, error) {
	params, err := models.ParseGetAvailableSlotsParams(raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.Gateway.GetAvailableSlots(ctx, params)
	if err != nil {
		return nil, wrapTransport("Request failed", err)
	}
	if resp.Status != upstreamSuccess {
		return nil, errs.OperationFailedf("API returned non-success status")
	}
	slots := map[string]json.RawMessage{}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &slots); err != nil {
			return nil, fmt.Errorf("unexpected slots payload: %w", err)
		}
	}
	return &models.SlotsResult{
		Success:    true,
		Slots:      slots,
		TotalDates: len(slots),
	}, nil
}

// GetUpcomingAppointments lists a patient's upcoming bookings in minimized
// form.
func (s *DefaultSchedulingService) GetUpcomingAppointments(ctx context.Context, raw map[string]any) (*models.AppointmentsResult, error) {
	params, err := models.ParseGetUpcomingAppointmentsParams(raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.Gateway.GetUpcomingAppointments(ctx, params.PatientEmail, params.Limit, params.After)
	if err != nil {
		return nil, wrapTransport("Request failed", err)
	}
	if resp.Status != upstreamSuccess {
		return nil, errs.OperationFailedf("API returned non-success status")
	}
	var bookings []struct {
		ID          int64  `json:"id"`
		UID         string `json:"uid"`
		Title       string `json:"title"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Status      string `json:"status"`
		EventTypeID int64  `json:"eventTypeId"`
		Description string `json:"description"`
		Attendees   []struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			TimeZone string `json:"timeZone"`
		} `json:"attendees"`
		CreatedAt string `json:"createdAt"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &bookings); err != nil {
			return nil, fmt.Errorf("unexpected bookings payload: %w", err)
		}
	}
	appointments := make([]models.Appointment, 0, len(bookings))
	for _, b := range bookings {
		attendees := make([]models.Attendee, 0, len(b.Attendees))
		for _, a := range b.Attendees {
			attendees = append(attendees, models.Attendee{
				Name:     a.Name,
				Email:    a.Email,
				TimeZone: a.TimeZone,
			})
		}
		appointments = append(appointments, models.Appointment{
			ID:          b.ID,
			UID:         b.UID,
			Title:       b.Title,
			Start:       b.Start,
			End:         b.End,
			Status:      b.Status,
			EventTypeID: b.EventTypeID,
			Description: b.Description,
			Attendees:   attendees,
			CreatedAt:   b.CreatedAt,
		})
	}
	return &models.AppointmentsResult{
		Success:      true,
		Appointments: appointments,
		TotalFound:   len(appointments),
	}, nil
}

// CreateBooking books an appointment. The attendee identity in the response
// is echoed from the validated request so it is present even when the
// provider omits it.
func (s *DefaultSchedulingService) CreateBooking(ctx context.Context, raw map[string]any) (*models.BookingResult, error) {
	params, err := models.ParseCreateBookingParams(raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.Gateway.CreateBooking(ctx, params)
	if err != nil {
		return nil, wrapTransport("Booking request failed", err)
	}
	if resp.Status != upstreamSuccess {
		return nil, errs.OperationFailedf("Booking failed - API did not return success")
	}
	var booking struct {
		UID    string `json:"uid"`
		ID     int64  `json:"id"`
		Start  string `json:"start"`
		End    string `json:"end"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &booking); err != nil {
		return nil, fmt.Errorf("unexpected booking payload: %w", err)
	}
	return &models.BookingResult{
		Success: true,
		Message: "Appointment successfully booked",
		Booking: models.BookingSummary{
			UID:    booking.UID,
			ID:     booking.ID,
			Start:  booking.Start,
			End:    booking.End,
			Title:  booking.Title,
			Status: booking.Status,
			Attendee: models.BookingAttendee{
				Name:  params.AttendeeName,
				Email: params.AttendeeEmail,
			},
		},
	}, nil
}

// GetEventTypes lists a team's bookable services. Entries without an
// identifier are dropped.
func (s *DefaultSchedulingService) GetEventTypes(ctx context.Context, raw map[string]any) (*models.ServiceTypesResult, error) {
	params, err := models.ParseGetEventTypesParams(raw)
	if err != nil {
		return nil, err
	}
	resp, err := s.Gateway.GetEventTypes(ctx, params.TeamID)
	if err != nil {
		return nil, wrapTransport("API request failed", err)
	}
	payload := resp.Data
	if len(payload) == 0 || string(payload) == "null" {
		payload = resp.EventTypes
	}
	if len(payload) == 0 || string(payload) == "null" {
		payload = json.RawMessage("[]")
	}
	var eventTypes []struct {
		ID          *int64 `json:"id"`
		Length      int    `json:"length"`
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(payload, &eventTypes); err != nil {
		return nil, errs.OperationFailedf("Unexpected API response format")
	}
	services := make([]models.ServiceType, 0, len(eventTypes))
	for _, et := range eventTypes {
		if et.ID == nil {
			continue
		}
		title := et.Title
		if title == "" {
			title = "Unnamed service"
		}
		services = append(services, models.ServiceType{
			ID:              *et.ID,
			LengthInMinutes: et.Length,
			Title:           title,
			Slug:            et.Slug,
			Description:     strings.TrimSpace(et.Description),
		})
	}
	return &models.ServiceTypesResult{
		Success:  true,
		Services: services,
		Total:    len(services),
	}, nil
}

// wrapTransport prefixes a gateway failure with the operation's fixed
// user-facing message while keeping its TransportError classification.
func wrapTransport(prefix string, err error) error {
	if _, ok := err.(*errs.TransportError); ok {
		return errs.TransportErrorf("%s: %v", prefix, err)
	}
	return err
}
