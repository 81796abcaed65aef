package scheduling

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"calbridge/errs"
	"calbridge/models"
	"calbridge/services/calcom"
)

// Mock gateway for testing
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CancelBooking(ctx context.Context, bookingID models.IntOrString, reason string) (*calcom.Response, error) {
	args := m.Called(ctx, bookingID, reason)
	if args.Get(0) != nil {
		return args.Get(0).(*calcom.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) GetAvailableSlots(ctx context.Context, p *models.GetAvailableSlotsParams) (*calcom.Response, error) {
	args := m.Called(ctx, p)
	if args.Get(0) != nil {
		return args.Get(0).(*calcom.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) GetUpcomingAppointments(ctx context.Context, email string, limit int, after string) (*calcom.Response, error) {
	args := m.Called(ctx, email, limit, after)
	if args.Get(0) != nil {
		return args.Get(0).(*calcom.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) CreateBooking(ctx context.Context, p *models.CreateBookingParams) (*calcom.Response, error) {
	args := m.Called(ctx, p)
	if args.Get(0) != nil {
		return args.Get(0).(*calcom.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) GetEventTypes(ctx context.Context, teamID int) (*calcom.Response, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) != nil {
		return args.Get(0).(*calcom.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func upstream(status, data string) *calcom.Response {
	return &calcom.Response{
		Status: status,
		Data:   json.RawMessage(data),
	}
}

func TestCancelAppointment_Reshape(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("CancelBooking", mock.Anything, models.IntOrString{IntVal: 4521, IsInt: true}, "duplicate").
		Return(upstream("success", `{"id":4521,"uid":"u-1","status":"cancelled","title":"Checkup"}`), nil)

	result, err := svc.CancelAppointment(context.Background(), map[string]any{
		"booking_id":          "4521",
		"cancellation_reason": "duplicate",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(4521), result.ID)
	assert.Equal(t, "u-1", result.UID)
	assert.Equal(t, "Appointment successfully cancelled", result.Message)
	gw.AssertExpectations(t)
}

func TestCancelAppointment_UIDRoutedAsString(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("CancelBooking", mock.Anything, models.IntOrString{StrVal: "abc-123"}, "duplicate").
		Return(upstream("success", `{}`), nil)

	_, err := svc.CancelAppointment(context.Background(), map[string]any{
		"booking_id":          "abc-123",
		"cancellation_reason": "duplicate",
	})
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestCancelAppointment_NonSuccessStatus(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("CancelBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(upstream("error", `{}`), nil)

	_, err := svc.CancelAppointment(context.Background(), map[string]any{
		"booking_id":          float64(4521),
		"cancellation_reason": "duplicate",
	})
	require.Error(t, err)
	assert.IsType(t, &errs.OperationFailedError{}, err)
	assert.Equal(t, "Cancellation failed - API did not return success", err.Error())
}

func TestCancelAppointment_ValidationStopsBeforeGateway(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	_, err := svc.CancelAppointment(context.Background(), map[string]any{
		"cancellation_reason": "duplicate",
	})
	require.Error(t, err)
	assert.IsType(t, &errs.ValidationError{}, err)
	gw.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAvailableSlots_CountsDates(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("GetAvailableSlots", mock.Anything, mock.Anything).
		Return(upstream("success", `{"2026-02-01":[{"start":"09:00"}],"2026-02-02":[]}`), nil)

	result, err := svc.GetAvailableSlots(context.Background(), map[string]any{
		"event_type_id": float64(98),
		"start_date":    "2026-02-01",
		"end_date":      "2026-02-07",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalDates)
	assert.Contains(t, result.Slots, "2026-02-01")
}

func TestGetAvailableSlots_TransportErrorWrapped(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("GetAvailableSlots", mock.Anything, mock.Anything).
		Return(nil, errs.TransportErrorf("provider returned status 500"))

	_, err := svc.GetAvailableSlots(context.Background(), map[string]any{
		"event_type_id": float64(98),
		"start_date":    "2026-02-01",
		"end_date":      "2026-02-07",
	})
	require.Error(t, err)
	assert.IsType(t, &errs.TransportError{}, err)
	assert.Contains(t, err.Error(), "Request failed")
}

func TestGetUpcomingAppointments_Reshape(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	data := `[{
		"id": 7, "uid": "u-7", "title": "Dental checkup",
		"start": "2026-02-09T04:45:00.000Z", "end": "2026-02-09T05:15:00.000Z",
		"status": "accepted", "eventTypeId": 98, "description": "routine",
		"attendees": [{"name":"Paul","email":"paul@gmail.com","timeZone":"Asia/Almaty"}],
		"createdAt": "2026-02-01T10:00:00.000Z",
		"hosts": [{"ignored": true}]
	}]`
	gw.On("GetUpcomingAppointments", mock.Anything, "paul@gmail.com", 10, "").
		Return(upstream("success", data), nil)

	result, err := svc.GetUpcomingAppointments(context.Background(), map[string]any{
		"patient_email": " paul@gmail.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalFound)
	appt := result.Appointments[0]
	assert.Equal(t, int64(7), appt.ID)
	assert.Equal(t, int64(98), appt.EventTypeID)
	require.Len(t, appt.Attendees, 1)
	assert.Equal(t, "paul@gmail.com", appt.Attendees[0].Email)
}

func TestCreateBooking_AttendeeEchoedFromRequest(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	// Upstream omits attendee details entirely.
	gw.On("CreateBooking", mock.Anything, mock.Anything).
		Return(upstream("success", `{"id":11,"uid":"u-11","start":"2026-02-09T04:45:00.000Z","end":"2026-02-09T05:15:00.000Z","title":"Checkup","status":"accepted"}`), nil)

	result, err := svc.CreateBooking(context.Background(), map[string]any{
		"event_type_id":  float64(98),
		"start":          "2026-02-09T04:45:00.000Z",
		"attendee_name":  "Paul Otieno",
		"attendee_email": "paul@gmail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Appointment successfully booked", result.Message)
	assert.Equal(t, "Paul Otieno", result.Booking.Attendee.Name)
	assert.Equal(t, "paul@gmail.com", result.Booking.Attendee.Email)
	assert.Equal(t, int64(11), result.Booking.ID)
}

func TestCreateBooking_NonSuccessStatus(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("CreateBooking", mock.Anything, mock.Anything).
		Return(upstream("error", `{}`), nil)

	_, err := svc.CreateBooking(context.Background(), map[string]any{
		"event_type_id":  float64(98),
		"start":          "2026-02-09T04:45:00.000Z",
		"attendee_name":  "Paul Otieno",
		"attendee_email": "paul@gmail.com",
	})
	require.Error(t, err)
	assert.Equal(t, "Booking failed - API did not return success", err.Error())
}

func TestGetEventTypes_DropsEntriesWithoutID(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	data := `[
		{"id": 98, "length": 30, "title": "Checkup", "slug": "checkup", "description": "  routine visit  "},
		{"length": 15, "title": "Orphan"},
		{"id": 99, "length": 45}
	]`
	gw.On("GetEventTypes", mock.Anything, 189647).
		Return(upstream("success", data), nil)

	result, err := svc.GetEventTypes(context.Background(), map[string]any{
		"team_id": "189647",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, int64(98), result.Services[0].ID)
	assert.Equal(t, "routine visit", result.Services[0].Description)
	assert.Equal(t, "Unnamed service", result.Services[1].Title)
	assert.Equal(t, "", result.Services[1].Slug)
}

func TestGetEventTypes_EventTypesFallbackKey(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("GetEventTypes", mock.Anything, 1).
		Return(&calcom.Response{
			Status:     "success",
			EventTypes: json.RawMessage(`[{"id": 5, "length": 20, "title": "Consult"}]`),
		}, nil)

	result, err := svc.GetEventTypes(context.Background(), map[string]any{"team_id": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Consult", result.Services[0].Title)
}

func TestGetEventTypes_NonListPayload(t *testing.T) {
	gw := new(mockGateway)
	svc := &DefaultSchedulingService{Gateway: gw}

	gw.On("GetEventTypes", mock.Anything, 1).
		Return(upstream("success", `{"unexpected":"object"}`), nil)

	_, err := svc.GetEventTypes(context.Background(), map[string]any{"team_id": float64(1)})
	require.Error(t, err)
	assert.IsType(t, &errs.OperationFailedError{}, err)
	assert.Equal(t, "Unexpected API response format", err.Error())
}
