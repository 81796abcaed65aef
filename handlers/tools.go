package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calbridge/errs"
	"calbridge/models"
	"calbridge/services/scheduling"
)

// ToolHandler serves the scheduling operations exposed to the
// voice-assistant tool layer. It holds no per-request state; the scheduling
// service and mode flag are fixed at construction.
type ToolHandler struct {
	scheduling   scheduling.SchedulingService
	envelopeMode bool
	logger       *zap.Logger
}

// NewToolHandler builds a ToolHandler. With envelopeMode set, requests are
// expected in the tool-call envelope form and every response is a 200
// wrapping the outcome; otherwise raw parameter bodies and plain status
// codes are used.
func NewToolHandler(svc scheduling.SchedulingService, envelopeMode bool, logger *zap.Logger) *ToolHandler {
	return &ToolHandler{
		scheduling:   svc,
		envelopeMode: envelopeMode,
		logger:       logger,
	}
}

// CancelAppointment handles POST /cancel-appointment.
func (h *ToolHandler) CancelAppointment(c *gin.Context) {
	callID, raw, ok := h.decodeCall(c)
	if !ok {
		return
	}
	result, err := h.scheduling.CancelAppointment(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, "cancel-appointment", callID, err)
		return
	}
	h.respond(c, callID, result)
}

// GetAvailableSlots handles POST /get-available-slots.
func (h *ToolHandler) GetAvailableSlots(c *gin.Context) {
	callID, raw, ok := h.decodeCall(c)
	if !ok {
		return
	}
	result, err := h.scheduling.GetAvailableSlots(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, "get-available-slots", callID, err)
		return
	}
	h.respond(c, callID, result)
}

// GetUpcomingAppointments handles POST /get-upcoming-appointments.
func (h *ToolHandler) GetUpcomingAppointments(c *gin.Context) {
	callID, raw, ok := h.decodeCall(c)
	if !ok {
		return
	}
	result, err := h.scheduling.GetUpcomingAppointments(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, "get-upcoming-appointments", callID, err)
		return
	}
	h.respond(c, callID, result)
}

// CreateBooking handles POST /create-booking.
func (h *ToolHandler) CreateBooking(c *gin.Context) {
	callID, raw, ok := h.decodeCall(c)
	if !ok {
		return
	}
	result, err := h.scheduling.CreateBooking(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, "create-booking", callID, err)
		return
	}
	h.respond(c, callID, result)
}

// GetEventTypes handles POST /get-event-types.
func (h *ToolHandler) GetEventTypes(c *gin.Context) {
	callID, raw, ok := h.decodeCall(c)
	if !ok {
		return
	}
	result, err := h.scheduling.GetEventTypes(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, "get-event-types", callID, err)
		return
	}
	h.respond(c, callID, result)
}

// decodeCall extracts the raw parameter map from the request body according
// to the configured calling convention. On a malformed body it writes the
// error response itself and reports ok=false.
func (h *ToolHandler) decodeCall(c *gin.Context) (string, map[string]any, bool) {
	if h.envelopeMode {
		var envelope models.ToolCallEnvelope
		if err := c.ShouldBindJSON(&envelope); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tool call envelope", "details": err.Error()})
			return "", nil, false
		}
		callID := envelope.ToolCallID
		if callID == "" {
			callID = "unknown"
		}
		params := envelope.Parameters
		if params == nil {
			params = map[string]any{}
		}
		return callID, params, true
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return "", nil, false
	}
	return "", raw, true
}

// respond writes the success outcome in the configured convention.
func (h *ToolHandler) respond(c *gin.Context, callID string, result any) {
	if h.envelopeMode {
		h.respondEnvelope(c, callID, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps the error taxonomy to the outbound convention: 422 for
// validation, 400 for business or transport failures, 500 otherwise. In
// envelope mode everything is a 200 with success:false embedded.
func (h *ToolHandler) respondError(c *gin.Context, op, callID string, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	switch err.(type) {
	case *errs.ValidationError:
		status = http.StatusUnprocessableEntity
		message = "Invalid input: " + err.Error()
	case *errs.OperationFailedError:
		status = http.StatusBadRequest
	case *errs.TransportError:
		status = http.StatusBadRequest
	}

	h.logger.Warn("operation failed",
		zap.String("operation", op),
		zap.String("toolCallId", callID),
		zap.Int("status", status),
		zap.Error(err),
	)

	if h.envelopeMode {
		h.respondEnvelope(c, callID, gin.H{"success": false, "error": message})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondEnvelope wraps the outcome in the tool-call response structure,
// JSON-encoding the result as a string the way the tool layer expects.
func (h *ToolHandler) respondEnvelope(c *gin.Context, callID string, result any) {
	encoded, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode result", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.ToolCallResponse{
		Results: []models.ToolCallResult{
			{ToolCallID: callID, Result: string(encoded)},
		},
	})
}
