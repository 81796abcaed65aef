package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"calbridge/errs"
	"calbridge/models"
)

// Per-operation deadlines. Slot and booking queries fan out further inside
// the provider, so they get a little more headroom.
const (
	cancelTimeout     = 12 * time.Second
	slotsTimeout      = 15 * time.Second
	upcomingTimeout   = 12 * time.Second
	createTimeout     = 15 * time.Second
	eventTypesTimeout = 10 * time.Second
)

// Config holds the immutable upstream connection settings.
type Config struct {
	BaseURL        string
	APIKey         string
	APIVersion     string
	ClinicTimeZone string
}

// Response is the provider's envelope: a status indicator plus the raw
// payload, left undecoded for the translation layer.
type Response struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	EventTypes json.RawMessage `json:"event_types"`
}

// Client is a stateless HTTP client for the scheduling provider's REST API.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a provider client. Deadlines are enforced per call via
// context, not on the shared http.Client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// ClinicTimeZone exposes the configured default timezone for callers that
// need it when assembling requests.
func (c *Client) ClinicTimeZone() string {
	return c.cfg.ClinicTimeZone
}

// CancelBooking cancels a booking. Numeric identifiers are embedded as
// integers; opaque UIDs are embedded verbatim.
func (c *Client) CancelBooking(ctx context.Context, bookingID models.IntOrString, reason string) (*Response, error) {
	var endpoint string
	if bookingID.IsInt {
		endpoint = fmt.Sprintf("%s/bookings/%d/cancel", c.cfg.BaseURL, bookingID.IntVal)
	} else {
		endpoint = fmt.Sprintf("%s/bookings/%s/cancel", c.cfg.BaseURL, bookingID.StrVal)
	}
	body := map[string]string{"cancellationReason": reason}
	return c.do(ctx, http.MethodPost, endpoint, nil, body, cancelTimeout)
}

// GetAvailableSlots queries the slot window for an event type. Username and
// duration are omitted from the query when unset.
func (c *Client) GetAvailableSlots(ctx context.Context, p *models.GetAvailableSlotsParams) (*Response, error) {
	timeZone := p.TimeZone
	if timeZone == "" {
		timeZone = c.cfg.ClinicTimeZone
	}
	query := url.Values{}
	query.Set("eventTypeId", strconv.Itoa(p.EventTypeID))
	query.Set("start", p.StartDate)
	query.Set("end", p.EndDate)
	query.Set("timeZone", timeZone)
	query.Set("format", p.Format)
	if p.Username != "" {
		query.Set("username", p.Username)
	}
	if p.Duration != nil {
		query.Set("duration", strconv.Itoa(*p.Duration))
	}
	return c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/slots", query, nil, slotsTimeout)
}

// GetUpcomingAppointments lists upcoming bookings filtered by attendee
// email, optionally bounded below by a start date.
func (c *Client) GetUpcomingAppointments(ctx context.Context, email string, limit int, after string) (*Response, error) {
	query := url.Values{}
	query.Set("status", "upcoming")
	query.Set("attendeeEmail", strings.TrimSpace(email))
	query.Set("take", strconv.Itoa(limit))
	query.Set("skip", "0")
	if after != "" {
		query.Set("afterStart", after)
	}
	return c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/bookings", query, nil, upcomingTimeout)
}

// CreateBooking creates a booking with the attendee pinned to the configured
// clinic timezone. Additional notes from the caller are not forwarded; the
// provider has no field mapped for them.
func (c *Client) CreateBooking(ctx context.Context, p *models.CreateBookingParams) (*Response, error) {
	body := map[string]any{
		"eventTypeId": p.EventTypeID,
		"start":       p.Start,
		"attendee": map[string]string{
			"name":     p.AttendeeName,
			"email":    p.AttendeeEmail,
			"timeZone": c.cfg.ClinicTimeZone,
		},
	}
	return c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/bookings", nil, body, createTimeout)
}

// GetEventTypes lists the event types scoped to one team.
func (c *Client) GetEventTypes(ctx context.Context, teamID int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/teams/%d/event-types", c.cfg.BaseURL, teamID)
	return c.do(ctx, http.MethodGet, endpoint, nil, nil, eventTypesTimeout)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errs.TransportErrorf("encode request body: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errs.TransportErrorf("build request: %v", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("cal-api-version", c.cfg.APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.TransportErrorf("request to provider failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.TransportErrorf("read provider response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.TransportErrorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded Response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errs.TransportErrorf("decode provider response: %v", err)
	}
	return &decoded, nil
}
