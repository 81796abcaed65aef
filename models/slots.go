package models

import "encoding/json"

// SlotsResult carries the provider's slot map through untouched, keyed by
// date. Only the date count is derived here; slot entries stay opaque.
type SlotsResult struct {
	Success    bool                       `json:"success"`
	Slots      map[string]json.RawMessage `json:"slots"`
	TotalDates int                        `json:"total_dates"`
}
