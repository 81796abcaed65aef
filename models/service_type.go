package models

// ServiceType is one bookable service offered by the team, reshaped from the
// provider's event type representation.
type ServiceType struct {
	ID              int64  `json:"id"`
	LengthInMinutes int    `json:"lengthInMinutes"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
}

// ServiceTypesResult lists the team's bookable services. Entries without an
// identifier are dropped before this is built.
type ServiceTypesResult struct {
	Success  bool          `json:"success"`
	Services []ServiceType `json:"services"`
	Total    int           `json:"total"`
}
