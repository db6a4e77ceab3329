package models

import "github.com/shopspring/decimal"

// EmergencyCampaign is an urgent appeal bound to its own project.
// At most one campaign is active at a time; ended campaigns are kept
// for history.
type EmergencyCampaign struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`
	IsActive    bool            `json:"isActive"`

	// BroadcastMessage is the admin's custom message sent with the alerts.
	BroadcastMessage string `json:"broadcastMessage"`

	// ProjectID is the project that collects the campaign's donations.
	ProjectID string `json:"projectId"`
}
