package models

import "github.com/shopspring/decimal"

// DonorRollup summarizes one donor's non-refund giving.
// It is derived on every read and never persisted.
type DonorRollup struct {
	Name             string          `json:"name"`
	TotalDonated     decimal.Decimal `json:"totalDonated"`
	DonationCount    int             `json:"donationCount"`
	LastDonationDate Date            `json:"lastDonationDate"`

	// EngagementScore is a 0-100 composite of recency, monetary
	// magnitude and frequency relative to the donor cohort.
	EngagementScore int `json:"engagementScore"`
}

// TopDonor is one entry of the "top donors of the day" list.
type TopDonor struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Date   Date            `json:"date"`
}

// TrendPoint is one bucket of a donation trend chart.
type TrendPoint struct {
	// Key sorts chronologically ("2006-01-02" for days and weeks, "2006-01" for months).
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// FraudVerdict is the outcome of a donor fraud assessment.
type FraudVerdict struct {
	IsSuspicious bool   `json:"isSuspicious"`
	Reason       string `json:"reason"`
}
