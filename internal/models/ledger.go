package models

import "github.com/shopspring/decimal"

// TransactionMode is how a donation reached the foundation.
type TransactionMode string

const (
	ModeOnline TransactionMode = "Online"
	ModeWallet TransactionMode = "Wallet"
	ModeManual TransactionMode = "Manual"
	// ModeRefund marks money returned to a donor. The amount stays positive;
	// refunds are excluded from raised totals and donor credit.
	ModeRefund TransactionMode = "Refund"
)

// Valid reports whether m is one of the known modes.
func (m TransactionMode) Valid() bool {
	switch m {
	case ModeOnline, ModeWallet, ModeManual, ModeRefund:
		return true
	}
	return false
}

// Transaction is a credit entry in the ledger (a "payment").
type Transaction struct {
	// ID is the unique identifier ("pay-<uuid>" for new entries).
	ID string `json:"id"`

	DonorName  string `json:"donorName"`
	DonorEmail string `json:"donorEmail,omitempty"`
	DonorPhone string `json:"donorPhone,omitempty"`

	// Amount is always positive, including for refunds.
	Amount decimal.Decimal `json:"amount"`

	// Date is the calendar day of the transaction.
	Date Date `json:"date"`

	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`

	Mode TransactionMode `json:"mode"`

	// Reason is the free-text note recorded with the transaction.
	Reason string `json:"reason,omitempty"`

	// AttachmentName and AttachmentURI reference a receipt, if any.
	AttachmentName string `json:"attachmentName,omitempty"`
	AttachmentURI  string `json:"attachmentUri,omitempty"`
}

// IsRefund reports whether the transaction returns money to the donor.
func (t Transaction) IsRefund() bool {
	return t.Mode == ModeRefund
}

// Debit is an expense recorded against a project. Debits are never
// attributed to a donor.
type Debit struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	ProjectID   string          `json:"projectId"`
	ProjectName string          `json:"projectName"`
	Reason      string          `json:"reason,omitempty"`

	AttachmentName string `json:"attachmentName,omitempty"`
	AttachmentURI  string `json:"attachmentUri,omitempty"`
}

// MediaType distinguishes the kinds of before/after evidence on a project.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	// MediaStory carries text in Before/After instead of URLs.
	MediaStory MediaType = "story"
)

// ProjectMedia is a before/after pair showing a project's impact.
type ProjectMedia struct {
	ID          string    `json:"id"`
	Type        MediaType `json:"type"`
	Before      string    `json:"before"`
	After       string    `json:"after"`
	Description string    `json:"description"`
}

// Project is a fundraising target.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Goal        decimal.Decimal `json:"goal"`

	// Raised is derived from the ledger on every read: the sum of
	// non-refund transactions for this project. A persisted value is
	// never trusted.
	Raised decimal.Decimal `json:"raised"`

	Media []ProjectMedia `json:"media,omitempty"`
}
