package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ProjectRaised sums the non-refund transactions credited to projectID.
func ProjectRaised(projectID string, transactions []models.Transaction) decimal.Decimal {
	raised := decimal.Zero
	for _, tx := range transactions {
		if tx.ProjectID == projectID && !tx.IsRefund() {
			raised = raised.Add(tx.Amount)
		}
	}
	return raised
}

// WithRaised returns copies of projects whose Raised is recomputed from
// the ledger. Stored Raised values are ignored.
func WithRaised(projects []models.Project, transactions []models.Transaction) []models.Project {
	byProject := make(map[string]decimal.Decimal, len(projects))
	for _, tx := range transactions {
		if tx.IsRefund() {
			continue
		}
		byProject[tx.ProjectID] = byProject[tx.ProjectID].Add(tx.Amount)
	}

	out := make([]models.Project, len(projects))
	for i, p := range projects {
		p.Raised = byProject[p.ID]
		out[i] = p
	}
	return out
}

// Progress returns raised as a percentage of goal, capped at 100.
// A non-positive goal yields 0.
func Progress(raised, goal decimal.Decimal) float64 {
	if !goal.IsPositive() {
		return 0
	}
	pct := raised.Div(goal).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return pct.InexactFloat64()
}

// PaymentTotals are the headline figures of the payments page.
type PaymentTotals struct {
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
}

// Balance is credit minus debit.
func (t PaymentTotals) Balance() decimal.Decimal {
	return t.TotalCredit.Sub(t.TotalDebit)
}

// SummarizePayments totals non-refund credits and all debits.
func SummarizePayments(transactions []models.Transaction, debits []models.Debit) PaymentTotals {
	totals := PaymentTotals{TotalCredit: decimal.Zero, TotalDebit: decimal.Zero}
	for _, tx := range transactions {
		if !tx.IsRefund() {
			totals.TotalCredit = totals.TotalCredit.Add(tx.Amount)
		}
	}
	for _, d := range debits {
		totals.TotalDebit = totals.TotalDebit.Add(d.Amount)
	}
	return totals
}

// EntryKind distinguishes credits from debits in a combined ledger view.
type EntryKind string

const (
	EntryCredit EntryKind = "credit"
	EntryDebit  EntryKind = "debit"
)

// LedgerEntry is one row of the combined payments table. Exactly one of
// Credit and Debit is set.
type LedgerEntry struct {
	Kind   EntryKind           `json:"kind"`
	Date   models.Date         `json:"date"`
	Credit *models.Transaction `json:"credit,omitempty"`
	Debit  *models.Debit       `json:"debit,omitempty"`
}

// SearchLedger merges credits and debits matching query, newest first.
//
// The match is a case-insensitive substring test against donor name,
// project name and mode for credits, and against description and project
// name for debits. An empty query matches everything.
func SearchLedger(transactions []models.Transaction, debits []models.Debit, query string) []LedgerEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	entries := make([]LedgerEntry, 0, len(transactions)+len(debits))

	for i := range transactions {
		tx := transactions[i]
		if !matchesAny(q, tx.DonorName, tx.ProjectName, string(tx.Mode)) {
			continue
		}
		entries = append(entries, LedgerEntry{Kind: EntryCredit, Date: tx.Date, Credit: &tx})
	}
	for i := range debits {
		d := debits[i]
		if !matchesAny(q, d.Description, d.ProjectName) {
			continue
		}
		entries = append(entries, LedgerEntry{Kind: EntryDebit, Date: d.Date, Debit: &d})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

func matchesAny(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// Stats are the summary cards at the top of the dashboard.
type Stats struct {
	TotalRaised  decimal.Decimal `json:"totalRaised"`
	TotalGoal    decimal.Decimal `json:"totalGoal"`
	DonorCount   int             `json:"donorCount"`
	ProjectCount int             `json:"projectCount"`
}

// ComputeStats totals non-refund donations, distinct donors and project goals.
func ComputeStats(projects []models.Project, transactions []models.Transaction) Stats {
	stats := Stats{TotalRaised: decimal.Zero, TotalGoal: decimal.Zero, ProjectCount: len(projects)}
	donors := make(map[string]struct{})
	for _, tx := range transactions {
		if tx.IsRefund() {
			continue
		}
		stats.TotalRaised = stats.TotalRaised.Add(tx.Amount)
		donors[tx.DonorName] = struct{}{}
	}
	for _, p := range projects {
		stats.TotalGoal = stats.TotalGoal.Add(p.Goal)
	}
	stats.DonorCount = len(donors)
	return stats
}
