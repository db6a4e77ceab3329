package analytics

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

func TestWithRaised(t *testing.T) {
	projects := []models.Project{
		{ID: "proj-1", Goal: decimal.NewFromInt(1000), Raised: decimal.NewFromInt(99999)},
		{ID: "proj-2", Goal: decimal.NewFromInt(500)},
	}
	transactions := []models.Transaction{
		tx("1", "A", 100, "2024-07-01", ""),
		tx("2", "B", 200, "2024-07-01", ""),
		tx("3", "C", 500, "2024-07-01", models.ModeRefund),
	}

	got := WithRaised(projects, transactions)
	if !got[0].Raised.Equal(decimal.NewFromInt(300)) {
		t.Errorf("proj-1 raised = %s, want 300 (stored value must be ignored)", got[0].Raised)
	}
	if !got[1].Raised.IsZero() {
		t.Errorf("proj-2 raised = %s, want 0", got[1].Raised)
	}
	if !projects[0].Raised.Equal(decimal.NewFromInt(99999)) {
		t.Error("input projects were mutated")
	}
	if !ProjectRaised("proj-1", transactions).Equal(got[0].Raised) {
		t.Error("ProjectRaised disagrees with WithRaised")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		raised, goal int64
		want         float64
	}{
		{0, 100, 0},
		{25, 100, 25},
		{26500, 25000, 100},
		{10, 0, 0},
	}
	for _, tt := range tests {
		got := Progress(decimal.NewFromInt(tt.raised), decimal.NewFromInt(tt.goal))
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Progress(%d, %d) = %v, want %v", tt.raised, tt.goal, got, tt.want)
		}
	}
}

func TestSummarizeAndSearchLedger(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "pay-1", DonorName: "Aisha Rahman", ProjectName: "Orphanage", Mode: models.ModeOnline,
			Amount: decimal.NewFromInt(500), Date: models.MustParseDate("2024-07-22")},
		{ID: "pay-2", DonorName: "Biju", ProjectName: "School", Mode: models.ModeRefund,
			Amount: decimal.NewFromInt(250), Date: models.MustParseDate("2024-07-21")},
	}
	debits := []models.Debit{
		{ID: "debit-1", Description: "Water filters", ProjectName: "Orphanage",
			Amount: decimal.NewFromInt(100), Date: models.MustParseDate("2024-07-23")},
	}

	totals := SummarizePayments(transactions, debits)
	if !totals.TotalCredit.Equal(decimal.NewFromInt(500)) {
		t.Errorf("credit = %s, want 500", totals.TotalCredit)
	}
	if !totals.TotalDebit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("debit = %s, want 100", totals.TotalDebit)
	}
	if !totals.Balance().Equal(decimal.NewFromInt(400)) {
		t.Errorf("balance = %s, want 400", totals.Balance())
	}

	all := SearchLedger(transactions, debits, "")
	if len(all) != 3 || all[0].Kind != EntryDebit || all[2].Credit.ID != "pay-2" {
		t.Errorf("unexpected ordering: %+v", all)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"orphan", 2},
		{"REFUND", 1},
		{"filters", 1},
		{"aisha", 1},
		{"nothing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := len(SearchLedger(transactions, debits, tt.query)); got != tt.want {
				t.Errorf("SearchLedger(%q) = %d entries, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	projects := []models.Project{
		{ID: "proj-1", Goal: decimal.NewFromInt(1000)},
		{ID: "proj-2", Goal: decimal.NewFromInt(500)},
	}
	transactions := []models.Transaction{
		tx("1", "A", 100, "2024-07-01", ""),
		tx("2", "A", 50, "2024-07-02", ""),
		tx("3", "B", 70, "2024-07-02", models.ModeRefund),
	}
	stats := ComputeStats(projects, transactions)
	if stats.DonorCount != 1 {
		t.Errorf("donors = %d, want 1", stats.DonorCount)
	}
	if !stats.TotalRaised.Equal(decimal.NewFromInt(150)) {
		t.Errorf("raised = %s, want 150", stats.TotalRaised)
	}
	if !stats.TotalGoal.Equal(decimal.NewFromInt(1500)) || stats.ProjectCount != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
