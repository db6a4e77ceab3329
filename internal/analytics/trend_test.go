package analytics

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

func TestComputeTrendDaily(t *testing.T) {
	t.Run("empty input gives 30 zero buckets", func(t *testing.T) {
		points, err := ComputeTrend(nil, Daily, fixedNow)
		if err != nil {
			t.Fatalf("ComputeTrend failed: %v", err)
		}
		if len(points) != 30 {
			t.Fatalf("expected 30 buckets, got %d", len(points))
		}
		for _, p := range points {
			if !p.Total.IsZero() {
				t.Errorf("bucket %s total = %s, want 0", p.Key, p.Total)
			}
		}
		if points[0].Key != "2024-06-23" || points[29].Key != "2024-07-22" {
			t.Errorf("window = %s..%s, want 2024-06-23..2024-07-22", points[0].Key, points[29].Key)
		}
		if points[29].Label != "Jul 22" {
			t.Errorf("label = %q, want \"Jul 22\"", points[29].Label)
		}
	})

	t.Run("sums per day and skips refunds and out of window", func(t *testing.T) {
		transactions := []models.Transaction{
			tx("1", "A", 100, "2024-07-22", ""),
			tx("2", "B", 50, "2024-07-22", ""),
			tx("3", "C", 75, "2024-07-22", models.ModeRefund),
			tx("4", "D", 10, "2024-06-23", ""),
			tx("5", "E", 999, "2024-06-22", ""), // one day before the window
		}
		points, err := ComputeTrend(transactions, Daily, fixedNow)
		if err != nil {
			t.Fatalf("ComputeTrend failed: %v", err)
		}
		if !points[29].Total.Equal(decimal.NewFromInt(150)) {
			t.Errorf("today total = %s, want 150", points[29].Total)
		}
		if !points[0].Total.Equal(decimal.NewFromInt(10)) {
			t.Errorf("first day total = %s, want 10", points[0].Total)
		}
	})
}

func TestComputeTrendWeekly(t *testing.T) {
	// 2024-07-22 is a Monday; its week starts Sunday 2024-07-21.
	transactions := []models.Transaction{
		tx("1", "A", 100, "2024-07-22", ""),
		tx("2", "B", 20, "2024-07-21", ""),
		tx("3", "C", 30, "2024-07-20", ""), // previous week (Sunday 2024-07-14)
		tx("4", "D", 40, "2024-04-29", ""), // today-84: excluded
		tx("5", "E", 50, "2024-04-30", ""), // today-83: included, week of 2024-04-28
		tx("6", "F", 60, "2024-07-22", models.ModeRefund),
	}

	points, err := ComputeTrend(transactions, Weekly, fixedNow)
	if err != nil {
		t.Fatalf("ComputeTrend failed: %v", err)
	}

	want := []struct {
		key   string
		total int64
	}{
		{"2024-04-28", 50},
		{"2024-07-14", 30},
		{"2024-07-21", 120},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(points), points)
	}
	for i, w := range want {
		if points[i].Key != w.key {
			t.Errorf("bucket %d key = %s, want %s", i, points[i].Key, w.key)
		}
		if !points[i].Total.Equal(decimal.NewFromInt(w.total)) {
			t.Errorf("bucket %s total = %s, want %d", w.key, points[i].Total, w.total)
		}
	}
	if points[2].Label != "Jul 21" {
		t.Errorf("label = %q, want \"Jul 21\"", points[2].Label)
	}
}

func TestComputeTrendMonthly(t *testing.T) {
	transactions := []models.Transaction{
		tx("1", "A", 100, "2024-07-01", ""),
		tx("2", "B", 200, "2024-07-15", ""),
		tx("3", "C", 300, "2024-02-29", ""),
		tx("4", "D", 400, "2023-07-23", ""), // just inside
		tx("5", "E", 500, "2023-07-22", ""), // exactly one year ago: excluded
		tx("6", "F", 600, "2022-12-01", ""),
	}

	points, err := ComputeTrend(transactions, Monthly, fixedNow)
	if err != nil {
		t.Fatalf("ComputeTrend failed: %v", err)
	}

	wantKeys := []string{"2023-07", "2024-02", "2024-07"}
	if len(points) != len(wantKeys) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(wantKeys), len(points), points)
	}
	for i, k := range wantKeys {
		if points[i].Key != k {
			t.Errorf("bucket %d key = %s, want %s", i, points[i].Key, k)
		}
	}
	if !points[2].Total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("July total = %s, want 300", points[2].Total)
	}
	if points[0].Label != "Jul 2023" {
		t.Errorf("label = %q, want \"Jul 2023\"", points[0].Label)
	}

	oldest := models.DateOf(fixedNow).AddDate(-1, 0, 0).Format("2006-01")
	for _, p := range points {
		if p.Key < oldest {
			t.Errorf("bucket %s is older than 12 months", p.Key)
		}
	}
}

func TestComputeTrendUnknownGranularity(t *testing.T) {
	_, err := ComputeTrend(nil, Granularity("hourly"), fixedNow)
	if !errors.Is(err, ErrUnknownGranularity) {
		t.Errorf("expected ErrUnknownGranularity, got %v", err)
	}
	if _, err := ParseGranularity("weekly"); err != nil {
		t.Errorf("ParseGranularity(weekly) failed: %v", err)
	}
}
