package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

// Granularity selects the bucket size of a trend series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

const (
	dailyWindowDays  = 30
	weeklyWindowDays = 12 * 7

	dayLabelLayout   = "Jan 2"
	monthLabelLayout = "Jan 2006"
	monthKeyLayout   = "2006-01"
)

// ErrUnknownGranularity is returned for a granularity other than daily, weekly or monthly.
var ErrUnknownGranularity = errors.New("unknown trend granularity")

// ParseGranularity validates a granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
}

// ComputeTrend buckets non-refund donation totals for a trend chart.
//
//   - daily: the 30 calendar days ending today, zero-filled
//   - weekly: days after today-84, bucketed by the Sunday starting each week, sparse
//   - monthly: days after the same day one year ago, bucketed by calendar month, sparse
//
// Points are returned in ascending chronological order.
func ComputeTrend(transactions []models.Transaction, granularity Granularity, now time.Time) ([]models.TrendPoint, error) {
	today := models.DateOf(now)
	switch granularity {
	case Daily:
		return dailyTrend(transactions, today), nil
	case Weekly:
		return sparseTrend(transactions, today.AddDays(-weeklyWindowDays), weekBucket), nil
	case Monthly:
		cutoff := models.Date{Time: today.AddDate(-1, 0, 0)}
		return sparseTrend(transactions, cutoff, monthBucket), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGranularity, granularity)
}

func dailyTrend(transactions []models.Transaction, today models.Date) []models.TrendPoint {
	start := today.AddDays(-(dailyWindowDays - 1))
	points := make([]models.TrendPoint, dailyWindowDays)
	for i := range points {
		day := start.AddDays(i)
		points[i] = models.TrendPoint{
			Key:   day.String(),
			Label: day.Format(dayLabelLayout),
			Total: decimal.Zero,
		}
	}

	for _, tx := range transactions {
		if tx.IsRefund() {
			continue
		}
		offset := start.DaysUntil(tx.Date)
		if offset < 0 || offset >= dailyWindowDays {
			continue
		}
		points[offset].Total = points[offset].Total.Add(tx.Amount)
	}
	return points
}

// bucketFunc maps a date to its bucket key and display label.
type bucketFunc func(models.Date) (key, label string)

func weekBucket(d models.Date) (string, string) {
	start := d.AddDays(-int(d.Weekday()))
	return start.String(), start.Format(dayLabelLayout)
}

func monthBucket(d models.Date) (string, string) {
	return d.Format(monthKeyLayout), d.Format(monthLabelLayout)
}

// sparseTrend sums transactions dated strictly after cutoff into buckets.
// Buckets without transactions are omitted.
func sparseTrend(transactions []models.Transaction, cutoff models.Date, bucket bucketFunc) []models.TrendPoint {
	byKey := make(map[string]*models.TrendPoint)
	for _, tx := range transactions {
		if tx.IsRefund() || !tx.Date.After(cutoff) {
			continue
		}
		key, label := bucket(tx.Date)
		p, ok := byKey[key]
		if !ok {
			p = &models.TrendPoint{Key: key, Label: label, Total: decimal.Zero}
			byKey[key] = p
		}
		p.Total = p.Total.Add(tx.Amount)
	}

	points := make([]models.TrendPoint, 0, len(byKey))
	for _, p := range byKey {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points
}
