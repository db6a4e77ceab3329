// Package analytics holds the pure aggregation functions behind the
// dashboard: donor rollups with engagement scores, trend buckets, the
// day's top donors, the live feed and ledger summaries.
//
// Nothing here reads a clock or touches storage. Callers pass "now"
// explicitly so results are deterministic.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

// Score weights. Recency contributes at most 40 points, monetary and
// frequency at most 30 each.
const (
	monetaryWeight  = 30.0
	frequencyWeight = 30.0
	maxScore        = 100
)

// recencyTiers maps "days since last donation" ceilings to points.
var recencyTiers = []struct {
	maxDays int
	points  float64
}{
	{30, 40},
	{90, 30},
	{180, 20},
	{365, 10},
}

// ComputeDonorRollups groups non-refund transactions by donor name and
// scores each donor's engagement relative to the cohort.
//
// Algorithm:
// - Refunds are dropped entirely (a donor whose only entries are refunds does not appear)
// - totals, counts and last date are accumulated per exact donor name
// - cohort maxima are floored at 1 so the ratios never divide by zero
// - score = min(100, round(recency + 30*ln(total+1)/ln(maxTotal+1) + 30*count/maxCount))
//
// The result is sorted by score descending. Donors with equal scores keep
// the order in which they first appear in transactions.
func ComputeDonorRollups(transactions []models.Transaction, now time.Time) []models.DonorRollup {
	rollups := make([]models.DonorRollup, 0)
	index := make(map[string]int)

	for _, tx := range transactions {
		if tx.IsRefund() {
			continue
		}
		i, seen := index[tx.DonorName]
		if !seen {
			i = len(rollups)
			index[tx.DonorName] = i
			rollups = append(rollups, models.DonorRollup{
				Name:             tx.DonorName,
				TotalDonated:     decimal.Zero,
				LastDonationDate: tx.Date,
			})
		}
		r := &rollups[i]
		r.TotalDonated = r.TotalDonated.Add(tx.Amount)
		r.DonationCount++
		if tx.Date.After(r.LastDonationDate) {
			r.LastDonationDate = tx.Date
		}
	}

	if len(rollups) == 0 {
		return rollups
	}

	maxTotal := 1.0
	maxCount := 1
	for _, r := range rollups {
		if total := r.TotalDonated.InexactFloat64(); total > maxTotal {
			maxTotal = total
		}
		if r.DonationCount > maxCount {
			maxCount = r.DonationCount
		}
	}

	today := models.DateOf(now)
	for i := range rollups {
		r := &rollups[i]
		r.EngagementScore = engagementScore(
			r.LastDonationDate.DaysUntil(today),
			r.TotalDonated.InexactFloat64(),
			r.DonationCount,
			maxTotal,
			maxCount,
		)
	}

	sort.SliceStable(rollups, func(a, b int) bool {
		return rollups[a].EngagementScore > rollups[b].EngagementScore
	})
	return rollups
}

func engagementScore(daysSinceLast int, total float64, count int, maxTotal float64, maxCount int) int {
	score := recencyScore(daysSinceLast) +
		monetaryScore(total, maxTotal) +
		frequencyScore(count, maxCount)
	rounded := int(math.Round(score))
	if rounded > maxScore {
		return maxScore
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

func recencyScore(days int) float64 {
	for _, tier := range recencyTiers {
		if days <= tier.maxDays {
			return tier.points
		}
	}
	return 0
}

// monetaryScore is log-scaled against the cohort maximum.
func monetaryScore(total, maxTotal float64) float64 {
	denom := math.Log(maxTotal + 1)
	if denom == 0 {
		return 0
	}
	return monetaryWeight * math.Log(total+1) / denom
}

func frequencyScore(count, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return frequencyWeight * float64(count) / float64(maxCount)
}
