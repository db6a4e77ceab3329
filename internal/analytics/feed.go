package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

const (
	topDonorLimit = 3

	// DefaultFeedSize is the number of entries shown in the live feed.
	DefaultFeedSize = 5
)

// TopDonors is the leaderboard for a single day.
type TopDonors struct {
	// Date is the day actually used. It differs from the requested day
	// when nothing was donated on it.
	Date models.Date `json:"date"`

	Donors   []models.TopDonor `json:"donors"`
	Fallback bool              `json:"fallback"`
}

// SelectTopDonorsForDate sums non-refund donations per donor on date and
// returns the top three, largest first.
//
// When no donation falls on date, the most recent donation date present
// is used instead and Fallback is set. Donors with equal sums keep their
// first-seen order.
func SelectTopDonorsForDate(transactions []models.Transaction, date models.Date) TopDonors {
	credits := nonRefunds(transactions)
	result := TopDonors{Date: date, Donors: make([]models.TopDonor, 0, topDonorLimit)}

	if !anyOnDate(credits, date) {
		latest, ok := latestDate(credits)
		if !ok {
			return TopDonors{Donors: result.Donors}
		}
		result.Date = latest
		result.Fallback = true
	}

	var order []string
	sums := make(map[string]decimal.Decimal)
	for _, tx := range credits {
		if !tx.Date.Equal(result.Date) {
			continue
		}
		if _, seen := sums[tx.DonorName]; !seen {
			order = append(order, tx.DonorName)
			sums[tx.DonorName] = decimal.Zero
		}
		sums[tx.DonorName] = sums[tx.DonorName].Add(tx.Amount)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]].GreaterThan(sums[order[j]])
	})
	if len(order) > topDonorLimit {
		order = order[:topDonorLimit]
	}
	for _, name := range order {
		result.Donors = append(result.Donors, models.TopDonor{
			Name:   name,
			Amount: sums[name],
			Date:   result.Date,
		})
	}
	return result
}

// LiveFeed is a rotating window over the most recent donations. It is
// display state only and is never persisted.
//
// A LiveFeed is not safe for concurrent use.
type LiveFeed struct {
	sorted []models.Transaction
	window []models.Transaction
	size   int
	next   int
}

// NewLiveFeed sorts the non-refund transactions newest first and fills
// the initial window. A size below 1 uses DefaultFeedSize.
func NewLiveFeed(transactions []models.Transaction, size int) *LiveFeed {
	if size < 1 {
		size = DefaultFeedSize
	}
	sorted := nonRefunds(transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	f := &LiveFeed{sorted: sorted, size: size}
	if len(sorted) == 0 {
		return f
	}
	n := min(size, len(sorted))
	f.window = append([]models.Transaction(nil), sorted[:n]...)
	f.next = size % len(sorted)
	return f
}

// Window returns a copy of the current entries, most recent insertion first.
func (f *LiveFeed) Window() []models.Transaction {
	out := make([]models.Transaction, len(f.window))
	copy(out, f.window)
	return out
}

// Index returns the rotation index of the next entry to insert.
func (f *LiveFeed) Index() int {
	return f.next
}

// Tick inserts the next transaction at the front of the window, drops
// older duplicates of the same id, trims to size and advances the index.
// It is a no-op for an empty feed.
func (f *LiveFeed) Tick() []models.Transaction {
	if len(f.sorted) == 0 {
		return f.Window()
	}
	incoming := f.sorted[f.next]

	window := make([]models.Transaction, 0, f.size)
	window = append(window, incoming)
	for _, tx := range f.window {
		if tx.ID == incoming.ID {
			continue
		}
		window = append(window, tx)
		if len(window) == f.size {
			break
		}
	}
	f.window = window
	f.next = (f.next + 1) % len(f.sorted)
	return f.Window()
}

// SelectLiveFeed returns the window after advancing a fresh feed by
// ticks steps, together with the next rotation index. It lets a
// stateless caller reproduce the feed at any point.
func SelectLiveFeed(transactions []models.Transaction, size, ticks int) ([]models.Transaction, int) {
	f := NewLiveFeed(transactions, size)
	for range ticks {
		f.Tick()
	}
	return f.Window(), f.Index()
}

func nonRefunds(transactions []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.IsRefund() {
			out = append(out, tx)
		}
	}
	return out
}

func anyOnDate(transactions []models.Transaction, date models.Date) bool {
	for _, tx := range transactions {
		if tx.Date.Equal(date) {
			return true
		}
	}
	return false
}

func latestDate(transactions []models.Transaction) (models.Date, bool) {
	var latest models.Date
	found := false
	for _, tx := range transactions {
		if !found || tx.Date.After(latest) {
			latest = tx.Date
			found = true
		}
	}
	return latest, found
}
