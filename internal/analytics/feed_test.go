package analytics

import (
	"testing"

	"github.com/bairooha/donordesk/internal/models"
)

func ids(transactions []models.Transaction) []string {
	out := make([]string, len(transactions))
	for i, tx := range transactions {
		out[i] = tx.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectTopDonorsForDate(t *testing.T) {
	today := models.DateOf(fixedNow)

	t.Run("sums per donor for the date", func(t *testing.T) {
		transactions := []models.Transaction{
			tx("1", "A", 100, "2024-07-22", ""),
			tx("2", "B", 300, "2024-07-22", ""),
			tx("3", "A", 250, "2024-07-22", ""),
			tx("4", "C", 50, "2024-07-22", ""),
			tx("5", "D", 10, "2024-07-22", ""),
			tx("6", "E", 9999, "2024-07-22", models.ModeRefund),
			tx("7", "F", 9999, "2024-07-21", ""),
		}
		top := SelectTopDonorsForDate(transactions, today)
		if top.Fallback {
			t.Error("unexpected fallback")
		}
		if len(top.Donors) != 3 {
			t.Fatalf("expected 3 donors, got %d", len(top.Donors))
		}
		wantNames := []string{"A", "B", "C"}
		for i, name := range wantNames {
			if top.Donors[i].Name != name {
				t.Errorf("donor %d = %s, want %s", i, top.Donors[i].Name, name)
			}
			if !top.Donors[i].Date.Equal(today) {
				t.Errorf("donor %d date = %s, want %s", i, top.Donors[i].Date, today)
			}
		}
		if top.Donors[0].Amount.IntPart() != 350 {
			t.Errorf("A amount = %s, want 350", top.Donors[0].Amount)
		}
	})

	t.Run("falls back to latest date", func(t *testing.T) {
		transactions := []models.Transaction{
			tx("1", "A", 10, "2024-07-01", ""),
			tx("2", "B", 20, "2024-07-03", ""),
			tx("3", "C", 30, "2024-07-03", ""),
			tx("4", "D", 99, "2024-07-05", models.ModeRefund),
		}
		top := SelectTopDonorsForDate(transactions, today)
		if !top.Fallback {
			t.Error("expected fallback")
		}
		if top.Date.String() != "2024-07-03" {
			t.Errorf("date = %s, want 2024-07-03", top.Date)
		}
		if len(top.Donors) != 2 || top.Donors[0].Name != "C" {
			t.Errorf("donors = %+v, want C then B", top.Donors)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		top := SelectTopDonorsForDate(nil, today)
		if len(top.Donors) != 0 {
			t.Errorf("expected no donors, got %d", len(top.Donors))
		}
	})
}

func TestLiveFeed(t *testing.T) {
	transactions := []models.Transaction{
		tx("p1", "A", 1, "2024-07-01", ""),
		tx("p2", "B", 1, "2024-07-02", ""),
		tx("p3", "C", 1, "2024-07-03", ""),
		tx("p4", "D", 1, "2024-07-04", ""),
		tx("p5", "E", 1, "2024-07-05", ""),
		tx("p6", "F", 1, "2024-07-06", ""),
		tx("r1", "G", 1, "2024-07-07", models.ModeRefund),
	}

	feed := NewLiveFeed(transactions, DefaultFeedSize)
	if got := ids(feed.Window()); !equalIDs(got, []string{"p6", "p5", "p4", "p3", "p2"}) {
		t.Fatalf("initial window = %v", got)
	}
	if feed.Index() != 5 {
		t.Errorf("initial index = %d, want 5", feed.Index())
	}

	// sorted[5] is p1.
	if got := ids(feed.Tick()); !equalIDs(got, []string{"p1", "p6", "p5", "p4", "p3"}) {
		t.Errorf("after 1 tick = %v", got)
	}
	if feed.Index() != 0 {
		t.Errorf("index = %d, want 0", feed.Index())
	}

	// sorted[0] is p6, already in the window: it moves to the front.
	if got := ids(feed.Tick()); !equalIDs(got, []string{"p6", "p1", "p5", "p4", "p3"}) {
		t.Errorf("after 2 ticks = %v", got)
	}
}

func TestLiveFeedSmallAndEmpty(t *testing.T) {
	empty := NewLiveFeed(nil, 5)
	if len(empty.Tick()) != 0 {
		t.Error("empty feed should stay empty")
	}

	small := NewLiveFeed([]models.Transaction{
		tx("a", "A", 1, "2024-07-01", ""),
		tx("b", "B", 1, "2024-07-02", ""),
	}, 5)
	for range 4 {
		window := small.Tick()
		if len(window) != 2 {
			t.Fatalf("window size = %d, want 2", len(window))
		}
		if window[0].ID == window[1].ID {
			t.Fatalf("duplicate ids in window: %v", ids(window))
		}
	}
}

func TestSelectLiveFeed(t *testing.T) {
	transactions := []models.Transaction{
		tx("p1", "A", 1, "2024-07-01", ""),
		tx("p2", "B", 1, "2024-07-02", ""),
		tx("p3", "C", 1, "2024-07-03", ""),
	}
	window, next := SelectLiveFeed(transactions, 2, 1)
	// sorted: p3 p2 p1; window p3 p2; index 2 -> p1.
	if !equalIDs(ids(window), []string{"p1", "p3"}) {
		t.Errorf("window = %v, want [p1 p3]", ids(window))
	}
	if next != 0 {
		t.Errorf("next = %d, want 0", next)
	}
}
