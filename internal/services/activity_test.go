package services

import (
	"testing"
	"time"

	"github.com/campusfind/campusfind-backend/internal/dto"
)

func TestRecentActivityOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []dto.ActivityEntry{
		{Title: "oldest", Date: base.Add(-2 * time.Hour)},
		{Title: "newest", Date: base},
		{Title: "middle", Date: base.Add(-time.Hour)},
	}

	got := recentActivity(entries, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestRecentActivityCapsAtLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var entries []dto.ActivityEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, dto.ActivityEntry{Date: base.Add(time.Duration(i) * time.Minute)})
	}

	got := recentActivity(entries, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	if !got[0].Date.Equal(base.Add(7 * time.Minute)) {
		t.Errorf("expected the newest entry first, got %v", got[0].Date)
	}
}

func TestRecentActivityTiesKeepInputOrder(t *testing.T) {
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []dto.ActivityEntry{
		{Type: "reported", Date: when},
		{Type: "claimed", Date: when},
	}

	got := recentActivity(entries, 10)
	if got[0].Type != "reported" || got[1].Type != "claimed" {
		t.Errorf("same-instant entries must keep input order, got %q then %q", got[0].Type, got[1].Type)
	}
}
