package analytics

import (
	"fmt"
	"testing"
	"time"
)

func TestRecordSessionUpdatesTotalsAndRecents(t *testing.T) {
	profile := NewUserProfile("user-1")

	for i := range 12 {
		profile.RecordSession(SessionAnalytics{
			SessionID: fmt.Sprintf("session-%d", i),
			Turns:     3,
			UserWords: 30,
		})
	}

	if profile.TotalSessions != 12 {
		t.Fatalf("expected 12 sessions, got %d", profile.TotalSessions)
	}
	if profile.TotalTurns != 36 || profile.TotalUserWords != 360 {
		t.Fatalf("unexpected totals: %+v", profile)
	}
	if len(profile.RecentSessionIDs) != recentSessionsKept {
		t.Fatalf("expected recent sessions capped at %d, got %d", recentSessionsKept, len(profile.RecentSessionIDs))
	}
	if profile.RecentSessionIDs[0] != "session-2" || profile.RecentSessionIDs[9] != "session-11" {
		t.Fatalf("expected oldest sessions evicted, got %v", profile.RecentSessionIDs)
	}
}

func TestAdvanceStreak(t *testing.T) {
	profile := NewUserProfile("user-1")
	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	profile.advanceStreak(day)
	if profile.CurrentStreak != 1 {
		t.Fatalf("expected streak to start at 1, got %d", profile.CurrentStreak)
	}

	// Same day does not double-count.
	profile.advanceStreak(day.Add(4 * time.Hour))
	if profile.CurrentStreak != 1 {
		t.Fatalf("expected same-day session to keep the streak, got %d", profile.CurrentStreak)
	}

	// Consecutive days extend it.
	profile.advanceStreak(day.AddDate(0, 0, 1))
	profile.advanceStreak(day.AddDate(0, 0, 2))
	if profile.CurrentStreak != 3 {
		t.Fatalf("expected 3-day streak, got %d", profile.CurrentStreak)
	}

	// A gap resets the current streak but keeps the longest.
	profile.advanceStreak(day.AddDate(0, 0, 7))
	if profile.CurrentStreak != 1 {
		t.Fatalf("expected streak reset after a gap, got %d", profile.CurrentStreak)
	}
	if profile.LongestStreak != 3 {
		t.Fatalf("expected longest streak kept at 3, got %d", profile.LongestStreak)
	}
}

func TestComputeStats(t *testing.T) {
	profile := UserProfile{
		UserID:           "user-1",
		TotalSessions:    4,
		TotalTurns:       20,
		TotalUserWords:   300,
		TotalCorrections: 5,
		CurrentStreak:    2,
		LongestStreak:    6,
	}

	stats, err := ComputeStats(profile)
	if err != nil {
		t.Fatalf("expected stats to compute, got %v", err)
	}

	if stats.UserID != "user-1" || stats.TotalSessions != 4 || stats.LongestStreak != 6 {
		t.Fatalf("expected matching fields copied over, got %+v", stats)
	}
	if stats.AverageTurnsPerSession != 5 {
		t.Fatalf("expected 5 turns per session, got %f", stats.AverageTurnsPerSession)
	}
	if stats.AverageWordsPerTurn != 15 {
		t.Fatalf("expected 15 words per turn, got %f", stats.AverageWordsPerTurn)
	}
}

func TestComputeStatsOnEmptyProfile(t *testing.T) {
	stats, err := ComputeStats(UserProfile{UserID: "user-1"})
	if err != nil {
		t.Fatalf("expected stats to compute, got %v", err)
	}
	if stats.AverageTurnsPerSession != 0 || stats.AverageWordsPerTurn != 0 {
		t.Fatalf("expected zero averages on empty profile, got %+v", stats)
	}
}
