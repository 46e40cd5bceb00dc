package analytics

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
)

const recentSessionsKept = 10

// Preferences are the user's sticky conversation settings.
type Preferences struct {
	Mode  string `json:"mode"`
	Level string `json:"level"`
	Voice string `json:"voice"`
}

func DefaultPreferences() Preferences {
	return Preferences{Mode: "free_talk", Level: "B1", Voice: "luna"}
}

// UserProfile is the long-lived learning record of one user, persisted
// across sessions.
type UserProfile struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	TotalSessions    int `json:"total_sessions"`
	TotalTurns       int `json:"total_turns"`
	TotalUserWords   int `json:"total_user_words"`
	TotalCorrections int `json:"total_corrections"`

	Preferences Preferences `json:"preferences"`

	// Streaks count consecutive calendar days with at least one session.
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	LastSessionDay string `json:"last_session_day,omitempty"`

	RecentSessionIDs []string `json:"recent_session_ids,omitempty"`
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		CreatedAt:   time.Now(),
		Preferences: DefaultPreferences(),
	}
}

// RecordSession folds a finished session into the profile's totals, streaks,
// and recent-session list.
func (p *UserProfile) RecordSession(session SessionAnalytics) {
	p.TotalSessions++
	p.TotalTurns += session.Turns
	p.TotalUserWords += session.UserWords
	p.TotalCorrections += session.Corrections

	p.advanceStreak(time.Now())

	p.RecentSessionIDs = append(p.RecentSessionIDs, session.SessionID)
	if len(p.RecentSessionIDs) > recentSessionsKept {
		p.RecentSessionIDs = p.RecentSessionIDs[len(p.RecentSessionIDs)-recentSessionsKept:]
	}
}

func (p *UserProfile) advanceStreak(now time.Time) {
	today := now.Format(time.DateOnly)
	yesterday := now.AddDate(0, 0, -1).Format(time.DateOnly)

	switch p.LastSessionDay {
	case today:
		// Second session of the day, streak already counted.
	case yesterday:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	p.LastSessionDay = today

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
}

// UserStats is the derived view of a profile served to clients: the raw
// totals plus per-session and per-turn averages.
type UserStats struct {
	UserID string `json:"user_id"`

	TotalSessions    int `json:"total_sessions"`
	TotalTurns       int `json:"total_turns"`
	TotalUserWords   int `json:"total_user_words"`
	TotalCorrections int `json:"total_corrections"`

	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	AverageTurnsPerSession float64 `json:"average_turns_per_session"`
	AverageWordsPerTurn    float64 `json:"average_words_per_turn"`
}

// ComputeStats maps the profile's matching fields over and fills in the
// averages.
func ComputeStats(profile UserProfile) (UserStats, error) {
	stats := UserStats{}
	if err := copier.Copy(&stats, &profile); err != nil {
		return UserStats{}, fmt.Errorf("failed to map profile to stats: %w", err)
	}

	if profile.TotalSessions > 0 {
		stats.AverageTurnsPerSession = float64(profile.TotalTurns) / float64(profile.TotalSessions)
	}
	if profile.TotalTurns > 0 {
		stats.AverageWordsPerTurn = float64(profile.TotalUserWords) / float64(profile.TotalTurns)
	}

	return stats, nil
}
