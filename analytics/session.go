// Package analytics tracks per-session conversation metrics and long-lived
// user learning profiles.
package analytics

import (
	"strings"
	"sync"
	"time"
)

// correctionPatterns are the assistant phrasings counted as language
// corrections. Matching is case-insensitive substring search.
var correctionPatterns = []string{
	"you could say",
	"you might say",
	"better to say",
	"instead of",
	"correct way",
	"should be",
	"try saying",
	"more natural",
}

// SessionAnalytics accumulates metrics over one conversation session.
type SessionAnalytics struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id,omitempty"`
	Mode      string     `json:"mode"`
	Level     string     `json:"level"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Turns         int `json:"turns"`
	UserMessages  int `json:"user_messages"`
	AgentMessages int `json:"agent_messages"`
	UserWords     int `json:"user_words"`
	AgentWords    int `json:"agent_words"`
	Corrections   int `json:"corrections"`

	DurationSeconds float64 `json:"duration_seconds"`

	mu sync.Mutex
}

func NewSessionAnalytics(sessionID, userID, mode, level string) *SessionAnalytics {
	return &SessionAnalytics{
		SessionID: sessionID,
		UserID:    userID,
		Mode:      mode,
		Level:     level,
		StartedAt: time.Now(),
	}
}

// RecordUserMessage counts one finished user utterance.
func (s *SessionAnalytics) RecordUserMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UserMessages++
	s.UserWords += countWords(text)
}

// RecordAgentMessage counts one completed reply. A user/agent message pair
// makes a turn, and replies that read like corrections are tallied
// separately.
func (s *SessionAnalytics) RecordAgentMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.AgentMessages++
	s.AgentWords += countWords(text)
	s.Turns++
	if IsCorrection(text) {
		s.Corrections++
	}
}

// Finalize stamps the session end. Calling it again keeps the first stamp.
func (s *SessionAnalytics) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.EndedAt != nil {
		return
	}
	endedAt := time.Now()
	s.EndedAt = &endedAt
	s.DurationSeconds = endedAt.Sub(s.StartedAt).Seconds()
}

// Snapshot returns a copy safe to serialize while recording continues.
func (s *SessionAnalytics) Snapshot() SessionAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionAnalytics{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Mode:      s.Mode,
		Level:     s.Level,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,

		Turns:         s.Turns,
		UserMessages:  s.UserMessages,
		AgentMessages: s.AgentMessages,
		UserWords:     s.UserWords,
		AgentWords:    s.AgentWords,
		Corrections:   s.Corrections,

		DurationSeconds: s.DurationSeconds,
	}
}

// IsCorrection reports whether assistant text contains a known correction
// phrasing.
func IsCorrection(text string) bool {
	lowered := strings.ToLower(text)
	for _, pattern := range correctionPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
