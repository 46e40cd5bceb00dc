package analytics

import (
	"testing"
	"time"
)

func TestSessionAnalyticsCountsTurnsAndWords(t *testing.T) {
	session := NewSessionAnalytics("session-1", "user-1", "free_talk", "B1")

	session.RecordUserMessage("I would like to order pizza")
	session.RecordAgentMessage("Sure! What toppings would you like?")
	session.RecordUserMessage("Mushrooms please")
	session.RecordAgentMessage("Great choice!")

	snapshot := session.Snapshot()
	if snapshot.Turns != 2 {
		t.Fatalf("expected 2 turns, got %d", snapshot.Turns)
	}
	if snapshot.UserMessages != 2 || snapshot.AgentMessages != 2 {
		t.Fatalf("unexpected message counts: %+v", snapshot)
	}
	if snapshot.UserWords != 8 {
		t.Fatalf("expected 8 user words, got %d", snapshot.UserWords)
	}
	if snapshot.AgentWords != 8 {
		t.Fatalf("expected 8 agent words, got %d", snapshot.AgentWords)
	}
	if snapshot.Corrections != 0 {
		t.Fatalf("expected no corrections, got %d", snapshot.Corrections)
	}
}

func TestSessionAnalyticsDetectsCorrections(t *testing.T) {
	session := NewSessionAnalytics("session-1", "", "corrective", "B1")

	session.RecordAgentMessage(`Nice! Try saying "I went" instead of "I goed"!`)
	session.RecordAgentMessage("What did you do next?")

	if got := session.Snapshot().Corrections; got != 1 {
		t.Fatalf("expected 1 correction, got %d", got)
	}
}

func TestIsCorrectionMatchesCaseInsensitively(t *testing.T) {
	for _, text := range []string{
		"You could say it this way.",
		"It would be MORE NATURAL to drop the article.",
		"The correct way is simpler.",
	} {
		if !IsCorrection(text) {
			t.Fatalf("expected %q to count as a correction", text)
		}
	}

	if IsCorrection("That sounds great, tell me more!") {
		t.Fatalf("expected plain reply not to count as a correction")
	}
}

func TestFinalizeStampsOnce(t *testing.T) {
	session := NewSessionAnalytics("session-1", "", "free_talk", "B1")

	session.Finalize()
	first := *session.Snapshot().EndedAt

	time.Sleep(5 * time.Millisecond)
	session.Finalize()
	if got := *session.Snapshot().EndedAt; !got.Equal(first) {
		t.Fatalf("expected repeated finalize to keep the first stamp")
	}
}
