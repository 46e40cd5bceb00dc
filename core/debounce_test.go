package agent

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesSegmentsIntoOneUtterance(t *testing.T) {
	flushed := make(chan string, 1)
	debouncer := newUtteranceDebouncer(100*time.Millisecond, func(utterance string) {
		flushed <- utterance
	})
	defer debouncer.Stop()

	debouncer.Add("I would like")
	time.Sleep(30 * time.Millisecond)
	debouncer.Add("to order pizza")

	select {
	case utterance := <-flushed:
		if utterance != "I would like to order pizza" {
			t.Fatalf("expected segments joined, got %q", utterance)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for flush")
	}
}

func TestDebouncerRestartsQuietPeriodOnEachSegment(t *testing.T) {
	var mu sync.Mutex
	var flushes []string
	debouncer := newUtteranceDebouncer(80*time.Millisecond, func(utterance string) {
		mu.Lock()
		flushes = append(flushes, utterance)
		mu.Unlock()
	})
	defer debouncer.Stop()

	// Keep adding inside the quiet period; nothing may flush until it ends.
	for range 4 {
		debouncer.Add("still talking")
		time.Sleep(40 * time.Millisecond)
	}

	mu.Lock()
	early := len(flushes)
	mu.Unlock()
	if early != 0 {
		t.Fatalf("expected no flush while segments keep arriving, got %d", early)
	}

	waitForCondition(t, 2*time.Second, "debounced flush", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(flushes) == 1
	})
}

func TestDebouncerStopDiscardsBufferedText(t *testing.T) {
	flushed := make(chan string, 1)
	debouncer := newUtteranceDebouncer(50*time.Millisecond, func(utterance string) {
		select {
		case flushed <- utterance:
		default:
		}
	})

	debouncer.Add("never mind")
	debouncer.Stop()

	select {
	case utterance := <-flushed:
		t.Fatalf("expected no flush after stop, got %q", utterance)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerStopIsRepeatable(t *testing.T) {
	debouncer := newUtteranceDebouncer(50*time.Millisecond, func(string) {})

	debouncer.Stop()
	debouncer.Stop()

	debouncer.Add("hello")
	debouncer.Stop()
}
