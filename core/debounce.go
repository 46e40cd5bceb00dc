package agent

import (
	"sync"
	"time"
)

const defaultDebounceDelay = 500 * time.Millisecond

// utteranceDebouncer coalesces finalized transcript segments into a single
// utterance. Every segment restarts a quiet-period timer; once the timer runs
// out the accumulated buffer is flushed as one space-joined utterance.
// Restarting the timer never drops text that already accumulated.
type utteranceDebouncer struct {
	mu     sync.Mutex
	buffer string
	timer  *time.Timer

	delay time.Duration
	flush func(utterance string)
}

func newUtteranceDebouncer(delay time.Duration, flush func(string)) *utteranceDebouncer {
	return &utteranceDebouncer{delay: delay, flush: flush}
}

// Add appends a finalized segment to the buffer and restarts the timer.
func (d *utteranceDebouncer) Add(segment string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buffer == "" {
		d.buffer = segment
	} else {
		d.buffer += " " + segment
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// fire hands the buffer off exactly once. An empty buffer flushes nothing.
func (d *utteranceDebouncer) fire() {
	d.mu.Lock()
	utterance := d.buffer
	d.buffer = ""
	d.mu.Unlock()

	if utterance != "" {
		d.flush(utterance)
	}
}

// Stop cancels any pending timer and discards accumulated text.
func (d *utteranceDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.buffer = ""
}
