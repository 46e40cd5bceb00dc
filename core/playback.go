package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// playbackChunkSize is the slice size used when streaming pre-rendered
	// audio to the output sink, matching the synthesis chunk size.
	playbackChunkSize = 4096
	// playbackSilencePad is appended after a fully played phrase to avoid
	// clicks at phrase boundaries.
	playbackSilencePad = 100 * time.Millisecond
)

// playbackItem is one queued unit of speech. Items carry the context of the
// response cycle that produced them, so playback of a superseded cycle stops
// even after the interrupt flag has been cleared for the next one.
type playbackItem struct {
	id   string
	text string
	// gate, when set, holds the item back until the channel closes. The first
	// item of a response cycle gates on the filler finishing so their audio
	// does not interleave.
	gate <-chan struct{}
	ctx  context.Context
}

func newPlaybackItem(ctx context.Context, text string) playbackItem {
	return playbackItem{id: uuid.NewString(), text: text, ctx: ctx}
}

// playbackQueue is an unbounded FIFO drained by a single worker. Producers
// never block; the worker blocks on updateSignal until an item, a drain, or a
// close arrives.
type playbackQueue struct {
	mu           sync.Mutex
	items        []playbackItem
	closed       bool
	updateSignal chan struct{}
}

func newPlaybackQueue() *playbackQueue {
	return &playbackQueue{updateSignal: make(chan struct{}, 1)}
}

func (q *playbackQueue) Enqueue(item playbackItem) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.signalUpdate()
}

// Next blocks until an item is available. It reports false once the queue is
// closed or the passed context ends.
func (q *playbackQueue) Next(ctx context.Context) (playbackItem, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return playbackItem{}, false
		}
		if len(q.items) > 0 {
			item := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return item, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return playbackItem{}, false
		case <-q.updateSignal:
		}
	}
}

// Drain discards everything queued without touching the item currently being
// played; that item aborts through its own context and flag checks.
func (q *playbackQueue) Drain() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}

func (q *playbackQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close is the shutdown sentinel: the worker's Next returns false and queued
// items are discarded.
func (q *playbackQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	q.signalUpdate()
}

func (q *playbackQueue) signalUpdate() {
	select {
	case q.updateSignal <- struct{}{}:
	default:
	}
}

// playbackWorker drains the queue one item at a time so speech never
// overlaps.
func (a *Agent) playbackWorker(ctx context.Context) {
	for {
		item, ok := a.queue.Next(ctx)
		if !ok {
			return
		}
		a.playItem(item)
	}
}

// playItem synthesizes one phrase and forwards its audio to the output sink,
// checking for interruption between chunks. A fully played phrase is followed
// by a short silence pad.
func (a *Agent) playItem(item playbackItem) {
	if item.gate != nil {
		select {
		case <-item.gate:
		case <-item.ctx.Done():
			return
		}
	}
	if a.itemInterrupted(item) {
		return
	}

	ctx, span := tracer.Start(item.ctx, "play queued phrase")
	defer span.End()
	span.SetAttributes(attribute.String("playback.item_id", item.id))

	a.speaking.Store(true)
	defer a.speaking.Store(false)

	a.emitter.Emit(events.NewAssistantPlaybackStarted(item.text))
	defer a.emitter.Emit(events.NewAssistantPlaybackEnded(item.text))

	for chunk, err := range a.textToSpeech.Synthesize(ctx, item.text).Chunks(ctx) {
		if err != nil {
			// A phrase that fails to synthesize is abandoned; the worker
			// proceeds to the next queued item.
			recordedErr := fmt.Errorf("failed to synthesize phrase: %w", err)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
			return
		}
		if a.itemInterrupted(item) {
			span.AddEvent("playback interrupted")
			return
		}
		if err := a.output.SendAudio(chunk); err != nil {
			recordedErr := fmt.Errorf("failed to forward audio to output: %w", err)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
			return
		}
	}

	if a.itemInterrupted(item) {
		return
	}

	if err := a.output.SendAudio(audio.Silence(playbackSilencePad, a.output.EncodingInfo())); err != nil {
		span.RecordError(fmt.Errorf("failed to pad phrase with silence: %w", err))
	}
}

// playRendered streams already-rendered audio to the sink in fixed-size
// chunks, checking for interruption between chunks.
func (a *Agent) playRendered(ctx context.Context, rendered []byte) {
	for offset := 0; offset < len(rendered); offset += playbackChunkSize {
		if ctx.Err() != nil || a.interrupt.IsSet() {
			return
		}

		end := min(offset+playbackChunkSize, len(rendered))
		if err := a.output.SendAudio(rendered[offset:end]); err != nil {
			return
		}
	}
}

func (a *Agent) itemInterrupted(item playbackItem) bool {
	return item.ctx.Err() != nil || a.interrupt.IsSet()
}
