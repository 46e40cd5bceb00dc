package agent

import (
	"context"
	"testing"
	"time"
)

func TestPlaybackQueuePreservesOrder(t *testing.T) {
	queue := newPlaybackQueue()
	defer queue.Close()

	for _, text := range []string{"first", "second", "third"} {
		queue.Enqueue(newPlaybackItem(context.Background(), text))
	}

	for _, want := range []string{"first", "second", "third"} {
		item, ok := queue.Next(context.Background())
		if !ok {
			t.Fatalf("expected item %q, queue reported closed", want)
		}
		if item.text != want {
			t.Fatalf("expected item %q, got %q", want, item.text)
		}
	}
}

func TestPlaybackQueueNextBlocksUntilEnqueue(t *testing.T) {
	queue := newPlaybackQueue()
	defer queue.Close()

	received := make(chan playbackItem, 1)
	go func() {
		if item, ok := queue.Next(context.Background()); ok {
			received <- item
		}
	}()

	select {
	case item := <-received:
		t.Fatalf("expected Next to block on an empty queue, got %q", item.text)
	case <-time.After(50 * time.Millisecond):
	}

	queue.Enqueue(newPlaybackItem(context.Background(), "late arrival"))

	select {
	case item := <-received:
		if item.text != "late arrival" {
			t.Fatalf("expected the enqueued item, got %q", item.text)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the enqueued item")
	}
}

func TestPlaybackQueueDrainDiscardsPendingItems(t *testing.T) {
	queue := newPlaybackQueue()
	defer queue.Close()

	queue.Enqueue(newPlaybackItem(context.Background(), "first"))
	queue.Enqueue(newPlaybackItem(context.Background(), "second"))

	queue.Drain()

	if queue.Len() != 0 {
		t.Fatalf("expected empty queue after drain, got %d items", queue.Len())
	}

	// The queue stays usable after a drain.
	queue.Enqueue(newPlaybackItem(context.Background(), "after drain"))
	item, ok := queue.Next(context.Background())
	if !ok || item.text != "after drain" {
		t.Fatalf("expected queue usable after drain, got %q (ok=%v)", item.text, ok)
	}
}

func TestPlaybackQueueCloseUnblocksNext(t *testing.T) {
	queue := newPlaybackQueue()

	done := make(chan bool, 1)
	go func() {
		_, ok := queue.Next(context.Background())
		done <- ok
	}()

	queue.Close()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected Next to report closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for Next to unblock")
	}

	// Enqueueing after close is a no-op.
	queue.Enqueue(newPlaybackItem(context.Background(), "ignored"))
	if queue.Len() != 0 {
		t.Fatalf("expected enqueue after close to be dropped")
	}
}

func TestPlaybackQueueNextHonorsContext(t *testing.T) {
	queue := newPlaybackQueue()
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		_, ok := queue.Next(ctx)
		done <- ok
	}()

	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected Next to give up on context cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for Next to honor cancellation")
	}
}
