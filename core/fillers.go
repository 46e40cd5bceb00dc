package agent

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
)

// fillerPhrases are rendered ahead of time so something audible can play the
// moment a reply starts generating.
var fillerPhrases = []string{
	"Hmm...",
	"I see...",
	"Oh...",
	"Well...",
	"Let me think...",
	"Interesting...",
	"Right...",
}

// fillerCache holds fully rendered filler audio keyed by phrase.
type fillerCache struct {
	render func(ctx context.Context, text string) ([]byte, error)

	mu      sync.RWMutex
	audio   map[string][]byte
	phrases []string

	ready atomic.Bool
}

func newFillerCache(render func(ctx context.Context, text string) ([]byte, error)) *fillerCache {
	return &fillerCache{render: render, audio: map[string][]byte{}}
}

// WarmUp renders every filler phrase into memory. A phrase that fails to
// synthesize is skipped; the rest of the cache still becomes usable.
func (c *fillerCache) WarmUp(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "warm up filler cache")
	defer span.End()

	for _, phrase := range fillerPhrases {
		rendered, err := c.render(ctx, phrase)
		if err != nil {
			span.RecordError(fmt.Errorf("failed to render filler %q: %w", phrase, err))
			continue
		}
		if len(rendered) == 0 {
			continue
		}

		c.mu.Lock()
		c.audio[phrase] = rendered
		c.phrases = append(c.phrases, phrase)
		c.mu.Unlock()
	}

	c.ready.Store(true)
}

// Random picks a cached filler uniformly at random. Before warm-up completes
// (or when nothing rendered successfully) it reports no filler instead of
// waiting.
func (c *fillerCache) Random() (phrase string, rendered []byte, ok bool) {
	if !c.ready.Load() {
		return "", nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.phrases) == 0 {
		return "", nil, false
	}
	phrase = c.phrases[rand.Intn(len(c.phrases))]
	return phrase, c.audio[phrase], true
}
