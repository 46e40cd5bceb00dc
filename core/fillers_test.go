package agent

import (
	"context"
	"fmt"
	"testing"
)

func TestFillerCacheIsNoopBeforeWarmUp(t *testing.T) {
	cache := newFillerCache(func(context.Context, string) ([]byte, error) {
		return []byte{1, 2, 3}, nil
	})

	if _, _, ok := cache.Random(); ok {
		t.Fatalf("expected no filler before warm-up")
	}
}

func TestFillerCacheServesRenderedPhrasesAfterWarmUp(t *testing.T) {
	rendered := map[string][]byte{}
	cache := newFillerCache(func(_ context.Context, text string) ([]byte, error) {
		audio := []byte(text)
		rendered[text] = audio
		return audio, nil
	})

	cache.WarmUp(context.Background())

	if len(rendered) != len(fillerPhrases) {
		t.Fatalf("expected every phrase rendered, got %d of %d", len(rendered), len(fillerPhrases))
	}

	phrase, audio, ok := cache.Random()
	if !ok {
		t.Fatalf("expected a filler after warm-up")
	}
	if string(audio) != phrase {
		t.Fatalf("expected the phrase's own rendering, got %q for %q", audio, phrase)
	}
}

func TestFillerCacheSkipsFailedRenders(t *testing.T) {
	failing := fillerPhrases[0]
	cache := newFillerCache(func(_ context.Context, text string) ([]byte, error) {
		if text == failing {
			return nil, fmt.Errorf("synthesis unavailable")
		}
		return []byte(text), nil
	})

	cache.WarmUp(context.Background())

	for range 50 {
		phrase, _, ok := cache.Random()
		if !ok {
			t.Fatalf("expected fillers available despite one failure")
		}
		if phrase == failing {
			t.Fatalf("expected failed phrase excluded from the cache")
		}
	}
}

func TestFillerCacheReportsNothingWhenEveryRenderFails(t *testing.T) {
	cache := newFillerCache(func(context.Context, string) ([]byte, error) {
		return nil, fmt.Errorf("synthesis unavailable")
	})

	cache.WarmUp(context.Background())

	if _, _, ok := cache.Random(); ok {
		t.Fatalf("expected no filler when nothing rendered")
	}
}
