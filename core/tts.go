package agent

import (
	"context"

	"github.com/liralabs/lira-core/core/texttospeech"
)

// textToSpeechFacade guards the optional synthesis client. Without one the
// agent still runs through its turn-taking logic; queued phrases just produce
// no audio.
type textToSpeechFacade struct {
	client TextToSpeech
}

func (t *textToSpeechFacade) set(client TextToSpeech) {
	if t != nil {
		t.client = client
	}
}

func (t *textToSpeechFacade) isConfigured() bool {
	return t != nil && t.client != nil
}

func (t *textToSpeechFacade) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) texttospeech.SpeechStream {
	if !t.isConfigured() {
		return emptySpeechStream{}
	}

	return t.client.Synthesize(ctx, text, opts...)
}

// emptySpeechStream yields no audio and ends immediately.
type emptySpeechStream struct{}

func (emptySpeechStream) Chunks(context.Context) func(func([]byte, error) bool) {
	return func(func([]byte, error) bool) {}
}
