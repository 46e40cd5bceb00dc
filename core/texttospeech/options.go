// Package texttospeech defines the contract between the agent and speech
// synthesis clients.
package texttospeech

import (
	"context"

	"github.com/liralabs/lira-core/core/audio"
)

// SpeechStream is a lazy handle on synthesized speech. Chunks performs the
// request when iterated and yields raw audio until the stream ends, the yield
// returns false, or the context is cancelled.
type SpeechStream interface {
	Chunks(context.Context) func(func([]byte, error) bool)
}

// SynthesizeOptions is the option set shared by all synthesis methods.
type SynthesizeOptions struct {
	EncodingInfo audio.EncodingInfo
}

// SynthesizeOption is a function that modifies the synthesize options.
type SynthesizeOption func(*SynthesizeOptions)

// WithEncodingInfo requests a specific output encoding instead of the
// project default.
func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesizeOption {
	return func(opts *SynthesizeOptions) {
		opts.EncodingInfo = encodingInfo
	}
}
