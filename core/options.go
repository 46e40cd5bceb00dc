package agent

import (
	"context"
	"time"

	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/llms"
	"github.com/liralabs/lira-core/core/prompts"
	"github.com/liralabs/lira-core/core/speechtotext"
	"github.com/liralabs/lira-core/core/texttospeech"
)

type AgentOption func(*Agent)

// LLMWithStream generates a streamed reply for a prompt on top of a message
// history.
type LLMWithStream interface {
	PromptWithStream(ctx context.Context, prompt *string, opts ...llms.PromptOption) llms.Stream
}

func WithStreamingLLM(client LLMWithStream) AgentOption {
	return func(a *Agent) { a.llm = client }
}

// SpeechToText transcribes audio pushed through SendAudio, reporting results
// through the callbacks configured on Transcribe.
type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

func WithSpeechToTextClient(client SpeechToText) AgentOption {
	return func(a *Agent) { a.speechToText.set(client) }
}

// TextToSpeech synthesizes one phrase into a stream of audio chunks.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) texttospeech.SpeechStream
}

func WithTextToSpeechClient(client TextToSpeech) AgentOption {
	return func(a *Agent) { a.textToSpeech.set(client) }
}

// AudioOutput accepts synthesized audio frames for playback in submission
// order.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}

func WithAudioOutput(client AudioOutput) AgentOption {
	return func(a *Agent) { a.output.set(client) }
}

// AudioInput streams captured audio into the agent, which forwards it to
// transcription.
type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	Close()
}

func WithAudioInput(client AudioInput) AgentOption {
	return func(a *Agent) { a.input = client }
}

// WithMode sets the initial conversation mode.
func WithMode(mode prompts.Mode) AgentOption {
	return func(a *Agent) { a.mode = mode }
}

// WithLevel sets the initial learner level.
func WithLevel(level prompts.Level) AgentOption {
	return func(a *Agent) { a.level = level }
}

// WithScenario sets the initial roleplay scenario.
func WithScenario(scenario string) AgentOption {
	return func(a *Agent) { a.scenario = scenario }
}

// WithDebounceDelay overrides the quiet period waited after the last final
// transcript segment before a response cycle starts.
func WithDebounceDelay(delay time.Duration) AgentOption {
	return func(a *Agent) {
		if delay > 0 {
			a.debounceDelay = delay
		}
	}
}
