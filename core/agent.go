// Package agent implements a real-time voice conversation agent: it listens
// to transcribed user speech, debounces it into utterances, streams model
// replies phrase by phrase, and plays them back with barge-in interruption.
package agent

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/events"
	"github.com/liralabs/lira-core/core/llms"
	"github.com/liralabs/lira-core/core/prompts"
)

// Agent orchestrates one conversation. Construct it with [New], attach
// clients through options, then call [Agent.Start].
type Agent struct {
	mu       sync.Mutex
	history  []llms.Message
	mode     prompts.Mode
	level    prompts.Level
	scenario string

	debounceDelay time.Duration

	llm          LLMWithStream
	speechToText *speechToTextFacade
	textToSpeech *textToSpeechFacade
	output       *audioOutputFacade
	input        AudioInput

	emitter   *eventEmitter
	debouncer *utteranceDebouncer
	fillers   *fillerCache
	queue     *playbackQueue
	interrupt interruptFlag

	turnMu     sync.Mutex
	activeTurn *turnHandle

	speaking atomic.Bool

	ctxMu      sync.Mutex
	baseCtx    context.Context
	baseCancel context.CancelFunc

	started    atomic.Bool
	closeOnce  sync.Once
	closed     chan struct{}
	workerDone chan struct{}
}

// New creates an agent with the passed options applied over defaults. Audio
// and model clients are optional so the agent can run in text-only setups and
// tests; a missing LLM makes response cycles fail with the fallback phrase.
func New(opts ...AgentOption) *Agent {
	a := &Agent{
		mode:          prompts.DefaultMode,
		level:         prompts.DefaultLevel,
		debounceDelay: defaultDebounceDelay,
		speechToText:  &speechToTextFacade{},
		textToSpeech:  &textToSpeechFacade{},
		output:        &audioOutputFacade{},
		emitter:       newEventEmitter(),
		queue:         newPlaybackQueue(),
		closed:        make(chan struct{}),
		workerDone:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.debouncer = newUtteranceDebouncer(a.debounceDelay, a.beginTurn)
	a.fillers = newFillerCache(a.renderSpeech)

	return a
}

// Start wires up transcription and capture and launches the playback worker.
// The agent shuts down when ctx ends or [Agent.Close] is called.
func (a *Agent) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return fmt.Errorf("agent already started")
	}

	a.ctxMu.Lock()
	a.baseCtx, a.baseCancel = context.WithCancel(context.WithoutCancel(ctx))
	workerCtx := a.baseCtx
	a.ctxMu.Unlock()

	go func() {
		defer close(a.workerDone)
		a.playbackWorker(workerCtx)
	}()
	go func() {
		select {
		case <-ctx.Done():
			a.Close()
		case <-a.closed:
		}
	}()

	err := a.speechToText.Start(workerCtx, a.inputEncodingInfo(), speechToTextCallbacks{
		onSpeechStarted: func() {
			a.emitter.Emit(events.NewUserSpeechStarted())
			// Barge-in: the user talking over playback interrupts it. Speech
			// during silence is just the next utterance starting.
			if a.speaking.Load() || a.queue.Len() > 0 {
				a.Interrupt()
			}
		},
		onSpeechEnded: func() {
			a.emitter.Emit(events.NewUserSpeechEnded())
		},
		onInterimTranscription: func(transcript string) {
			a.emitter.Emit(events.NewUserTranscriptInterimUpdated(transcript))
		},
		onTranscription: a.handleFinalTranscript,
	})
	if err != nil {
		return fmt.Errorf("failed to start speech-to-text: %w", err)
	}

	if a.input != nil {
		go func() {
			if err := a.input.Stream(workerCtx, func(chunk []byte) {
				if sendErr := a.speechToText.SendAudio(chunk); sendErr != nil {
					logger.ErrorContext(workerCtx, "Failed to forward captured audio to transcription", "error", sendErr)
				}
			}); err != nil {
				logger.ErrorContext(workerCtx, "Audio capture stream ended with an error", "error", err)
			}
		}()
	}

	return nil
}

// OnTranscript feeds an externally produced transcript into the agent, for
// transports that run transcription elsewhere.
func (a *Agent) OnTranscript(transcript string, isFinal bool) {
	if isFinal {
		a.handleFinalTranscript(transcript)
		return
	}
	a.emitter.Emit(events.NewUserTranscriptInterimUpdated(transcript))
}

func (a *Agent) handleFinalTranscript(transcript string) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return
	}

	a.emitter.Emit(events.NewUserTranscriptFinal(transcript))

	// New final speech always supersedes whatever the agent was saying or
	// preparing to say.
	a.Interrupt()
	a.debouncer.Add(transcript)
}

// Interrupt aborts the in-flight response cycle and silences playback: raise
// the flag first so the playing item stops sending audio, then cancel
// generation, discard queued phrases, and flush audio already buffered in the
// sink.
func (a *Agent) Interrupt() {
	a.interrupt.Set()
	a.cancelActiveTurn()
	a.queue.Drain()
	a.output.Clear()
}

// SendPrompt bypasses audio capture and responds to typed text immediately,
// without debouncing.
func (a *Agent) SendPrompt(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	a.Interrupt()
	a.beginTurn(text)
}

// Greet speaks the mode's opening line. The greeting is not part of the
// model-visible history.
func (a *Agent) Greet() {
	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()

	greeting := prompts.Greeting(mode)
	a.emitter.Emit(events.NewAssistantResponseFinal(greeting))
	a.queue.Enqueue(newPlaybackItem(a.baseContext(), greeting))
}

// WarmUpFillers pre-renders the filler phrases. Call it once after Start;
// until it completes, response cycles simply play without a filler.
func (a *Agent) WarmUpFillers(ctx context.Context) {
	a.fillers.WarmUp(ctx)
}

// renderSpeech synthesizes text to completion and returns the rendered audio.
func (a *Agent) renderSpeech(ctx context.Context, text string) ([]byte, error) {
	var rendered bytes.Buffer
	for chunk, err := range a.textToSpeech.Synthesize(ctx, text).Chunks(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to render speech: %w", err)
		}
		rendered.Write(chunk)
	}
	return rendered.Bytes(), nil
}

// Reset interrupts everything in flight and clears the conversation history.
// It is safe to call repeatedly.
func (a *Agent) Reset() {
	a.Interrupt()
	a.debouncer.Stop()
	a.interrupt.Clear()

	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
}

// Close shuts the agent down: cancels the active cycle, stops the debouncer,
// closes the playback queue, and releases audio and transcription clients.
// Safe to call more than once.
func (a *Agent) Close() {
	a.closeOnce.Do(func() {
		close(a.closed)
		a.cancelActiveTurn()
		a.debouncer.Stop()
		a.queue.Close()

		if a.input != nil {
			a.input.Close()
		}
		if err := a.speechToText.Close(context.Background()); err != nil {
			logger.Error("Failed to close speech-to-text client", "error", err)
		}

		a.ctxMu.Lock()
		if a.baseCancel != nil {
			a.baseCancel()
		}
		a.ctxMu.Unlock()

		if a.started.Load() {
			<-a.workerDone
		}
	})
}

// SetAudioOutput attaches or replaces the playback sink. Transports that
// connect after the agent starts use this to route audio to themselves.
func (a *Agent) SetAudioOutput(client AudioOutput) {
	a.output.set(client)
}

// SendAudio forwards captured audio to transcription, for transports that
// deliver audio instead of transcripts.
func (a *Agent) SendAudio(chunk []byte) error {
	return a.speechToText.SendAudio(chunk)
}

// Subscribe attaches an event subscriber and returns its detach function.
func (a *Agent) Subscribe(subscriber func(events.Event)) (unsubscribe func()) {
	return a.emitter.Subscribe(subscriber)
}

// IsSpeaking reports whether a queued item is currently being played.
func (a *Agent) IsSpeaking() bool {
	return a.speaking.Load()
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []llms.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]llms.Message, len(a.history))
	copy(history, a.history)
	return history
}

// SetMode changes the conversation mode. Takes effect on the next response
// cycle; the current one keeps the prompt it started with.
func (a *Agent) SetMode(mode prompts.Mode) {
	a.mu.Lock()
	a.mode = mode
	a.mu.Unlock()
}

// SetLevel changes the learner level for subsequent response cycles.
func (a *Agent) SetLevel(level prompts.Level) {
	a.mu.Lock()
	a.level = level
	a.mu.Unlock()
}

// SetScenario changes the roleplay scenario for subsequent response cycles.
func (a *Agent) SetScenario(scenario string) {
	a.mu.Lock()
	a.scenario = scenario
	a.mu.Unlock()
}

func (a *Agent) Mode() prompts.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *Agent) Level() prompts.Level {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

func (a *Agent) Scenario() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scenario
}

func (a *Agent) baseContext() context.Context {
	a.ctxMu.Lock()
	defer a.ctxMu.Unlock()

	if a.baseCtx != nil {
		return a.baseCtx
	}
	return context.Background()
}

func (a *Agent) inputEncodingInfo() audio.EncodingInfo {
	if a.input != nil {
		return a.input.EncodingInfo()
	}
	return a.output.EncodingInfo()
}
