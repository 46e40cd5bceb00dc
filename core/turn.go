package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/liralabs/lira-core/core/events"
	"github.com/liralabs/lira-core/core/llms"
	"github.com/liralabs/lira-core/core/prompts"
	"github.com/liralabs/lira-core/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// turnHandle tracks one in-flight response cycle so a newer one can cancel it
// and wait for it to wind down.
type turnHandle struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// beginTurn supersedes any in-flight response cycle and starts generating a
// reply for the utterance on its own goroutine.
func (a *Agent) beginTurn(utterance string) {
	a.turnMu.Lock()
	if a.activeTurn != nil {
		a.activeTurn.cancel()
	}

	turn := &turnHandle{done: make(chan struct{})}
	turn.ctx, turn.cancel = context.WithCancel(a.baseContext())
	a.activeTurn = turn
	a.turnMu.Unlock()

	go func() {
		defer close(turn.done)
		a.generateAndSpeak(turn.ctx, utterance)
	}()
}

func (a *Agent) cancelActiveTurn() {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	if a.activeTurn != nil {
		a.activeTurn.cancel()
	}
}

// generateAndSpeak runs one full response cycle: stream the reply, carve it
// into phrases, and queue each phrase for playback as soon as it completes.
func (a *Agent) generateAndSpeak(ctx context.Context, utterance string) {
	ctx, span := tracer.Start(ctx, "generate and speak reply")
	defer span.End()
	span.SetAttributes(attribute.String("turn.utterance", utterance))

	// The cycle that starts is the one the user asked for; earlier abort
	// signals no longer apply.
	a.interrupt.Clear()
	a.emitter.Emit(events.NewTurnStarted(utterance))

	// The utterance joins the history as soon as the cycle starts; the user
	// said it whether or not the reply survives.
	a.mu.Lock()
	history := make([]llms.Message, len(a.history))
	copy(history, a.history)
	a.history = append(a.history, llms.Message{Role: llms.MessageRoleUser, Content: utterance})
	mode, level, scenario := a.mode, a.level, a.scenario
	a.mu.Unlock()

	// The filler starts right away, concurrent with the request, so something
	// audible reaches the sink while the first tokens are still generating.
	fillerDone := a.startFillerPlayback(ctx)

	// A failed cycle speaks the fallback apology in place of the reply and is
	// not recorded in history, so the user's next attempt starts from the same
	// conversational state.
	fail := func(err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.emitter.Emit(events.NewTurnFailed(err.Error()))

		item := newPlaybackItem(ctx, prompts.FallbackResponse)
		item.gate = fillerDone
		a.queue.Enqueue(item)
		a.emitter.Emit(events.NewAssistantResponseFinal(prompts.FallbackResponse))
	}

	if a.llm == nil {
		fail(fmt.Errorf("no streaming LLM configured"))
		return
	}

	stream := a.llm.PromptWithStream(ctx, utils.Ptr(utterance),
		llms.WithSystemPrompt(prompts.SystemPrompt(mode, level, scenario)),
		llms.WithMessages(history...),
	)

	var (
		fullResponse strings.Builder
		phraseBuffer string
		firstItem    = true
	)

	enqueue := func(phrase string) {
		item := newPlaybackItem(ctx, phrase)
		if firstItem {
			item.gate = fillerDone
			firstItem = false
		}
		a.queue.Enqueue(item)
		a.emitter.Emit(events.NewAssistantResponseSegment(phrase))
	}

	for chunk, err := range stream.Chunks(ctx) {
		if err != nil {
			fail(fmt.Errorf("failed to stream reply: %w", err))
			return
		}
		if ctx.Err() != nil || a.interrupt.IsSet() {
			span.AddEvent("response cycle interrupted")
			a.emitter.Emit(events.NewTurnCancelled())
			return
		}

		contentChunk, ok := chunk.(llms.StreamContentChunk)
		if !ok || contentChunk.Content() == "" {
			continue
		}

		fullResponse.WriteString(contentChunk.Content())
		phraseBuffer += contentChunk.Content()

		var phrases []string
		phrases, phraseBuffer = extractPhrases(phraseBuffer)
		for _, phrase := range phrases {
			enqueue(phrase)
		}
	}

	if ctx.Err() != nil || a.interrupt.IsSet() {
		a.emitter.Emit(events.NewTurnCancelled())
		return
	}

	if remainder := strings.TrimSpace(phraseBuffer); remainder != "" {
		enqueue(remainder)
	}

	response := strings.TrimSpace(fullResponse.String())
	if response == "" {
		fail(fmt.Errorf("model returned an empty reply"))
		return
	}

	a.mu.Lock()
	a.history = append(a.history, llms.Message{Role: llms.MessageRoleAssistant, Content: response})
	a.mu.Unlock()

	a.emitter.Emit(events.NewAssistantResponseFinal(response))
	a.emitter.Emit(events.NewTurnCompleted(utterance, response))
}

// startFillerPlayback plays a cached filler phrase straight to the output
// sink, bypassing the queue so a drain cannot strand it there. The returned
// channel closes when the filler finishes (immediately when the cache has
// nothing); the first queued item of the cycle gates on it so reply audio
// never interleaves with the filler.
func (a *Agent) startFillerPlayback(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	phrase, rendered, ok := a.fillers.Random()
	if !ok {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		if ctx.Err() != nil || a.interrupt.IsSet() {
			return
		}

		a.speaking.Store(true)
		defer a.speaking.Store(false)

		a.emitter.Emit(events.NewAssistantFillerPlayed(phrase))
		a.playRendered(ctx, rendered)
	}()

	return done
}
