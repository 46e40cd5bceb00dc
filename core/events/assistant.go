package events

const (
	// KindAssistantResponseSegment identifies a speakable phrase extracted
	// from the streaming reply.
	KindAssistantResponseSegment Kind = "assistant_response.segment"
	// KindAssistantResponseFinal identifies the fully assembled reply text.
	KindAssistantResponseFinal Kind = "assistant_response.final"

	// KindAssistantFillerPlayed identifies a cached filler phrase attached to
	// the upcoming reply.
	KindAssistantFillerPlayed Kind = "assistant_speech.filler_played"

	// KindAssistantPlaybackStarted identifies a queued item starting to play.
	KindAssistantPlaybackStarted Kind = "assistant_playback.started"
	// KindAssistantPlaybackEnded identifies a queued item finishing or being
	// cut off.
	KindAssistantPlaybackEnded Kind = "assistant_playback.ended"
)

// AssistantResponseSegment carries one extracted phrase, in stream order.
type AssistantResponseSegment struct {
	Base
	Segment string
}

// NewAssistantResponseSegment creates a response phrase event.
func NewAssistantResponseSegment(segment string) AssistantResponseSegment {
	return AssistantResponseSegment{Base: NewBase(KindAssistantResponseSegment), Segment: segment}
}

// AssistantResponseFinal carries the complete reply text.
type AssistantResponseFinal struct {
	Base
	Response string
}

// NewAssistantResponseFinal creates a final response event.
func NewAssistantResponseFinal(response string) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Response: response}
}

// AssistantFillerPlayed carries the filler phrase chosen for the reply.
type AssistantFillerPlayed struct {
	Base
	Phrase string
}

// NewAssistantFillerPlayed creates a filler played event.
func NewAssistantFillerPlayed(phrase string) AssistantFillerPlayed {
	return AssistantFillerPlayed{Base: NewBase(KindAssistantFillerPlayed), Phrase: phrase}
}

// AssistantPlaybackStarted marks a queued item starting to play.
type AssistantPlaybackStarted struct {
	Base
	Transcript string
}

// NewAssistantPlaybackStarted creates a playback started event.
func NewAssistantPlaybackStarted(transcript string) AssistantPlaybackStarted {
	return AssistantPlaybackStarted{Base: NewBase(KindAssistantPlaybackStarted), Transcript: transcript}
}

// AssistantPlaybackEnded marks a queued item finishing playback. Interrupted
// items emit this as well so subscribers can settle their playing state.
type AssistantPlaybackEnded struct {
	Base
	Transcript string
}

// NewAssistantPlaybackEnded creates a playback ended event.
func NewAssistantPlaybackEnded(transcript string) AssistantPlaybackEnded {
	return AssistantPlaybackEnded{Base: NewBase(KindAssistantPlaybackEnded), Transcript: transcript}
}
