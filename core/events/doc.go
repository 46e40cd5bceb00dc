// Package events defines the typed event contract emitted by the agent to
// its subscribers.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - assistant_speech.*
//   - assistant_playback.*
//   - turn_state.*
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in stream order.
//   - Updated: mutable point-in-time snapshot that can change over time.
//   - Final: terminal immutable text for the current stream/turn phase.
//
// user_input events
//
//   - UserSpeechStarted (user_input.speech_started): speech activity began.
//   - UserSpeechEnded (user_input.speech_ended): speech activity ended.
//   - UserTranscriptInterimUpdated (user_input.transcript_interim_updated):
//     mutable interim transcript snapshot.
//   - UserTranscriptFinal (user_input.transcript_final): finalized transcript
//     segment handed to the utterance debouncer.
//
// assistant_response events
//
//   - AssistantResponseSegment (assistant_response.segment): a speakable
//     phrase extracted from the streaming reply.
//   - AssistantResponseFinal (assistant_response.final): the fully assembled
//     reply text.
//
// assistant_speech events
//
//   - AssistantFillerPlayed (assistant_speech.filler_played): a cached filler
//     phrase was attached to the upcoming reply.
//
// assistant_playback events
//
//   - AssistantPlaybackStarted (assistant_playback.started): a queued item
//     began playing.
//   - AssistantPlaybackEnded (assistant_playback.ended): a queued item
//     finished playing or was cut off.
//
// turn_state events
//
//   - TurnStarted (turn_state.started): a response cycle began for an
//     utterance.
//   - TurnCompleted (turn_state.completed): the reply was fully generated.
//   - TurnFailed (turn_state.failed): generation failed and the fallback was
//     spoken instead.
//   - TurnCancelled (turn_state.cancelled): the cycle was interrupted.
package events
