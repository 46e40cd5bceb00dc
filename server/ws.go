package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/events"
	"github.com/liralabs/lira-core/core/prompts"
	"github.com/liralabs/lira-core/sessions"
)

// closeCodeSessionNotFound is the application close code sent when the
// websocket targets an unknown session.
const closeCodeSessionNotFound = 4004

// handleSessionWS relays one live conversation: binary frames in are caller
// audio, text frames in are JSON control messages, and the socket carries
// agent events as JSON plus synthesized audio as binary frames back out.
func (s *Server) handleSessionWS(conn *websocket.Conn) {
	defer conn.Close()

	session, ok := s.registry.Get(conn.Params("id"))
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(closeCodeSessionNotFound, "session not found"),
			time.Now().Add(time.Second))
		return
	}

	socket := &wsConn{conn: conn}
	session.Agent.SetAudioOutput(&wsAudioOutput{socket: socket})

	unsubscribe := session.Agent.Subscribe(func(event events.Event) {
		payload, ok := eventPayload(event)
		if !ok {
			return
		}
		if err := socket.writeJSON(payload); err != nil {
			logger.Error("Failed to forward event over websocket", "error", err)
		}
	})
	defer unsubscribe()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if err := session.Agent.SendAudio(msg); err != nil {
				logger.Error("Failed to forward caller audio", "error", err)
			}
		case websocket.TextMessage:
			s.handleControlMessage(session, socket, msg)
		}
	}
}

type controlMessage struct {
	Type     string `json:"type"`
	Mode     string `json:"mode,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Text     string `json:"text,omitempty"`
	IsFinal  bool   `json:"is_final,omitempty"`
}

func (s *Server) handleControlMessage(session *sessions.Session, socket *wsConn, msg []byte) {
	control := controlMessage{}
	if err := json.Unmarshal(msg, &control); err != nil {
		_ = socket.writeJSON(map[string]any{"type": "error", "error": "invalid control message"})
		return
	}

	switch control.Type {
	case "set_mode":
		mode, ok := prompts.ParseMode(control.Mode)
		if !ok {
			_ = socket.writeJSON(map[string]any{"type": "error", "error": "unknown mode"})
			return
		}
		_ = s.registry.SetMode(session.ID, mode)
		if control.Scenario != "" {
			_ = s.registry.SetScenario(session.ID, control.Scenario)
		}
	case "transcript":
		session.Agent.OnTranscript(control.Text, control.IsFinal)
	case "interrupt":
		session.Agent.Interrupt()
	case "reset":
		session.Agent.Reset()
	default:
		_ = socket.writeJSON(map[string]any{"type": "error", "error": "unknown control type"})
	}
}

// eventPayload maps an agent event to its wire representation. Events with
// no client-facing meaning report ok=false.
func eventPayload(event events.Event) (map[string]any, bool) {
	switch e := event.(type) {
	case events.UserSpeechStarted:
		return map[string]any{"type": "speech_started"}, true
	case events.UserSpeechEnded:
		return map[string]any{"type": "speech_ended"}, true
	case events.UserTranscriptInterimUpdated:
		return map[string]any{"type": "transcript_interim", "text": e.Transcript}, true
	case events.UserTranscriptFinal:
		return map[string]any{"type": "transcript_final", "text": e.Transcript}, true
	case events.AssistantResponseSegment:
		return map[string]any{"type": "response_segment", "text": e.Segment}, true
	case events.AssistantResponseFinal:
		return map[string]any{"type": "response_final", "text": e.Response}, true
	case events.AssistantFillerPlayed:
		return map[string]any{"type": "filler_played", "text": e.Phrase}, true
	case events.AssistantPlaybackStarted:
		return map[string]any{"type": "playback_started", "text": e.Transcript}, true
	case events.AssistantPlaybackEnded:
		return map[string]any{"type": "playback_ended", "text": e.Transcript}, true
	case events.TurnStarted:
		return map[string]any{"type": "turn_started", "utterance": e.Utterance}, true
	case events.TurnCompleted:
		return map[string]any{"type": "turn_completed", "utterance": e.Utterance, "response": e.Response}, true
	case events.TurnFailed:
		return map[string]any{"type": "turn_failed", "reason": e.Reason}, true
	case events.TurnCancelled:
		return map[string]any{"type": "turn_cancelled"}, true
	}
	return nil, false
}

// wsConn serializes writes; agent events and audio arrive from different
// goroutines.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *wsConn) writeBinary(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.BinaryMessage, payload)
}

// wsAudioOutput is the agent playback sink for a websocket transport:
// synthesized audio goes out as binary frames, and a clear instruction tells
// the remote client to drop its local buffer.
type wsAudioOutput struct {
	socket *wsConn
}

func (o *wsAudioOutput) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (o *wsAudioOutput) SendAudio(chunk []byte) error {
	return o.socket.writeBinary(chunk)
}

func (o *wsAudioOutput) ClearBuffer() {
	_ = o.socket.writeJSON(map[string]any{"type": "clear_playback"})
}
