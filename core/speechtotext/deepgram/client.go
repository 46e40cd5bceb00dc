// Package deepgram transcribes streamed audio through Deepgram's live
// listen websocket API.
package deepgram

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TranscriptionClient holds one live transcription connection. Construct it
// with [NewTranscriptionClient], then call [TranscriptionClient.Transcribe]
// to open the websocket and start receiving results.
type TranscriptionClient struct {
	apiKey string

	conn   *websocket.Conn
	connMu sync.Mutex

	// lastMsgTs is the time real audio was last forwarded; the silence
	// generator keys off it to keep the connection fed between utterances.
	lastMsgTs time.Time

	accumulatedTranscript string
	unendedSegment        bool
}

func NewTranscriptionClient(apiKey string) *TranscriptionClient {
	return &TranscriptionClient{apiKey: apiKey, lastMsgTs: time.Now()}
}

// Close flushes and closes the live connection. The read loop winds down on
// the server's close message.
func (s *TranscriptionClient) Close(ctx context.Context) error {
	if err := s.StopStream(); err != nil {
		return err
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			return err
		}
		s.conn = nil
	}
	return nil
}
