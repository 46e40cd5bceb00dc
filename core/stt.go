package agent

import (
	"context"
	"fmt"

	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/speechtotext"
)

type speechToTextCallbacks struct {
	onSpeechStarted        func()
	onSpeechEnded          func()
	onInterimTranscription func(transcript string)
	onTranscription        func(transcript string)
}

// speechToTextFacade guards the optional transcription client so an agent
// without one (text-only sessions, tests) still works.
type speechToTextFacade struct {
	client SpeechToText
}

func (s *speechToTextFacade) set(client SpeechToText) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToTextFacade) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *speechToTextFacade) Start(ctx context.Context, encodingInfo audio.EncodingInfo, callbacks speechToTextCallbacks) error {
	if !s.isConfigured() {
		return nil
	}

	sttOptions := []speechtotext.TranscriptionOption{
		speechtotext.WithEncodingInfo(encodingInfo),
	}
	if callbacks.onSpeechStarted != nil {
		sttOptions = append(sttOptions, speechtotext.WithSpeechStartedCallback(callbacks.onSpeechStarted))
	}
	if callbacks.onSpeechEnded != nil {
		sttOptions = append(sttOptions, speechtotext.WithSpeechEndedCallback(callbacks.onSpeechEnded))
	}
	if callbacks.onInterimTranscription != nil {
		sttOptions = append(sttOptions, speechtotext.WithInterimTranscriptionCallback(callbacks.onInterimTranscription))
	}
	if callbacks.onTranscription != nil {
		sttOptions = append(sttOptions, speechtotext.WithTranscriptionCallback(callbacks.onTranscription))
	}

	if err := s.client.Transcribe(ctx, sttOptions...); err != nil {
		return fmt.Errorf("failed to start transcribing: %w", err)
	}

	return nil
}

func (s *speechToTextFacade) SendAudio(audio []byte) error {
	if !s.isConfigured() {
		return nil
	}

	return s.client.SendAudio(audio)
}

func (s *speechToTextFacade) Close(ctx context.Context) error {
	if !s.isConfigured() {
		return nil
	}

	switch c := s.client.(type) {
	case interface{ Close(context.Context) error }:
		if err := c.Close(ctx); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close(context.Context) }:
		c.Close(ctx)
	case interface{ Close() error }:
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close speech-to-text client: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}

	return nil
}
