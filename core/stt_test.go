package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/speechtotext"
)

func TestSpeechToTextFacadeIsNoopWhenUnconfigured(t *testing.T) {
	facade := &speechToTextFacade{}

	if err := facade.Start(context.Background(), audio.GetDefaultEncodingInfo(), speechToTextCallbacks{}); err != nil {
		t.Fatalf("expected unconfigured start to succeed, got %v", err)
	}
	if err := facade.SendAudio([]byte{1, 2, 3}); err != nil {
		t.Fatalf("expected unconfigured send to succeed, got %v", err)
	}
	if err := facade.Close(context.Background()); err != nil {
		t.Fatalf("expected unconfigured close to succeed, got %v", err)
	}
}

func TestSpeechToTextFacadeOnlyForwardsConfiguredCallbacks(t *testing.T) {
	client := &optionCountingSTTClient{}
	facade := &speechToTextFacade{}
	facade.set(client)

	err := facade.Start(context.Background(), audio.GetDefaultEncodingInfo(), speechToTextCallbacks{
		onTranscription: func(string) {},
	})
	if err != nil {
		t.Fatalf("failed to start facade: %v", err)
	}

	// Encoding plus the single configured callback.
	if client.optionCount != 2 {
		t.Fatalf("expected 2 options forwarded, got %d", client.optionCount)
	}
}

func TestSpeechToTextFacadeClosesContextAwareClients(t *testing.T) {
	client := &closableSTTClient{}
	facade := &speechToTextFacade{}
	facade.set(client)

	if err := facade.Close(context.Background()); err != nil {
		t.Fatalf("failed to close facade: %v", err)
	}
	if !client.closed {
		t.Fatalf("expected the client's Close(ctx) to be called")
	}
}

func TestSpeechToTextFacadeWrapsCloseErrors(t *testing.T) {
	facade := &speechToTextFacade{}
	facade.set(&failingCloseSTTClient{})

	if err := facade.Close(context.Background()); err == nil {
		t.Fatalf("expected the close error surfaced")
	}
}

type optionCountingSTTClient struct {
	optionCount int
}

func (c *optionCountingSTTClient) Transcribe(_ context.Context, opts ...speechtotext.TranscriptionOption) error {
	c.optionCount = len(opts)
	return nil
}

func (c *optionCountingSTTClient) SendAudio([]byte) error {
	return nil
}

type closableSTTClient struct {
	optionCountingSTTClient
	closed bool
}

func (c *closableSTTClient) Close(context.Context) error {
	c.closed = true
	return nil
}

type failingCloseSTTClient struct {
	optionCountingSTTClient
}

func (c *failingCloseSTTClient) Close() error {
	return fmt.Errorf("connection already gone")
}
