package agent

import (
	"context"
	"testing"

	"github.com/liralabs/lira-core/core/audio"
)

func TestAudioOutputFacadeDropsAudioWhenUnconfigured(t *testing.T) {
	facade := &audioOutputFacade{}

	if err := facade.SendAudio([]byte{1, 2, 3}); err != nil {
		t.Fatalf("expected unconfigured send to succeed, got %v", err)
	}
	facade.Clear()

	if got := facade.EncodingInfo(); got != audio.GetDefaultEncodingInfo() {
		t.Fatalf("expected the default encoding when unconfigured, got %+v", got)
	}
}

func TestAudioOutputFacadeForwardsToTheConfiguredSink(t *testing.T) {
	sink := &recordingAudioOutput{}
	facade := &audioOutputFacade{}
	facade.set(sink)

	if err := facade.SendAudio([]byte("hello")); err != nil {
		t.Fatalf("failed to forward audio: %v", err)
	}
	facade.Clear()

	if chunks := sink.textChunks(); len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("expected the chunk forwarded, got %v", chunks)
	}
	if sink.clearCalls() != 1 {
		t.Fatalf("expected one clear forwarded, got %d", sink.clearCalls())
	}
}

func TestTextToSpeechFacadeYieldsNothingWhenUnconfigured(t *testing.T) {
	facade := &textToSpeechFacade{}

	for range facade.Synthesize(context.Background(), "anything").Chunks(context.Background()) {
		t.Fatalf("expected no chunks from an unconfigured synthesis facade")
	}
}
