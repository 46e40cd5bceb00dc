package audio

import (
	"testing"
	"time"
)

func TestSilenceLengthMatchesDuration(t *testing.T) {
	pad := Silence(100*time.Millisecond, GetDefaultEncodingInfo())

	if len(pad) != 3200 {
		t.Fatalf("expected 3200 bytes of silence for 100ms at 16kHz linear16, got %d", len(pad))
	}

	for i, b := range pad {
		if b != 0 {
			t.Fatalf("expected linear16 silence to be zeroed, got %#x at %d", b, i)
		}
	}
}

func TestSilenceUsesFormatSilenceValue(t *testing.T) {
	info := EncodingInfo{SampleRate: 8000, Format: EncodingMulaw}

	pad := Silence(time.Second, info)

	if len(pad) != 8000 {
		t.Fatalf("expected 8000 bytes of mulaw silence, got %d", len(pad))
	}
	if pad[0] != 0xFF {
		t.Fatalf("expected mulaw silence value 0xFF, got %#x", pad[0])
	}
}

func TestDurationRoundTripsSilence(t *testing.T) {
	info := GetDefaultEncodingInfo()

	if got := Duration(Silence(250*time.Millisecond, info), info); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
}
