package audio

import "time"

const (
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: encodingFormat(DefaultFormat)}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case encodingFormat("alaw"):
		return 0x55
	case encodingFormat("mulaw"):
		return 0xFF
	case encodingFormat("linear16"):
		return 0
	}

	return 0
}

// Silence returns a buffer of silence of roughly the requested duration in
// this encoding. Durations that do not land on a whole sample are truncated.
func Silence(duration time.Duration, info EncodingInfo) []byte {
	samples := int(duration.Seconds() * float64(info.SampleRate))
	buffer := make([]byte, samples*info.Format.ByteSize())
	if value := info.SilenceValue(); value != 0 {
		for i := range buffer {
			buffer[i] = value
		}
	}
	return buffer
}

// Duration reports how long the passed audio plays for in this encoding.
func Duration(audio []byte, info EncodingInfo) time.Duration {
	if info.IsZero() {
		return 0
	}
	return time.Duration(float64(len(audio)) / float64(info.SampleRate) / float64(info.Format.ByteSize()) * float64(time.Second))
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case encodingFormat("mulaw"), encodingFormat("alaw"):
		return 1
	case encodingFormat("linear16"):
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
