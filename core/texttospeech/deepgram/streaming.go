package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/liralabs/lira-core/core/audio"
	"github.com/liralabs/lira-core/core/texttospeech"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	speakURL = "https://api.deepgram.com/v1/speak"

	// chunkSize is the read size used when relaying response audio, small
	// enough that playback can start before synthesis finishes.
	chunkSize = 4096
)

// Synthesize prepares a synthesis request for the text. The request is not
// sent until the returned stream is iterated.
func (c *Client) Synthesize(_ context.Context, text string, opts ...texttospeech.SynthesizeOption) texttospeech.SpeechStream {
	options := texttospeech.SynthesizeOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	return &speechStream{
		apiKey:       c.apiKey,
		voice:        c.voice,
		text:         text,
		encodingInfo: options.EncodingInfo,
	}
}

type speechStream struct {
	apiKey string

	voice        deepgramVoice
	text         string
	encodingInfo audio.EncodingInfo
}

func (s *speechStream) Chunks(ctx context.Context) func(func([]byte, error) bool) {
	return func(yield func([]byte, error) bool) {
		ctx, span := tracer.Start(ctx, "synthesize speech")
		defer span.End()
		span.SetAttributes(
			attribute.String("request.voice", string(s.voice)),
			attribute.Int("request.text_length", len(s.text)),
		)

		requestBodyBytes, err := json.Marshal(map[string]string{"text": s.text})
		if err != nil {
			err = fmt.Errorf("error marshalling JSON: %w", err)
			span.RecordError(err)
			yield(nil, err)
			return
		}

		urlValues := url.Values{}
		urlValues.Set("model", string(s.voice))
		urlValues.Set("encoding", s.encodingInfo.Format.Name())
		urlValues.Set("sample_rate", strconv.Itoa(s.encodingInfo.SampleRate))
		urlValues.Set("container", "none")

		req, err := http.NewRequestWithContext(ctx, "POST", speakURL+"?"+urlValues.Encode(), bytes.NewBuffer(requestBodyBytes))
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			span.RecordError(err)
			yield(nil, err)
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Token "+s.apiKey)

		client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)}
		resp, err := client.Do(req)
		if err != nil {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			if errorBody, err := io.ReadAll(resp.Body); err == nil {
				span.SetAttributes(attribute.String("response.error", string(errorBody)))
			}

			err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
			span.RecordError(err)
			yield(nil, err)
			return
		}

		buffer := make([]byte, chunkSize)
		bytesStreamed := 0
		for {
			n, err := resp.Body.Read(buffer)
			if n > 0 {
				bytesStreamed += n
				chunk := make([]byte, n)
				copy(chunk, buffer[:n])
				if !yield(chunk, nil) {
					return
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				err = fmt.Errorf("error reading streamed audio: %w", err)
				span.RecordError(err)
				yield(nil, err)
				return
			}
		}

		span.SetAttributes(attribute.Int("response.bytes_streamed", bytesStreamed))
	}
}
