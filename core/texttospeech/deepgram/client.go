// Package deepgram synthesizes speech through Deepgram's Aura HTTP API.
package deepgram

import (
	"fmt"
	"slices"
)

// Client synthesizes text with a fixed Aura voice. It is cheap and holds no
// connection; every synthesis is an independent HTTP request.
type Client struct {
	apiKey string
	voice  deepgramVoice
}

// New creates a synthesis client. The voice defaults to Asteria.
func New(apiKey string, opts ...ClientOption) (*Client, error) {
	client := &Client{apiKey: apiKey, voice: defaultVoice}
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}
	return client, nil
}

type ClientOption func(*Client) error

// WithVoice overrides the default Aura voice.
func WithVoice(voice deepgramVoice) ClientOption {
	return func(c *Client) error {
		if !slices.Contains(GetAvailableVoices(), voice) {
			return fmt.Errorf("invalid voice %q", voice)
		}
		c.voice = voice
		return nil
	}
}
