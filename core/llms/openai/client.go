package openai

import "strings"

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7

	endMessage  = "[DONE]"
	chunkPrefix = "data:"
)

// Client prompts an OpenAI-compatible chat completions API.
type Client struct {
	apiKey string

	model       string
	baseURL     string
	temperature float64
}

// New creates a client with the default model and endpoint. Any
// OpenAI-compatible endpoint can be targeted through [WithBaseURL].
func New(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey:      apiKey,
		model:       defaultModel,
		baseURL:     defaultBaseURL,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type ClientOption func(*Client)

// WithModel overrides the default model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different OpenAI-compatible API.
// The URL is expected up to but excluding the /chat/completions segment.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		c.temperature = temperature
	}
}

func (c *Client) completionsURL() string {
	return c.baseURL + "/chat/completions"
}
