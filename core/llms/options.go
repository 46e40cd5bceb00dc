package llms

// PromptOptions is the option set shared by all prompting methods.
type PromptOptions struct {
	Instructions string
	Messages     []Message
}

// PromptOption is a function that modifies the prompt options.
type PromptOption func(*PromptOptions)

// WithSystemPrompt sets the system prompt.
// Repeating this option will overwrite the previous system prompt.
func WithSystemPrompt(prompt string) PromptOption {
	return func(opts *PromptOptions) {
		opts.Instructions = prompt
	}
}

// WithMessages adds passed messages to the prompt.
// Repeating this option will sequentially add more messages.
func WithMessages(messages ...Message) PromptOption {
	return func(opts *PromptOptions) {
		opts.Messages = append(opts.Messages, messages...)
	}
}
