package openai

import (
	"github.com/liralabs/lira-core/core/llms"
)

type message struct {
	Role    messageRole `json:"role"`
	Content string      `json:"content"`
}

type messageRole string

const (
	messageRoleSystem    messageRole = "system"
	messageRoleUser      messageRole = "user"
	messageRoleAssistant messageRole = "assistant"
)

func toMessages(instructions string, history []llms.Message) []message {
	messages := []message{}
	if instructions != "" {
		messages = append(messages, message{
			Role:    messageRoleSystem,
			Content: instructions,
		})
	}
	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		messages = append(messages, message{
			Role:    toMessageRole(msg.Role),
			Content: msg.Content,
		})
	}
	return messages
}

func toMessageRole(role llms.MessageRole) messageRole {
	switch role {
	case llms.MessageRoleSystem:
		return messageRoleSystem
	case llms.MessageRoleAssistant:
		return messageRoleAssistant
	default:
		return messageRoleUser
	}
}
