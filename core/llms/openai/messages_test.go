package openai

import (
	"testing"

	"github.com/liralabs/lira-core/core/llms"
)

func TestToMessagesKeepsInstructionsAndHistoryOrder(t *testing.T) {
	history := []llms.Message{
		{Role: llms.MessageRoleUser, Content: "first prompt"},
		{Role: llms.MessageRoleAssistant, Content: "first answer"},
		{Role: llms.MessageRoleUser, Content: "second prompt"},
	}

	messages := toMessages("be brief", history)

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}

	if messages[0].Role != messageRoleSystem || messages[0].Content != "be brief" {
		t.Fatalf("unexpected system message: %+v", messages[0])
	}

	if messages[1].Role != messageRoleUser || messages[1].Content != "first prompt" {
		t.Fatalf("unexpected first message: %+v", messages[1])
	}

	if messages[2].Role != messageRoleAssistant || messages[2].Content != "first answer" {
		t.Fatalf("unexpected assistant message: %+v", messages[2])
	}

	if messages[3].Role != messageRoleUser || messages[3].Content != "second prompt" {
		t.Fatalf("history truncated before second prompt: %+v", messages[3])
	}
}

func TestToMessagesSkipsSystemMessageWithoutInstructions(t *testing.T) {
	messages := toMessages("", []llms.Message{
		{Role: llms.MessageRoleUser, Content: "hello"},
	})

	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	if messages[0].Role != messageRoleUser {
		t.Fatalf("unexpected role: %v", messages[0].Role)
	}
}

func TestToMessagesDropsEmptyHistoryEntries(t *testing.T) {
	messages := toMessages("", []llms.Message{
		{Role: llms.MessageRoleUser, Content: "hello"},
		{Role: llms.MessageRoleAssistant, Content: ""},
		{Role: llms.MessageRoleUser, Content: "are you there?"},
	})

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	if messages[1].Content != "are you there?" {
		t.Fatalf("unexpected second message: %+v", messages[1])
	}
}
