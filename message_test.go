package agentlab

import (
	"testing"

	"github.com/openai/openai-go"
)

func TestMessageHelpers(t *testing.T) {
	user := UserMessage("hello")
	if user.Role != RoleUser || user.Content != "hello" {
		t.Errorf("unexpected user message: %+v", user)
	}

	system := SystemMessage("be brief")
	if system.Role != RoleSystem || system.Content != "be brief" {
		t.Errorf("unexpected system message: %+v", system)
	}
}

func TestLastContent(t *testing.T) {
	if got := LastContent(nil); got != "" {
		t.Errorf("LastContent(nil) = %q, want empty", got)
	}

	messages := []Message{
		UserMessage("question"),
		{Role: RoleAssistant, Content: "answer"},
	}
	if got := LastContent(messages); got != "answer" {
		t.Errorf("LastContent = %q, want answer", got)
	}
}

func TestToCompletionParams(t *testing.T) {
	history := []Message{
		UserMessage("hi"),
		SystemMessage("should be dropped"),
		{Role: RoleAssistant, Sender: "TestAgent", Content: "hello"},
		{Role: RoleTool, ToolCallID: "call1", ToolName: "lookup", Content: "result"},
	}

	params := toCompletionParams("instructions", history)

	// Instructions lead, history system messages are dropped.
	if len(params) != 4 {
		t.Errorf("expected 4 params (instructions + 3 history), got %d", len(params))
	}
}

func TestToCompletionParamsCarriesToolCalls(t *testing.T) {
	history := []Message{
		UserMessage("hi"),
		{
			Role:    RoleAssistant,
			Content: "",
			ToolCalls: []openai.ChatCompletionMessageToolCall{
				{
					ID:   "call1",
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunction{
						Name:      "lookup",
						Arguments: `{}`,
					},
				},
			},
		},
		{Role: RoleTool, ToolCallID: "call1", Content: "result"},
	}

	params := toCompletionParams("instructions", history)
	if len(params) != 4 {
		t.Fatalf("expected 4 params, got %d", len(params))
	}

	assistant := params[2].OfAssistant
	if assistant == nil {
		t.Fatal("expected assistant message param")
	}
	if len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].Function.Name != "lookup" {
		t.Errorf("tool calls not carried over: %+v", assistant.ToolCalls)
	}
}
