package agentlab

import (
	"github.com/openai/openai-go"
)

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a single entry in a conversation thread. Tool-related fields
// are only set for assistant messages requesting tool calls and for the
// tool messages answering them.
type Message struct {
	Role       string `json:"role"`
	Sender     string `json:"sender,omitempty"`
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`

	ToolCalls []openai.ChatCompletionMessageToolCall `json:"tool_calls,omitempty"`
}

// UserMessage creates a user message with the given content.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage creates a system message with the given content.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// toCompletionParams converts the system instructions plus conversation
// history into the message union the OpenAI API expects. System messages
// inside the history are dropped: instructions always come first and are
// owned by the active agent.
func toCompletionParams(instructions string, history []Message) []openai.ChatCompletionMessageParamUnion {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(instructions),
	}

	for _, msg := range history {
		switch msg.Role {
		case RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case RoleSystem:
			// skip
		case RoleTool:
			messages = append(messages, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			assistantMsg := openai.AssistantMessage(msg.Content)
			if len(msg.ToolCalls) > 0 {
				toolCallParams := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
				for i, tc := range msg.ToolCalls {
					toolCallParams[i] = openai.ChatCompletionMessageToolCallParam{
						ID:   tc.ID,
						Type: tc.Type,
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					}
				}
				assistantMsg.OfAssistant.ToolCalls = toolCallParams
			}
			messages = append(messages, assistantMsg)
		}
	}
	return messages
}

// LastContent returns the content of the last message, or "" for an empty
// thread. Convenient for reading the final assistant reply of a run.
func LastContent(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}
