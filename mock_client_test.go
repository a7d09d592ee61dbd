package agentlab

import (
	"context"
	"sync"

	"github.com/openai/openai-go"
)

// MockCompletionClient mocks the completion API for testing. Responses
// are consumed in FIFO order; RespondFn, when set, takes precedence and
// can inspect the request parameters. Safe for concurrent use.
type MockCompletionClient struct {
	mu        sync.Mutex
	responses []*openai.ChatCompletion
	calls     int

	RespondFn func(params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	Err       error
}

func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

func (m *MockCompletionClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.RespondFn != nil {
		return m.RespondFn(params)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.responses) == 0 {
		return textCompletion("mock response"), nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next, nil
}

// QueueResponse appends a canned completion to be returned by a later call.
func (m *MockCompletionClient) QueueResponse(response *openai.ChatCompletion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
}

// Calls reports how many completion requests the mock has served.
func (m *MockCompletionClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// textCompletion builds a completion whose single choice is plain content.
func textCompletion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:    "assistant",
					Content: content,
				},
			},
		},
	}
}

// toolCallCompletion builds a completion whose single choice requests one
// tool call.
func toolCallCompletion(id, name, args string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role: "assistant",
					ToolCalls: []openai.ChatCompletionMessageToolCall{
						{
							ID:   id,
							Type: "function",
							Function: openai.ChatCompletionMessageToolCallFunction{
								Name:      name,
								Arguments: args,
							},
						},
					},
				},
			},
		},
	}
}
