package agentlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyMessages indicates that a run was started without any
	// initial messages.
	ErrEmptyMessages = errors.New("messages cannot be empty")

	// ErrInvalidInstructions indicates that an agent's Instructions field
	// holds neither a string nor a func() string.
	ErrInvalidInstructions = errors.New("instructions must be a string or func() string")

	// ErrNoChoices indicates that the completion API returned no choices.
	ErrNoChoices = errors.New("completion returned no choices")
)

// RunOptions control a single Runner.Run invocation.
type RunOptions struct {
	// Model overrides the agent's model when non-empty.
	Model string

	// MaxTurns caps the number of completion rounds. Zero means the
	// default of 10.
	MaxTurns int

	// ExecuteTools controls whether requested tool calls are executed.
	// When false the loop ends at the first tool-call request.
	ExecuteTools bool

	// JSONMode asks the model for a JSON object response.
	JSONMode bool
}

const defaultMaxTurns = 10

// RunResult is the outcome of a Runner.Run: the messages produced during
// the run (excluding the caller's input) and the final assistant content.
type RunResult struct {
	Messages []Message
	Content  string
}

// Runner drives the completion and tool-invocation loop for an agent.
// It requests a completion, executes any tool calls the model asks for,
// feeds the results back, and repeats until the model answers in plain
// content or the turn budget runs out.
type Runner struct {
	Client CompletionClient
}

// NewRunner creates a Runner backed by the given completion client.
func NewRunner(client CompletionClient) *Runner {
	if client == nil {
		panic("completion client cannot be nil")
	}
	return &Runner{Client: client}
}

// Run executes an interaction with the model using the provided agent
// configuration. The input messages are not mutated.
func (r *Runner) Run(ctx context.Context, agent *Agent, messages []Message, opts RunOptions) (*RunResult, error) {
	if agent == nil {
		return nil, errors.New("agent cannot be nil")
	}
	if len(messages) == 0 {
		return nil, ErrEmptyMessages
	}

	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	history := make([]Message, len(messages))
	copy(history, messages)
	initLen := len(messages)

	for len(history)-initLen < maxTurns {
		completion, err := r.complete(ctx, agent, history, opts)
		if err != nil {
			return nil, err
		}
		if len(completion.Choices) == 0 {
			return nil, ErrNoChoices
		}

		reply := completion.Choices[0].Message
		message := Message{
			Role:      RoleAssistant,
			Sender:    agent.Name,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		}
		log.Debug().Str("agent", agent.Name).Int("tool_calls", len(reply.ToolCalls)).Msg("received completion")
		history = append(history, message)

		if len(reply.ToolCalls) == 0 || !opts.ExecuteTools {
			break
		}

		history = append(history, r.executeToolCalls(reply.ToolCalls, agent)...)
	}

	produced := history[initLen:]
	return &RunResult{
		Messages: produced,
		Content:  LastContent(produced),
	}, nil
}

// complete sends a single chat completion request for the agent and history.
func (r *Runner) complete(ctx context.Context, agent *Agent, history []Message, opts RunOptions) (*openai.ChatCompletion, error) {
	instructions, err := agent.instructions()
	if err != nil {
		return nil, err
	}

	model := opts.Model
	if model == "" {
		model = agent.Model
	}

	params := openai.ChatCompletionNewParams{
		Messages: toCompletionParams(instructions, history),
		Model:    openai.ChatModel(model),
	}
	if opts.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}
	if tools := completionTools(agent); len(tools) > 0 {
		params.Tools = tools
	}

	return r.Client.CreateChatCompletion(ctx, params)
}

// executeToolCalls runs the requested tool calls against the agent's
// functions and returns one tool-role message per call. Unknown tools,
// malformed arguments and execution failures become error-content tool
// messages so the model can recover; they never abort the loop.
func (r *Runner) executeToolCalls(toolCalls []openai.ChatCompletionMessageToolCall, agent *Agent) []Message {
	functionMap := make(map[string]AgentFunction, len(agent.Functions))
	for _, f := range agent.Functions {
		if f != nil {
			functionMap[f.Name()] = f
		}
	}

	results := make([]Message, 0, len(toolCalls))
	for _, toolCall := range toolCalls {
		name := toolCall.Function.Name
		message := Message{
			Role:       RoleTool,
			ToolCallID: toolCall.ID,
			ToolName:   name,
		}

		fn, exists := functionMap[name]
		if !exists {
			log.Debug().Str("tool", name).Msg("tool not found")
			message.Content = fmt.Sprintf("Error: tool %q not found", name)
			results = append(results, message)
			continue
		}

		var args map[string]interface{}
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
			log.Debug().Str("tool", name).Err(err).Msg("failed to parse tool arguments")
			message.Content = fmt.Sprintf("Error: failed to parse arguments for tool %q: %v", name, err)
			results = append(results, message)
			continue
		}

		rawResult, err := fn.Call(args)
		if err != nil {
			log.Debug().Str("tool", name).Err(err).Msg("tool execution failed")
			message.Content = fmt.Sprintf("Error: tool %q failed: %v", name, err)
			results = append(results, message)
			continue
		}

		message.Content = stringifyResult(rawResult)
		results = append(results, message)
	}
	return results
}

// stringifyResult renders a tool's return value as message content.
// Strings pass through; everything else is JSON-encoded when possible.
func stringifyResult(result interface{}) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", v)
	}
}
