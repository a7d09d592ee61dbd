package agentlab

import (
	"reflect"
)

// AgentFunction represents a callable tool that can be exposed to an agent.
type AgentFunction interface {
	// Call executes the function with given arguments
	Call(args map[string]interface{}) (interface{}, error)
	// Description returns the function's documentation
	Description() string
	// Name returns the function's name
	Name() string
	// Parameters returns the function's parameters
	Parameters() []Parameter
}

// Parameter describes a single tool parameter. Name, Description and Type
// are exported to the model as JSON schema; they are metadata for the model,
// not validated contracts.
type Parameter struct {
	Name        string
	Description string
	Type        reflect.Type
	Required    bool
}

// FuncTool adapts a plain Go function into an AgentFunction.
type FuncTool struct {
	Fn         func(map[string]interface{}) (interface{}, error)
	Desc       string
	ToolName   string
	ParamsList []Parameter
}

func (f *FuncTool) Call(args map[string]interface{}) (interface{}, error) {
	return f.Fn(args)
}

func (f *FuncTool) Description() string {
	return f.Desc
}

func (f *FuncTool) Name() string {
	return f.ToolName
}

func (f *FuncTool) Parameters() []Parameter {
	return f.ParamsList
}

// NewAgentFunction creates a new AgentFunction from a function, a
// natural-language description and its parameter metadata.
func NewAgentFunction(name string, desc string, fn func(map[string]interface{}) (interface{}, error), parameters []Parameter) AgentFunction {
	return &FuncTool{
		Fn:         fn,
		Desc:       desc,
		ToolName:   name,
		ParamsList: parameters,
	}
}

// Agent represents an AI agent with its configuration and capabilities.
type Agent struct {
	// Name identifies the agent
	Name string

	// Model specifies the model to use (e.g., "gpt-4o")
	Model string

	// Instructions can be either a string or a func() string that
	// provides the system message for the agent
	Instructions interface{}

	// Functions that this agent can call
	Functions []AgentFunction
}

// NewAgent creates a new Agent with default values.
func NewAgent(name string) *Agent {
	return &Agent{
		Name:         name,
		Model:        "gpt-4o",
		Instructions: "You are a helpful agent.",
		Functions:    make([]AgentFunction, 0),
	}
}

// WithModel sets the model for the agent and returns the agent for chaining.
func (a *Agent) WithModel(model string) *Agent {
	a.Model = model
	return a
}

// WithInstructions sets the instructions for the agent and returns the agent for chaining.
func (a *Agent) WithInstructions(instructions interface{}) *Agent {
	a.Instructions = instructions
	return a
}

// AddFunction adds a function to the agent's capabilities and returns the agent for chaining.
func (a *Agent) AddFunction(f AgentFunction) *Agent {
	a.Functions = append(a.Functions, f)
	return a
}

// instructions resolves the agent's system message.
func (a *Agent) instructions() (string, error) {
	switch i := a.Instructions.(type) {
	case string:
		return i, nil
	case func() string:
		return i(), nil
	default:
		return "", ErrInvalidInstructions
	}
}
