package agentlab

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// FlowAgent defines one independently-prompted agent inside a
// ConcurrentFlow.
type FlowAgent struct {
	Name         string `yaml:"name" json:"name"`
	Model        string `yaml:"model" json:"model"`
	Instructions string `yaml:"instructions" json:"instructions"`

	Functions []AgentFunction `yaml:"-" json:"-"`
	Agent     *Agent          `yaml:"-" json:"-"`
}

// ConcurrentFlow fans one input out to a set of agents running in
// parallel and fans their outputs back in. The agents do not share
// conversation state; each sees only the flow input.
type ConcurrentFlow struct {
	// Name is the name of the flow.
	Name string `yaml:"name" json:"name"`
	// Model is the default model for agents that do not set their own.
	Model string `yaml:"model" json:"model"`
	// MaxTurns caps the tool-invocation loop of each agent.
	MaxTurns int `yaml:"max_turns" json:"max_turns"`
	// Timeout bounds the whole fan-out. Zero means 5 minutes.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Agents are the flow's parallel participants.
	Agents []FlowAgent `yaml:"agents" json:"agents"`
}

// AgentOutcome is one agent's contribution to a ConcurrentResult.
type AgentOutcome struct {
	Agent    string        `json:"agent"`
	Content  string        `json:"content"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// ConcurrentResult aggregates the outcomes of a ConcurrentFlow run.
// Outcomes preserve the flow's agent order regardless of completion order.
type ConcurrentResult struct {
	Name      string         `json:"name"`
	Outcomes  []AgentOutcome `json:"outcomes"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Duration  time.Duration  `json:"duration"`
}

// Initialize prepares the flow for execution: it applies defaults,
// validates that at least one agent is configured and builds the Agent
// for every participant that does not bring its own.
func (f *ConcurrentFlow) Initialize() error {
	if f.MaxTurns == 0 {
		f.MaxTurns = defaultMaxTurns
	}
	if f.Timeout == 0 {
		f.Timeout = 5 * time.Minute
	}

	if len(f.Agents) == 0 {
		return fmt.Errorf("flow must have at least one agent")
	}

	for i := range f.Agents {
		fa := &f.Agents[i]
		if fa.Name == "" {
			return fmt.Errorf("flow agent %d has no name", i)
		}
		if fa.Agent == nil {
			fa.Agent = NewAgent(fa.Name)
		}
		if fa.Instructions != "" {
			fa.Agent.WithInstructions(fa.Instructions)
		}
		model := fa.Model
		if model == "" {
			model = f.Model
		}
		if model != "" {
			fa.Agent.WithModel(model)
		}
		// Assignment, not append: Initialize runs before every Run and
		// must stay idempotent.
		if len(fa.Functions) > 0 {
			fa.Agent.Functions = fa.Functions
		}
	}

	return nil
}

// LoadConcurrentFlow creates a ConcurrentFlow from a YAML definition file
// and initializes it.
func LoadConcurrentFlow(path string) (*ConcurrentFlow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}

	var flow ConcurrentFlow
	if err := yaml.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flow: %w", err)
	}

	if err := flow.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize flow: %w", err)
	}

	return &flow, nil
}

// Save persists the flow definition to a YAML file at the specified path.
func (f *ConcurrentFlow) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal flow: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write flow file: %w", err)
	}

	return nil
}

// Run executes every agent in the flow against the same input in
// parallel and collects their outcomes. A failing agent does not cancel
// its siblings; its error is recorded in the corresponding outcome and
// counted in Failed. Run itself returns an error only when the flow is
// misconfigured.
func (f *ConcurrentFlow) Run(ctx context.Context, runner *Runner, input string) (*ConcurrentResult, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if err := f.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize flow: %w", err)
	}

	flowCtx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	start := time.Now()
	outcomes := make([]AgentOutcome, len(f.Agents))

	g, gctx := errgroup.WithContext(flowCtx)
	for i := range f.Agents {
		fa := &f.Agents[i]
		outcome := &outcomes[i]
		g.Go(func() error {
			agentStart := time.Now()
			outcome.Agent = fa.Name

			result, err := runner.Run(gctx, fa.Agent, []Message{UserMessage(input)}, RunOptions{
				MaxTurns:     f.MaxTurns,
				ExecuteTools: true,
			})
			outcome.Duration = time.Since(agentStart)
			if err != nil {
				outcome.Err = fmt.Errorf("agent %s: %w", fa.Name, err)
				return nil
			}

			outcome.Content = result.Content
			return nil
		})
	}

	// Goroutines report failures through their outcome, so Wait only
	// joins; it cannot surface an error here.
	_ = g.Wait()

	result := &ConcurrentResult{
		Name:     f.Name,
		Outcomes: outcomes,
		Duration: time.Since(start),
	}
	for _, o := range outcomes {
		if o.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result, nil
}

// Errs returns the errors of all failed outcomes, in flow order.
func (r *ConcurrentResult) Errs() []error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
