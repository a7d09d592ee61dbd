package claims

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go"

	"github.com/castlebay/agentlab"
)

// mockClient answers every completion with canned content, or an error
// for agents whose instructions contain failSubstring.
type mockClient struct {
	content       string
	failSubstring string
}

func (m *mockClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.failSubstring != "" && strings.Contains(string(params.Model), m.failSubstring) {
		return nil, errors.New("model unavailable")
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: m.content}},
		},
	}, nil
}

func newTestService(client agentlab.CompletionClient) *Service {
	flow := NewFlow("gpt-4o", 3, 30*time.Second)
	return NewService(agentlab.NewRunner(client), flow)
}

func TestNewFlowPanel(t *testing.T) {
	flow := NewFlow("gpt-4o", 5, time.Minute)

	if flow.Name != "claims-analysis" {
		t.Errorf("flow name = %q", flow.Name)
	}
	expected := []string{DamageAssessor, CoverageVerifier, FraudAnalyst, TriageRecommender}
	if len(flow.Agents) != len(expected) {
		t.Fatalf("expected %d agents, got %d", len(expected), len(flow.Agents))
	}
	for i, name := range expected {
		if flow.Agents[i].Name != name {
			t.Errorf("agent %d = %q, want %q", i, flow.Agents[i].Name, name)
		}
		if flow.Agents[i].Instructions == "" {
			t.Errorf("agent %s has no instructions", name)
		}
	}
}

func TestAnalyze(t *testing.T) {
	svc := newTestService(&mockClient{content: "looks fine"})

	report, err := svc.Analyze(context.Background(), SampleClaim)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RunID == "" {
		t.Error("expected a run ID")
	}
	if report.Claim != SampleClaim {
		t.Error("report should echo the claim text")
	}
	if len(report.Findings) != 4 {
		t.Fatalf("expected 4 findings, got %d", len(report.Findings))
	}
	for _, f := range report.Findings {
		if f.Analysis != "looks fine" {
			t.Errorf("finding %s analysis = %q", f.Agent, f.Analysis)
		}
		if f.Error != "" {
			t.Errorf("finding %s unexpected error: %s", f.Agent, f.Error)
		}
	}
	for _, name := range []string{DamageAssessor, CoverageVerifier, FraudAnalyst, TriageRecommender} {
		if !strings.Contains(report.Summary, "== "+name+" ==") {
			t.Errorf("summary missing section for %s", name)
		}
	}
}

func TestAnalyzeEmptyClaim(t *testing.T) {
	svc := newTestService(&mockClient{content: "unused"})

	for _, claim := range []string{"", "   \n\t"} {
		if _, err := svc.Analyze(context.Background(), claim); !errors.Is(err, ErrEmptyClaim) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyClaim", claim, err)
		}
	}
}

func TestAnalyzePartialPanel(t *testing.T) {
	// One specialist pins a model containing the fail marker.
	client := &mockClient{content: "ok", failSubstring: "broken"}
	flow := NewFlow("gpt-4o", 3, 30*time.Second)
	flow.Agents[2].Model = "broken-model"
	svc := NewService(agentlab.NewRunner(client), flow)

	report, err := svc.Analyze(context.Background(), "claim text")
	if err != nil {
		t.Fatalf("partial panel should still report: %v", err)
	}

	failed := report.Findings[2]
	if failed.Error == "" {
		t.Error("failed specialist should carry its error")
	}
	if failed.Analysis != "" {
		t.Error("failed specialist should have no analysis")
	}
	if strings.Contains(report.Summary, "== "+failed.Agent+" ==") {
		t.Error("summary should omit failed specialists")
	}

	stats := svc.Stats()
	if stats.AgentFailures != 1 {
		t.Errorf("AgentFailures = %d, want 1", stats.AgentFailures)
	}
	if stats.RunsSucceeded != 1 {
		t.Errorf("RunsSucceeded = %d, want 1", stats.RunsSucceeded)
	}
}

func TestAnalyzeAllFailed(t *testing.T) {
	client := &mockClient{failSubstring: "gpt"}
	svc := newTestService(client)

	if _, err := svc.Analyze(context.Background(), "claim text"); err == nil {
		t.Fatal("expected error when every specialist fails")
	}

	stats := svc.Stats()
	if stats.RunsFailed != 1 {
		t.Errorf("RunsFailed = %d, want 1", stats.RunsFailed)
	}
}

func TestStatsAccumulate(t *testing.T) {
	svc := newTestService(&mockClient{content: "ok"})

	for i := 0; i < 3; i++ {
		if _, err := svc.Analyze(context.Background(), "claim text"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stats := svc.Stats()
	if stats.RunsStarted != 3 || stats.RunsSucceeded != 3 {
		t.Errorf("stats = %+v, want 3 started and 3 succeeded", stats)
	}
}
