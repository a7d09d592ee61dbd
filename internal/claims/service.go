package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/castlebay/agentlab"
)

// ErrEmptyClaim is returned when Analyze is called without claim text.
var ErrEmptyClaim = errors.New("claim text cannot be empty")

// Finding is one specialist's contribution to a report.
type Finding struct {
	Agent      string `json:"agent"`
	Analysis   string `json:"analysis,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Report is the combined outcome of one claims analysis run.
type Report struct {
	RunID      string    `json:"run_id"`
	Claim      string    `json:"claim"`
	Findings   []Finding `json:"findings"`
	Summary    string    `json:"summary"`
	DurationMs int64     `json:"duration_ms"`
}

// Stats is a snapshot of the service's process-lifetime telemetry.
type Stats struct {
	RunsStarted     int64 `json:"runs_started"`
	RunsSucceeded   int64 `json:"runs_succeeded"`
	RunsFailed      int64 `json:"runs_failed"`
	AgentFailures   int64 `json:"agent_failures"`
	TotalDurationMs int64 `json:"total_duration_ms"`
	LastDurationMs  int64 `json:"last_duration_ms"`
}

// Service analyzes claims with a fixed specialist panel and records run
// telemetry. Safe for concurrent use.
type Service struct {
	runner *agentlab.Runner
	flow   *agentlab.ConcurrentFlow

	mu    sync.Mutex
	stats Stats
}

// NewService creates a claims analysis service.
func NewService(runner *agentlab.Runner, flow *agentlab.ConcurrentFlow) *Service {
	return &Service{runner: runner, flow: flow}
}

// Analyze fans the claim text out to the specialist panel and combines
// the findings into a report. A run fails only when every specialist
// fails; partial panels still produce a report.
func (s *Service) Analyze(ctx context.Context, claim string) (*Report, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, ErrEmptyClaim
	}

	runID := uuid.NewString()
	s.recordStart()

	log.Info().Str("run_id", runID).Int("claim_bytes", len(claim)).Msg("claims analysis started")

	result, err := s.flow.Run(ctx, s.runner, claim)
	if err != nil {
		s.recordEnd(0, 0, false)
		return nil, fmt.Errorf("claims analysis %s: %w", runID, err)
	}

	report := &Report{
		RunID:      runID,
		Claim:      claim,
		Findings:   make([]Finding, 0, len(result.Outcomes)),
		DurationMs: result.Duration.Milliseconds(),
	}

	var summary strings.Builder
	for _, outcome := range result.Outcomes {
		finding := Finding{
			Agent:      outcome.Agent,
			DurationMs: outcome.Duration.Milliseconds(),
		}
		if outcome.Err != nil {
			finding.Error = outcome.Err.Error()
		} else {
			finding.Analysis = outcome.Content
			fmt.Fprintf(&summary, "== %s ==\n%s\n\n", outcome.Agent, outcome.Content)
		}
		report.Findings = append(report.Findings, finding)
	}
	report.Summary = strings.TrimRight(summary.String(), "\n")

	succeeded := result.Succeeded > 0
	s.recordEnd(result.Duration, int64(result.Failed), succeeded)

	log.Info().
		Str("run_id", runID).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("claims analysis finished")

	if !succeeded {
		return nil, fmt.Errorf("claims analysis %s: all %d specialists failed", runID, result.Failed)
	}
	return report, nil
}

// Stats returns a copy of the current telemetry counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Service) recordStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.RunsStarted++
}

func (s *Service) recordEnd(duration time.Duration, agentFailures int64, succeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if succeeded {
		s.stats.RunsSucceeded++
	} else {
		s.stats.RunsFailed++
	}
	s.stats.AgentFailures += agentFailures
	s.stats.TotalDurationMs += duration.Milliseconds()
	s.stats.LastDurationMs = duration.Milliseconds()
}
