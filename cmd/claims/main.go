// Command claims hosts the concurrent insurance-claim analysis panel:
// four independently-prompted specialist agents review the same claim
// text in parallel and the host serves their combined findings plus run
// telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castlebay/agentlab"
	"github.com/castlebay/agentlab/internal/claims"
	"github.com/castlebay/agentlab/internal/config"
	"github.com/castlebay/agentlab/internal/server"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	client, err := agentlab.ClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("no completion provider configured")
	}

	flow, err := buildFlow(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build analysis flow")
	}

	runner := agentlab.NewRunner(client)
	svc := claims.NewService(runner, flow)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AnalyzeSample {
		analyzeSample(ctx, svc)
	}

	if err := server.New(cfg, svc).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// buildFlow uses the YAML flow definition when configured, otherwise the
// built-in specialist panel.
func buildFlow(cfg *config.Config) (*agentlab.ConcurrentFlow, error) {
	if cfg.FlowFile != "" {
		return agentlab.LoadConcurrentFlow(cfg.FlowFile)
	}
	return claims.NewFlow(cfg.Model, cfg.MaxTurns, cfg.FlowTimeout), nil
}

// analyzeSample runs the bundled demonstration claim once and prints the
// combined report, mirroring a scripted run.
func analyzeSample(ctx context.Context, svc *claims.Service) {
	log.Info().Msg("analyzing bundled sample claim")

	report, err := svc.Analyze(ctx, claims.SampleClaim)
	if err != nil {
		log.Error().Err(err).Msg("sample analysis failed")
		return
	}

	fmt.Printf("Sample claim analysis (run %s, %dms):\n\n%s\n", report.RunID, report.DurationMs, report.Summary)
}
