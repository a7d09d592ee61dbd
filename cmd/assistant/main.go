// Command assistant runs a single tool-calling agent with simulated
// weather and local-time lookup tools. It first walks through two
// scripted turns, then drops into an interactive prompt.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castlebay/agentlab"
	"github.com/castlebay/agentlab/tools"
)

const instructions = `You are a helpful assistant. You can look up the current weather for a
city and the current local time for a timezone code. Use your tools when
the user asks about weather or time; answer directly otherwise.`

var scriptedTurns = []string{
	"What's the weather like in Seattle right now?",
	"Thanks! And what time is it in JST?",
}

func main() {
	var (
		model    = flag.String("model", "gpt-4o", "model to use")
		scripted = flag.Bool("scripted", false, "run only the scripted turns and exit")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	client, err := agentlab.ClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("no completion provider configured")
	}

	agent := agentlab.NewAgent("Assistant").
		WithModel(*model).
		WithInstructions(instructions).
		AddFunction(tools.NewWeatherTool()).
		AddFunction(tools.NewTimeTool(nil))

	runner := agentlab.NewRunner(client)
	ctx := context.Background()

	var history []agentlab.Message
	for _, turn := range scriptedTurns {
		fmt.Printf("You: %s\n", turn)
		history, err = runTurn(ctx, runner, agent, history, turn)
		if err != nil {
			log.Fatal().Err(err).Msg("scripted turn failed")
		}
	}

	if *scripted {
		return
	}

	fmt.Println("\nAsk about the weather or the time (empty line or 'exit' to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || input == "exit" || input == "quit" {
			break
		}

		history, err = runTurn(ctx, runner, agent, history, input)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
		}
	}
}

// runTurn appends the user input to the thread, runs the agent and prints
// its reply. It returns the extended thread for the next turn.
func runTurn(ctx context.Context, runner *agentlab.Runner, agent *agentlab.Agent, history []agentlab.Message, input string) ([]agentlab.Message, error) {
	history = append(history, agentlab.UserMessage(input))

	result, err := runner.Run(ctx, agent, history, agentlab.RunOptions{ExecuteTools: true})
	if err != nil {
		return history, err
	}

	fmt.Printf("%s: %s\n", agent.Name, result.Content)
	return append(history, result.Messages...), nil
}
