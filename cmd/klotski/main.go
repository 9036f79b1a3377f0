// Command klotski enumerates and solves sliding-block puzzles from the
// command line, without a running server. The enumerate command writes
// hyper-state and super-state listings as JSON artifacts; the solve command
// runs the breadth-first search and prints the move list with an explicit
// outcome.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/config"
	"github.com/47chirp/klotski/puzzle/enumerate"
	"github.com/47chirp/klotski/puzzle/search"
)

// Version is the CLI version, shared with the server binary's release line.
const Version = "1.0.0"

// enumerationArtifact is the JSON envelope written by the enumerate command.
// Count 0 with an empty state list means the request was infeasible, not
// that it failed.
type enumerationArtifact struct {
	Kind         string      `json:"kind"`
	Config       string      `json:"config"`
	HyperOrdinal int         `json:"hyper_ordinal,omitempty"`
	Count        int         `json:"count"`
	States       interface{} `json:"states"`
}

func main() {
	cmd := &cli.Command{
		Name:    "klotski",
		Usage:   "enumerate and solve sliding-block puzzles",
		Version: Version,
		Commands: []*cli.Command{
			enumerateCommand(),
			solveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("klotski: %v", err)
	}
}

func enumerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "enumerate",
		Usage: "enumerate hyper-states, or the super-states of one hyper-state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory containing puzzle configuration files",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "classic",
				Usage: "configuration name to enumerate",
			},
			&cli.IntFlag{
				Name:  "hyper",
				Usage: "hyper-state ordinal to extend with obstacles (0 lists hyper-states)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file for the JSON artifact (default stdout)",
			},
		},
		Action: runEnumerate,
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "run the shortest-path search from the configured start placement",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory containing puzzle configuration files",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "classic",
				Usage: "configuration name to solve",
			},
			&cli.IntFlag{
				Name:  "max-states",
				Usage: "stop after exploring this many states (0 = unbounded)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the search after this duration (0 = no timeout)",
			},
		},
		Action: runSolve,
	}
}

func runEnumerate(ctx context.Context, cmd *cli.Command) error {
	b, start, cfg, err := loadBoard(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}

	hypers := enumerate.HyperStates(b, start)

	var artifact *enumerationArtifact
	if ordinal := int(cmd.Int("hyper")); ordinal > 0 {
		if ordinal > len(hypers) {
			return fmt.Errorf("hyper ordinal %d out of range: %d hyper-states exist", ordinal, len(hypers))
		}
		supers, err := enumerate.SuperStates(b, hypers[ordinal-1].State, enumerate.Options{
			Count: cfg.Obstacles.Count,
			Fixed: cfg.Obstacles.Fixed,
		})
		if err != nil {
			return fmt.Errorf("failed to enumerate super-states: %w", err)
		}
		artifact = buildSuperArtifact(cmd.String("config"), ordinal, supers)
	} else {
		artifact = buildHyperArtifact(cmd.String("config"), hypers)
	}

	return writeArtifact(cmd.String("out"), artifact)
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	b, start, _, err := loadBoard(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := search.Solve(ctx, b, start, search.PieceAt(b.Target(), b.Goal()), search.Options{
		MaxStates: int(cmd.Int("max-states")),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Print(formatSolveReport(result))
	return nil
}

// loadBoard resolves a configuration by name and builds its board and
// initial state.
func loadBoard(configDir, name string) (*board.Board, board.State, *board.Config, error) {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open config directory: %w", err)
	}

	cfg, err := manager.LoadConfig(name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config %q: %w", name, err)
	}

	b, start, err := board.NewBoard(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config %q: %w", name, err)
	}
	return b, start, cfg, nil
}

func buildHyperArtifact(configName string, hypers []enumerate.HyperState) *enumerationArtifact {
	return &enumerationArtifact{
		Kind:   "hyper",
		Config: configName,
		Count:  len(hypers),
		States: hypers,
	}
}

func buildSuperArtifact(configName string, hyperOrdinal int, supers []enumerate.SuperState) *enumerationArtifact {
	return &enumerationArtifact{
		Kind:         "super",
		Config:       configName,
		HyperOrdinal: hyperOrdinal,
		Count:        len(supers),
		States:       supers,
	}
}

// writeArtifact serializes the artifact as indented JSON to the given path,
// or to stdout when path is empty.
func writeArtifact(path string, artifact *enumerationArtifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// formatSolveReport renders a search result for terminal output. The outcome
// line always comes first: exhausted is a proven no-solution, while
// budget-exceeded proves nothing and is labelled inconclusive.
func formatSolveReport(result search.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Outcome: %s\n", result.Outcome)
	fmt.Fprintf(&sb, "States explored: %d\n", result.StatesExplored)

	switch result.Outcome {
	case search.OutcomeSolved:
		if len(result.Moves) == 0 {
			sb.WriteString("Already at the goal; no moves required.\n")
			break
		}
		fmt.Fprintf(&sb, "Solution (%d moves):\n", len(result.Moves))
		for i, m := range result.Moves {
			fmt.Fprintf(&sb, "%3d. %s %s -> (%d,%d)\n", i+1, m.Label, m.Direction, m.To.Row, m.To.Col)
		}
	case search.OutcomeExhausted:
		sb.WriteString("No solution: the reachable state space contains no goal state.\n")
	case search.OutcomeBudgetExceeded:
		sb.WriteString("Search stopped at the budget; the result is inconclusive.\n")
	}

	return sb.String()
}
