package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/simulation"
	"github.com/jeopardy-trainer/backend/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play concurrent guessing sessions and print the resulting stats",
	Long: "Runs simulated players against the quiz service. Exposures go to an in-memory " +
		"store unless --persist is set, in which case the configured database is used.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("domain", "go", "Domain to play")
	simulateCmd.Flags().Int("players", 8, "Number of concurrent players")
	simulateCmd.Flags().Int("rounds", 3, "Sessions per player")
	simulateCmd.Flags().Int("size", 0, "Questions per session (DEFAULT_SESSION_SIZE when 0)")
	simulateCmd.Flags().Int64("seed", 1, "Seed for the players' guesses")
	simulateCmd.Flags().Bool("persist", false, "Record exposures in the configured database")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if persist, _ := cmd.Flags().GetBool("persist"); !persist {
		cfg.DatabaseDriver = store.DriverMemory
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())

	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	sc := simulation.Config{Workers: runtime.NumCPU()}
	sc.Domain, _ = cmd.Flags().GetString("domain")
	sc.Players, _ = cmd.Flags().GetInt("players")
	sc.Rounds, _ = cmd.Flags().GetInt("rounds")
	sc.SessionSize, _ = cmd.Flags().GetInt("size")
	sc.Seed, _ = cmd.Flags().GetInt64("seed")
	if sc.SessionSize == 0 {
		sc.SessionSize = cfg.DefaultSessionSize
	}

	report, err := simulation.Run(cmd.Context(), a.quiz, sc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d sessions, %d answers graded, %d correct\n", report.Sessions, report.Graded, report.Correct)
	fmt.Fprintln(out, renderStats([]questionbank.BankStats{report.Stats}))
	return nil
}
