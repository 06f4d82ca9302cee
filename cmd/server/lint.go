package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/worker"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Parse every question bank and report errors",
	RunE:  runLint,
}

type lintResult struct {
	Questions int
	Err       error
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	results := lintBanks(cmd.Context(), loader, runtime.NumCPU())

	out := cmd.OutOrStdout()
	failed := 0
	for _, domain := range loader.Catalog().Domains() {
		r := results[domain]
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %-8s %v\n", domain, r.Err)
			continue
		}
		fmt.Fprintf(out, "ok    %-8s %d questions\n", domain, r.Questions)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d banks failed to parse", failed, len(results))
	}
	return nil
}

// lintBanks loads every catalog domain concurrently.
func lintBanks(ctx context.Context, loader *questionbank.Loader, workers int) map[string]lintResult {
	jobs := make(map[string]worker.Job[lintResult])
	for _, domain := range loader.Catalog().Domains() {
		jobs[domain] = func() lintResult {
			bank, err := loader.Load(ctx, domain)
			if err != nil {
				return lintResult{Err: err}
			}
			return lintResult{Questions: bank.Len()}
		}
	}
	return worker.Run(workers, jobs)
}
