package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
)

var statsCmd = &cobra.Command{
	Use:   "stats [domain...]",
	Short: "Show exposure statistics per domain",
	RunE:  runStats,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("208"))
)

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	domains := args
	if len(domains) == 0 {
		domains = a.quiz.Domains()
	}

	rows := make([]questionbank.BankStats, 0, len(domains))
	for _, d := range domains {
		st, err := a.quiz.Stats(cmd.Context(), d)
		if err != nil {
			return fmt.Errorf("stats for %s: %w", d, err)
		}
		rows = append(rows, st)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderStats(rows))
	return nil
}

// renderStats lays out one row per domain. The exhausted column is
// highlighted when questions can no longer be offered.
func renderStats(rows []questionbank.BankStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DOMAIN", "TOTAL", "UNSEEN", "SEEN 1x", "SEEN 2x", "EXHAUSTED").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 5 && rows[row].Exhausted > 0:
				return warnStyle
			default:
				return cellStyle
			}
		})

	for _, st := range rows {
		t.Row(
			st.Domain,
			strconv.Itoa(st.TotalQuestions),
			strconv.Itoa(st.Unseen),
			strconv.Itoa(st.SeenOnce),
			strconv.Itoa(st.SeenTwice),
			strconv.Itoa(st.Exhausted),
		)
	}
	return t.String()
}
