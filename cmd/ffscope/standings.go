package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/ffscope/internal/config"
	"github.com/nao1215/ffscope/internal/model"
	"github.com/nao1215/ffscope/internal/pipeline"
)

// NewStandingsCmd creates the standings command.
func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings [league-id...]",
		Short: "Print league standings and the matchups of a week",
		Long: `Standings loads a league season and prints the league information,
the team standings ordered by wins and the matchups of a week.

Examples:
  # Standings and current week matchups
  ffscope standings 123456

  # Matchups of week 3 of the 2023 season as Markdown
  ffscope standings -y 2023 -w 3 -m 123456`,
		Args: cobra.ArbitraryArgs,
		RunE: runStandingsCmd,
	}

	addLeagueFlags(cmd)
	cmd.Flags().IntP("week", "w", 0,
		"Matchup period of the matchups (0 = current)")
	addOutputFlags(cmd)

	return cmd
}

// runStandingsCmd executes the standings command.
func runStandingsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	return runStandings(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runStandings writes the summary of every configured league. A league
// that fails to load does not stop the others.
func runStandings(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	out, closeOut, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck // closed explicitly below on success

	writer := newReportWriter(cfg, out)
	pool := newClientPool(cfg, logger)

	var (
		failures  []error
		summaries []*model.LeagueSummary
	)
	for _, id := range cfg.LeagueIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		l, err := pool.open(ctx, id, cfg.Year)
		if err != nil {
			logger.Error("failed to open league", "league_id", id, "error", err)
			failures = append(failures, fmt.Errorf("failed to open league %d: %w", id, err))
			continue
		}

		summary := pipeline.Summarize(l, cfg.Week)
		if cfg.JSONReport && len(cfg.LeagueIDs) > 1 {
			summaries = append(summaries, summary)
			continue
		}
		if _, err := writer.WriteSummary(summary); err != nil {
			return fmt.Errorf("failed to write standings of league %d: %w", id, err)
		}
	}

	if len(summaries) > 0 {
		if _, err := newJSONWriter(out).WriteSummaries(summaries); err != nil {
			return fmt.Errorf("failed to write standings: %w", err)
		}
	}

	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return errors.Join(failures...)
}
