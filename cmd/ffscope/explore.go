package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/ffscope/internal/config"
	"github.com/nao1215/ffscope/internal/espn"
	"github.com/nao1215/ffscope/internal/introspect"
	"github.com/nao1215/ffscope/internal/log"
	"github.com/nao1215/ffscope/internal/model"
	"github.com/nao1215/ffscope/internal/pipeline"
	"github.com/nao1215/ffscope/internal/report"
)

// NewExploreCmd creates the explore command.
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [league-id...]",
		Short: "Explore the object surface of ESPN leagues",
		Long: `Explore loads a league season and reports the members of its objects:
the league, the first team, the first rostered player, the first box score
of the current week and the league settings.

With --raw, the raw API document is explored instead: the root document,
its first team and its settings object.

Examples:
  # Explore a public league for the current season
  ffscope explore 123456

  # Explore a private league of the 2023 season
  ESPN_S2=... ESPN_SWID={...} ffscope explore -y 2023 123456

  # Expand nested objects two levels deep and show 20 keys per mapping
  ffscope explore -d 3 -k 20 123456

  # Explore several leagues concurrently and save a Markdown report
  ffscope explore -m -o report.md 111 222 333

Configuration file (.ffscope) example:
  league_id: 123456
  espn_s2: "AEB..."
  swid: "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}"
  explore:
    max_depth: 2`,
		Args: cobra.ArbitraryArgs,
		RunE: runExploreCmd,
	}

	addLeagueFlags(cmd)

	// Report shape flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Object levels rendered per section")
	cmd.Flags().IntP("keys", "k", 0,
		"Mapping keys shown in previews (default 5 for players, 10 otherwise)")
	cmd.Flags().Bool("raw", false,
		"Explore the raw API document instead of the league models")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of leagues explored concurrently")

	addOutputFlags(cmd)

	return cmd
}

// addLeagueFlags adds the flags shared by commands that load a league.
func addLeagueFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .ffscope in current or home directory)")
	cmd.Flags().IntP("year", "y", config.DefaultYear(time.Now()),
		"Season year")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each API request")
	cmd.Flags().String("base-url", "",
		"ESPN API base URL")
	_ = cmd.Flags().MarkHidden("base-url") //nolint:errcheck // flag exists
}

// addOutputFlags adds the report format flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report, one document for all leagues (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// runExploreCmd executes the explore command.
func runExploreCmd(cmd *cobra.Command, args []string) error {
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

	return runExplore(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getPersistentBool(cmd, "verbose")
}

// getPersistentBool retrieves a global flag from the command or its parent.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from the config file, the environment and
// the command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently run without a config file.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		f.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	leagueIDs, err := config.ParseLeagueIDs(args)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv, len(leagueIDs) > 0); err != nil {
		return nil, err
	}
	if len(leagueIDs) > 0 {
		cfg.LeagueIDs = leagueIDs
	}

	for name, dst := range map[string]*int{
		"year":  &cfg.Year,
		"depth": &cfg.MaxDepth,
		"keys":  &cfg.KeyPreviewLimit,
		"batch": &cfg.BatchSize,
		"week":  &cfg.Week,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetInt(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	for name, dst := range map[string]*bool{
		"raw":      &cfg.Raw,
		"json":     &cfg.JSONReport,
		"markdown": &cfg.MarkdownReport,
	} {
		if flags.Lookup(name) == nil {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	for name, dst := range map[string]*string{
		"output":   &cfg.ReportFile,
		"base-url": &cfg.BaseURL,
	} {
		if flags.Lookup(name) == nil {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogJSON = getPersistentBool(cmd, "log-json")
	return cfg, nil
}

// setupLogger creates a structured logger that redacts ESPN credentials.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// clientPool hands out one ESPN client per distinct pair of cookies.
type clientPool struct {
	cfg    *config.Config
	logger *slog.Logger

	mu      sync.Mutex
	clients map[espn.Credentials]*espn.Client
}

func newClientPool(cfg *config.Config, logger *slog.Logger) *clientPool {
	return &clientPool{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[espn.Credentials]*espn.Client),
	}
}

// forLeague returns the client carrying the cookies of a league.
func (p *clientPool) forLeague(leagueID int) (*espn.Client, error) {
	espnS2, swid := p.cfg.Credentials(leagueID)
	creds := espn.Credentials{ESPNS2: espnS2, SWID: swid}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[creds]; ok {
		return c, nil
	}

	opts := []espn.Option{
		espn.WithTimeout(p.cfg.Timeout),
		espn.WithUserAgent(p.cfg.UserAgent),
		espn.WithLogger(p.logger),
	}
	if p.cfg.BaseURL != "" {
		opts = append(opts, espn.WithBaseURL(p.cfg.BaseURL))
	}
	c, err := espn.NewClient(creds, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ESPN client: %w", err)
	}
	p.clients[creds] = c

	p.logger.Debug("created ESPN client",
		"league_id", leagueID,
		"authenticated", c.Authenticated(),
	)
	return c, nil
}

// open loads a league with the client of its cookies.
func (p *clientPool) open(ctx context.Context, leagueID, year int) (*espn.League, error) {
	c, err := p.forLeague(leagueID)
	if err != nil {
		return nil, err
	}
	return espn.Open(ctx, c, leagueID, year)
}

// rawLeague fetches the raw document with the client of its cookies.
func (p *clientPool) rawLeague(ctx context.Context, leagueID, year int) (*introspect.Object, error) {
	c, err := p.forLeague(leagueID)
	if err != nil {
		return nil, err
	}
	return c.RawLeague(ctx, leagueID, year)
}

// reporterOptions converts the report settings of cfg.
func reporterOptions(cfg *config.Config) []introspect.Option {
	opts := []introspect.Option{introspect.WithMaxDepth(cfg.MaxDepth)}
	if cfg.KeyPreviewLimit > 0 {
		opts = append(opts, introspect.WithKeyPreviewLimit(cfg.KeyPreviewLimit))
	}
	return opts
}

// newExplorePipeline creates the pipeline for one league.
func newExplorePipeline(cfg *config.Config, pool *clientPool, logger *slog.Logger) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	}

	if cfg.Raw {
		p := pipeline.New(opts...)
		p.AddStep(pipeline.NewRawLeagueStep(pool.rawLeague, reporterOptions(cfg)...))
		return p
	}
	return pipeline.NewExplorePipeline(pool.open, &pipeline.Target{}, reporterOptions(cfg), opts...)
}

// runExplore explores every configured league and writes the reports.
func runExplore(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) error {
	logger.Info("starting exploration",
		"leagues", cfg.LeagueIDs,
		"year", cfg.Year,
		"raw", cfg.Raw,
		"batchSize", cfg.BatchSize,
	)

	out, closeOut, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck // closed explicitly below on success

	writer := newReportWriter(cfg, out)
	pool := newClientPool(cfg, logger)

	// JSON reports of several leagues are written together at the end.
	collect := cfg.JSONReport && len(cfg.LeagueIDs) > 1
	collected := make([]*model.Exploration, len(cfg.LeagueIDs))

	var (
		mu       sync.Mutex
		failures []error
	)
	handle := func(e *model.Exploration, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(stderr, "[%d/%d] Explored league %d\n", index+1, len(cfg.LeagueIDs), e.LeagueID)
		if collect {
			collected[index] = e
		} else if _, err := writer.Write(e); err != nil {
			logger.Error("report failed", "league_id", e.LeagueID, "error", err)
			failures = append(failures, err)
		}
		if e.Error != nil {
			failures = append(failures, fmt.Errorf("league %d: %w", e.LeagueID, e.Error))
		}
	}

	startTime := time.Now()

	if len(cfg.LeagueIDs) > 1 && cfg.BatchSize > 1 {
		fmt.Fprintf(stderr, "Exploring %d leagues (concurrency: %d)...\n", len(cfg.LeagueIDs), cfg.BatchSize)
		bp := pipeline.NewBatchProcessor(
			func() *pipeline.Pipeline { return newExplorePipeline(cfg, pool, logger) },
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)
		if err := bp.ProcessBatchWithCallback(ctx, cfg.LeagueIDs, cfg.Year, handle); err != nil {
			return err
		}
	} else {
		for i, id := range cfg.LeagueIDs {
			if err := ctx.Err(); err != nil {
				return err
			}
			e := model.NewExploration(id, cfg.Year)
			// Cancellation is recorded in the exploration.
			_ = newExplorePipeline(cfg, pool, logger).Execute(ctx, e) //nolint:errcheck // continue on error
			handle(e, i)
		}
	}

	fmt.Fprintf(stderr, "Exploration completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	if collect {
		collected = slices.DeleteFunc(collected, func(e *model.Exploration) bool { return e == nil })
		if _, err := newJSONWriter(out).WriteExplorations(collected); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("exploration failed: %w", errors.Join(failures...))
	}
	return nil
}

// newReportWriter returns the writer of the requested format.
func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return newJSONWriter(out)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

func newJSONWriter(out io.Writer) *report.FullJSONWriter {
	return report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
}

// openOutput returns the report destination: path when set, stdout
// otherwise. The returned close function may be called more than once.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports name private leagues and their members, so only the owner
	// may read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-provided output path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	var once sync.Once
	var closeErr error
	return f, func() error {
		once.Do(func() { closeErr = f.Close() })
		return closeErr
	}, nil
}
