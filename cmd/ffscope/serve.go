package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/nao1215/ffscope/internal/config"
	"github.com/nao1215/ffscope/internal/model"
	"github.com/nao1215/ffscope/internal/pipeline"
)

// ExploreLeagueArgs are the arguments of the explore_league tool.
type ExploreLeagueArgs struct {
	LeagueID        int    `json:"league_id" jsonschema:"ESPN league id (0 = configured league)"`
	Year            int    `json:"year,omitempty" jsonschema:"Season year (0 = configured season)"`
	Raw             bool   `json:"raw,omitempty" jsonschema:"Explore the raw API document instead of the league models"`
	MaxDepth        int    `json:"max_depth,omitempty" jsonschema:"Object levels rendered per section (default 1)"`
	KeyPreviewLimit int    `json:"key_preview_limit,omitempty" jsonschema:"Mapping keys shown in previews (0 = section default)"`
	Format          string `json:"format,omitempty" jsonschema:"Report format: text|markdown|json (default text)"`
}

// LeagueStandingsArgs are the arguments of the league_standings tool.
type LeagueStandingsArgs struct {
	LeagueID int    `json:"league_id" jsonschema:"ESPN league id (0 = configured league)"`
	Year     int    `json:"year,omitempty" jsonschema:"Season year (0 = configured season)"`
	Week     int    `json:"week,omitempty" jsonschema:"Matchup period (0 = current)"`
	Format   string `json:"format,omitempty" jsonschema:"Report format: text|markdown|json (default text)"`
}

// errUnknownFormat is returned for a format other than text, markdown or json.
var errUnknownFormat = errors.New("unknown report format")

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve league exploration as MCP tools over stdio",
		Long: `Serve runs a Model Context Protocol server on stdin and stdout.

Tools:
  explore_league    object surface report of a league
  league_standings  standings and matchups of a week

Credentials, the default league and the season are read from the
configuration file and the environment, as for the other commands.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addLeagueFlags(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signalContext(cmd.Context(), logger)
	defer stop()

	logger.Info("starting MCP server", "transport", "stdio")
	if err := newMCPServer(cfg, logger).Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// newMCPServer creates the MCP server with the league tools.
func newMCPServer(cfg *config.Config, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    config.AppName,
			Version: getVersion(),
		},
		nil,
	)

	tools := &leagueTools{
		cfg:    cfg,
		pool:   newClientPool(cfg, logger),
		logger: logger,
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explore_league",
		Description: "Report the callable and data members of a league, a team, a player, a box score and the settings",
	}, tools.exploreLeague)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_standings",
		Description: "League information, standings ordered by wins and the matchups of a week",
	}, tools.leagueStandings)

	return server
}

// leagueTools implements the MCP tool handlers.
type leagueTools struct {
	cfg    *config.Config
	pool   *clientPool
	logger *slog.Logger
}

// requestConfig copies the server configuration for one tool call.
func (t *leagueTools) requestConfig(leagueID, year int, format string) (*config.Config, error) {
	c := *t.cfg
	if leagueID != 0 {
		c.LeagueIDs = []int{leagueID}
	}
	if len(c.LeagueIDs) > 1 {
		c.LeagueIDs = c.LeagueIDs[:1]
	}
	if year != 0 {
		c.Year = year
	}
	c.ReportFile = ""

	switch format {
	case "", "text":
	case "markdown":
		c.MarkdownReport = true
	case "json":
		c.JSONReport = true
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
	return &c, nil
}

// exploreLeague handles the explore_league tool.
func (t *leagueTools) exploreLeague(ctx context.Context, _ *mcp.CallToolRequest, args ExploreLeagueArgs) (*mcp.CallToolResult, any, error) {
	c, err := t.requestConfig(args.LeagueID, args.Year, args.Format)
	if err != nil {
		return toolError(err), nil, nil
	}
	c.Raw = args.Raw
	if args.MaxDepth != 0 {
		c.MaxDepth = args.MaxDepth
	}
	if args.KeyPreviewLimit != 0 {
		c.KeyPreviewLimit = args.KeyPreviewLimit
	}
	if err := c.Validate(); err != nil {
		return toolError(err), nil, nil
	}

	leagueID := c.LeagueIDs[0]
	client, err := t.pool.forLeague(leagueID)
	if err != nil {
		return toolError(err), nil, nil
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(t.logger),
		pipeline.WithContinueOnError(true),
	}
	var p *pipeline.Pipeline
	if c.Raw {
		p = pipeline.RawPipeline(client, reporterOptions(c), opts...)
	} else {
		p = pipeline.DefaultPipeline(client, reporterOptions(c), opts...)
	}

	e := model.NewExploration(leagueID, c.Year)
	if err := p.Execute(ctx, e); err != nil {
		return toolError(err), nil, nil
	}

	var buf bytes.Buffer
	if _, err := newReportWriter(c, &buf).Write(e); err != nil {
		return toolError(err), nil, nil
	}

	res := toolText(buf.String())
	// Nothing could be described: the report only lists failures.
	if e.Error != nil && e.CountByStatus(model.StatusOK)+e.CountByStatus(model.StatusPartial) == 0 {
		res.IsError = true
	}
	return res, nil, nil
}

// leagueStandings handles the league_standings tool.
func (t *leagueTools) leagueStandings(ctx context.Context, _ *mcp.CallToolRequest, args LeagueStandingsArgs) (*mcp.CallToolResult, any, error) {
	c, err := t.requestConfig(args.LeagueID, args.Year, args.Format)
	if err != nil {
		return toolError(err), nil, nil
	}
	c.Week = args.Week
	if err := c.Validate(); err != nil {
		return toolError(err), nil, nil
	}

	leagueID := c.LeagueIDs[0]
	l, err := t.pool.open(ctx, leagueID, c.Year)
	if err != nil {
		return toolError(fmt.Errorf("failed to open league %d: %w", leagueID, err)), nil, nil
	}

	var buf bytes.Buffer
	if _, err := newReportWriter(c, &buf).WriteSummary(pipeline.Summarize(l, c.Week)); err != nil {
		return toolError(err), nil, nil
	}
	return toolText(buf.String()), nil, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// toolError reports err to the model as a failed tool call, with the
// troubleshooting hint when there is one.
func toolError(err error) *mcp.CallToolResult {
	text := fmt.Sprintf("error: %v", err)
	if hint := errorHint(err); hint != "" {
		text += "\n" + hint
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
