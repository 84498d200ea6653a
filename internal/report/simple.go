package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/ffscope/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
// Every explored object gets a banner heading followed by its surface
// report.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether skipped sections are shown.
	showEmpty bool

	// verbose adds the subject path and status of each section.
	verbose bool

	// printer formats points with digit grouping.
	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty sets whether skipped sections are shown. They are shown
// by default.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  true,
		verbose:    false,
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the exploration as banner sections.
func (w *SimpleWriter) Write(exploration *model.Exploration) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, exploration)
	for _, s := range exploration.Sections {
		if s.Status == model.StatusSkipped && !w.showEmpty {
			continue
		}
		w.writeSection(&sb, s)
	}
	w.writeFooter(&sb, exploration)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the exploration banner with league information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, e *model.Exploration) {
	title := "ESPN FANTASY FOOTBALL API - LEAGUE OBJECT EXPLORATION"
	if e.Raw {
		title = "ESPN FANTASY FOOTBALL API - RAW DOCUMENT EXPLORATION"
	}
	banner(sb, title, bannerWidth)

	fmt.Fprintf(sb, "League ID: %d\n", e.LeagueID)
	fmt.Fprintf(sb, "Year:      %d\n", e.Year)
	if e.LeagueName != "" {
		fmt.Fprintf(sb, "League:    %s\n", e.LeagueName)
	}
	fmt.Fprintf(sb, "Date:      %s\n", e.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
}

// writeSection writes one explored object.
func (w *SimpleWriter) writeSection(sb *strings.Builder, s *model.Section) {
	sb.WriteString("\n")
	banner(sb, s.Title, bannerWidth)

	if w.verbose {
		fmt.Fprintf(sb, "Subject: %s\n", s.Subject)
		fmt.Fprintf(sb, "Status:  %s\n", s.Status)
	}

	switch s.Status {
	case model.StatusSkipped:
		fmt.Fprintf(sb, "\nSkipped: %s\n", s.Note)
		return
	case model.StatusFailed:
		fmt.Fprintf(sb, "\nFailed: %s\n", s.Error)
		return
	}

	if s.Label != "" {
		fmt.Fprintf(sb, "\n%s\n", s.Label)
	}
	if s.Report != nil {
		sb.WriteString("\n")
		sb.WriteString(s.Report.String())
	}
}

// writeFooter writes the completion banner and section counts.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, e *model.Exploration) {
	sb.WriteString("\n")
	banner(sb, "EXPLORATION COMPLETE", bannerWidth)

	fmt.Fprintf(sb, "Sections: %d ok, %d partial, %d skipped, %d failed\n",
		e.CountByStatus(model.StatusOK),
		e.CountByStatus(model.StatusPartial),
		e.CountByStatus(model.StatusSkipped),
		e.CountByStatus(model.StatusFailed),
	)
	if e.ErrorMessage != "" {
		fmt.Fprintf(sb, "Error:    %s\n", e.ErrorMessage)
	}
	if e.Fingerprint != "" {
		fmt.Fprintf(sb, "Fingerprint: %s\n", e.Fingerprint)
	}
}

// WriteSummary outputs league information, standings and the matchups of
// the summary week.
func (w *SimpleWriter) WriteSummary(summary *model.LeagueSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	banner(&sb, "LEAGUE INFORMATION", summaryBannerWidth)
	fmt.Fprintf(&sb, "League Name: %s\n", summary.Name)
	fmt.Fprintf(&sb, "Current Week: %d\n", summary.CurrentWeek)
	fmt.Fprintf(&sb, "Number of Teams: %d\n", summary.TeamCount)

	sb.WriteString("\n")
	banner(&sb, "TEAM STANDINGS", summaryBannerWidth)
	for _, r := range summary.Standings {
		fmt.Fprintf(&sb, "%d. %s: %s (%s PF)\n", r.Rank, r.Team, r.Record(), w.points(r.PointsFor))
	}

	sb.WriteString("\n")
	banner(&sb, fmt.Sprintf("WEEK %d MATCHUPS", summary.Week), summaryBannerWidth)
	if len(summary.Matchups) == 0 {
		sb.WriteString("\nNo matchups\n")
	}
	for _, m := range summary.Matchups {
		fmt.Fprintf(&sb, "\n%s: %s\n", m.AwayTeam, w.points(m.AwayScore))
		fmt.Fprintf(&sb, "%s: %s\n", m.HomeTeam, w.points(m.HomeScore))
		sb.WriteString(strings.Repeat("-", matchupRuleWidth))
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// points formats a score with two decimals and digit grouping.
func (w *SimpleWriter) points(v float64) string {
	return w.printer.Sprintf("%.2f", v)
}
