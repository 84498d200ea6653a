package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/ffscope/internal/introspect"
	"github.com/nao1215/ffscope/internal/model"
)

// MarkdownWriter outputs explorations and summaries in GitHub-flavored
// Markdown.
type MarkdownWriter struct {
	baseWriter

	// title turns banner titles into headings.
	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
}

// Write outputs the exploration in Markdown format.
func (w *MarkdownWriter) Write(exploration *model.Exploration) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, exploration)
	w.writeStatusSummary(md, exploration)
	for _, s := range exploration.Sections {
		w.writeSection(md, s)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the league information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, e *model.Exploration) {
	title := "League Exploration"
	if e.LeagueName != "" {
		title += ": " + e.LeagueName
	}
	md.H1(title)
	md.PlainText("")

	source := "League models"
	if e.Raw {
		source = "Raw API document"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"League ID", "`" + strconv.Itoa(e.LeagueID) + "`"},
			{"Year", strconv.Itoa(e.Year)},
			{"Source", source},
			{"Date", e.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", statusText(e)},
		},
	})
	md.PlainText("")
}

// statusText returns the overall status of an exploration.
func statusText(e *model.Exploration) string {
	switch {
	case e.ErrorMessage != "":
		return "❌ Error - " + e.ErrorMessage
	case e.CountByStatus(model.StatusPartial) > 0:
		return "⚠️ Complete with unavailable members"
	default:
		return "✅ Complete"
	}
}

// writeStatusSummary writes section counts, a pie chart and an alert.
func (w *MarkdownWriter) writeStatusSummary(md *markdown.Markdown, e *model.Exploration) {
	md.H2("Sections")
	md.PlainText("")

	statuses := []model.SectionStatus{model.StatusOK, model.StatusPartial, model.StatusSkipped, model.StatusFailed}

	rows := make([][]string, 0, len(statuses))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Section Status"),
		piechart.WithShowData(true),
	)
	for _, status := range statuses {
		n := e.CountByStatus(status)
		rows = append(rows, []string{status.String(), strconv.Itoa(n)})
		if n > 0 {
			chart.LabelAndIntValue(status.String(), uint64(n)) //nolint:gosec // counts are never negative
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(e.Sections) > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch failed := e.CountByStatus(model.StatusFailed); {
	case failed > 0:
		md.Warningf("%d section(s) could not be explored.", failed)
	case e.CountByStatus(model.StatusPartial) > 0:
		md.Importantf("Some members could not be read and are marked `%s`.", introspect.UnavailableMarker)
	default:
		md.Tip("Every object was explored.")
	}
	md.PlainText("")
}

// writeSection writes one explored object as a heading and a text block.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, s *model.Section) {
	md.H2(w.title.String(s.Title))
	md.PlainText("")
	md.PlainTextf("Subject: `%s`", s.Subject)
	md.PlainText("")

	switch s.Status {
	case model.StatusSkipped:
		md.Note("Skipped: " + s.Note)
		md.PlainText("")
		return
	case model.StatusFailed:
		md.Cautionf("Failed: %s", s.Error)
		md.PlainText("")
		return
	}

	if s.Label != "" {
		md.PlainText(s.Label)
		md.PlainText("")
	}
	if s.Report != nil {
		md.CodeBlocks(markdown.SyntaxHighlightText, s.Report.String())
		md.PlainText("")
		if missing := s.Report.UnavailableMembers(); len(missing) > 0 {
			md.Details("Unavailable members", strings.Join(missing, ", "))
			md.PlainText("")
		}
	}
}

// WriteSummary outputs the standings and matchups as tables.
func (w *MarkdownWriter) WriteSummary(summary *model.LeagueSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(summary.Name)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"League ID", "`" + strconv.Itoa(summary.LeagueID) + "`"},
			{"Year", strconv.Itoa(summary.Year)},
			{"Current Week", strconv.Itoa(summary.CurrentWeek)},
			{"Teams", strconv.Itoa(summary.TeamCount)},
		},
	})
	md.PlainText("")

	md.H2("Standings")
	md.PlainText("")
	standings := make([][]string, len(summary.Standings))
	for i, r := range summary.Standings {
		standings[i] = []string{
			strconv.Itoa(r.Rank),
			r.Team,
			r.Record(),
			formatPoints(r.PointsFor),
			formatPoints(r.PointsAgainst),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Team", "Record", "PF", "PA"},
		Rows:   standings,
	})
	md.PlainText("")

	md.H2(fmt.Sprintf("Week %d Matchups", summary.Week))
	md.PlainText("")
	if len(summary.Matchups) == 0 {
		md.PlainText("No matchups.")
		md.PlainText("")
	} else {
		matchups := make([][]string, len(summary.Matchups))
		for i, m := range summary.Matchups {
			matchups[i] = []string{m.AwayTeam, formatPoints(m.AwayScore), m.HomeTeam, formatPoints(m.HomeScore)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Away", "Score", "Home", "Score"},
			Rows:   matchups,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [ffscope](https://github.com/nao1215/ffscope)*")
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
