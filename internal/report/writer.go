package report

import (
	"io"
	"strings"

	"github.com/nao1215/ffscope/internal/model"
)

const (
	// bannerWidth is the rule width around exploration headings.
	bannerWidth = 80

	// summaryBannerWidth is the rule width around summary headings.
	summaryBannerWidth = 60

	// matchupRuleWidth separates matchups in the summary.
	matchupRuleWidth = 40
)

// Writer defines the interface for report output.
// Implementations write explorations and league summaries in various
// formats.
type Writer interface {
	// Write outputs an exploration to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(exploration *model.Exploration) (int, error)

	// WriteSummary outputs the standings and matchups of a league.
	WriteSummary(summary *model.LeagueSummary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the exploration to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(exploration *model.Exploration) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(exploration)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.LeagueSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// banner writes title between two rules of width '=' characters.
func banner(sb *strings.Builder, title string, width int) {
	rule := strings.Repeat("=", width)
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
}
