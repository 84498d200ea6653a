package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/ffscope/internal/model"
)

// JSONWriter outputs explorations and summaries in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the exploration in JSON format.
func (w *JSONWriter) Write(exploration *model.Exploration) (int, error) {
	return w.writeJSON(exploration)
}

// WriteSummary outputs the summary in JSON format.
func (w *JSONWriter) WriteSummary(summary *model.LeagueSummary) (int, error) {
	return w.writeJSON(summary)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps an exploration with the version of the tool that
// produced it.
type JSONReport struct {
	// Version is the ffscope version that generated this report.
	Version string `json:"version"`

	// Exploration is the full exploration.
	Exploration *model.Exploration `json:"exploration,omitempty"`

	// Summary is the league summary.
	Summary *model.LeagueSummary `json:"summary,omitempty"`

	// Explorations holds the explorations of a multi-league run.
	Explorations []*model.Exploration `json:"explorations,omitempty"`

	// Summaries holds the summaries of a multi-league run.
	Summaries []*model.LeagueSummary `json:"summaries,omitempty"`
}

// FullJSONWriter outputs reports wrapped with version metadata.
type FullJSONWriter struct {
	*JSONWriter

	// version is the ffscope version string.
	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the exploration wrapped with metadata.
func (w *FullJSONWriter) Write(exploration *model.Exploration) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Exploration: exploration})
}

// WriteSummary outputs the summary wrapped with metadata.
func (w *FullJSONWriter) WriteSummary(summary *model.LeagueSummary) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Summary: summary})
}

// WriteExplorations outputs several explorations as one document, so a
// multi-league run stays a single JSON value.
func (w *FullJSONWriter) WriteExplorations(explorations []*model.Exploration) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Explorations: explorations})
}

// WriteSummaries outputs several summaries as one document.
func (w *FullJSONWriter) WriteSummaries(summaries []*model.LeagueSummary) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Summaries: summaries})
}
