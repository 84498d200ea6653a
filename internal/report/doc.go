// Package report renders explorations and league summaries.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text with banner headings for the terminal
//   - MarkdownWriter: GitHub-flavored Markdown for sharing
//   - JSONWriter and FullJSONWriter: structured output for other tools
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
