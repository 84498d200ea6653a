// Package model defines the data structures shared by the pipeline, the
// report writers and the CLI.
//
// This package contains the following main types:
//   - Exploration: the surface reports produced by one explore run
//   - Section: one explored object (league, team, player, ...)
//   - LeagueSummary: standings and current-week matchups of a league
//
// The models are serializable to JSON for report output.
package model
