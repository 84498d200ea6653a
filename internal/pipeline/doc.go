// Package pipeline runs the steps of a league exploration in sequence.
//
// A run opens the league once and then describes one object per step:
// the league, its first team, that team's first rostered player, the first
// box score of the current week and the league settings. Each step adds a
// section to the model.Exploration; a missing object becomes a skipped
// section and an object that cannot be reported becomes a failed one.
//
// BatchProcessor explores several leagues concurrently with errgroup.
package pipeline
