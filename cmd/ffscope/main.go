// Package main provides the entry point for the ffscope CLI.
//
// ffscope explores the object surface of ESPN fantasy football leagues:
// it loads a league season and prints the callable and data members of the
// league, a team, a player, a box score and the league settings.
//
// Usage:
//
//	ffscope explore <league-id>
//	ffscope standings <league-id>
//	ffscope serve
//
// See --help for all available options.
package main

// main is the entry point for ffscope.
func main() {
	Execute()
}
