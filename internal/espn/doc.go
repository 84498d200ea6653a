// Package espn is a small client for the ESPN fantasy football API.
//
// It fetches a league season with the session cookies of a signed-in user
// (espn_s2 and SWID) and builds read-only models: League, Team, Player,
// BoxScore and Settings. Public leagues need no credentials.
//
// The models are plain structs so the introspect package can describe
// them. Methods that talk to the network take a context and are never
// invoked while a report is generated.
package espn
