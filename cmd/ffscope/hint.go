package main

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/nao1215/ffscope/internal/config"
	"github.com/nao1215/ffscope/internal/espn"
)

// errorHint returns troubleshooting advice for err, or "" when there is
// none.
func errorHint(err error) string {
	var (
		httpErr *espn.HTTPError
		netErr  net.Error
	)

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, espn.ErrUnauthorized):
		return hintLines(
			"The league is private or the session cookies were rejected:",
			"the espn_s2 cookie may have expired (sign in again and copy a fresh one)",
			"the SWID may be invalid (it is a GUID in braces, for example {XXXXXXXX-...})",
		)
	case errors.Is(err, espn.ErrLeagueNotFound), errors.Is(err, espn.ErrInvalidLeagueID),
		errors.Is(err, config.ErrInvalidLeagueID):
		return hintLines(
			"The league could not be found:",
			"check the league id (the leagueId parameter of the league URL)",
			"check that the league existed in the requested season (--year)",
		)
	case errors.Is(err, config.ErrNoLeague):
		return hintLines(
			"No league to explore:",
			"pass a league id as an argument",
			"or set league_id in .ffscope or FFSCOPE_LEAGUE_ID",
		)
	case errors.Is(err, config.ErrIncompleteCredentials):
		return hintLines(
			"Private leagues need both cookies:",
			"set espn_s2 and swid in .ffscope, or ESPN_S2 and ESPN_SWID",
		)
	case errors.As(err, &httpErr) && httpErr.StatusCode >= 500:
		return hintLines(
			"The ESPN API is having trouble:",
			"try again in a few minutes",
		)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return hintLines(
			"There may be a network or API connection issue:",
			"check your internet connection",
			"raise the request timeout with --timeout",
		)
	default:
		return ""
	}
}

func hintLines(title string, items ...string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(title)
	for _, item := range items {
		sb.WriteString("\n  - ")
		sb.WriteString(item)
	}
	return sb.String()
}
