package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/nao1215/ffscope/internal/config"
	"github.com/nao1215/ffscope/internal/espn"
)

// TestErrorHint tests the troubleshooting advice per error.
func TestErrorHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "cancelled", err: context.Canceled, want: ""},
		{name: "unknown", err: errors.New("boom"), want: ""},
		{name: "unauthorized", err: fmt.Errorf("league 1: %w", espn.ErrUnauthorized), want: "espn_s2 cookie may have expired"},
		{name: "swid", err: espn.ErrUnauthorized, want: "SWID may be invalid"},
		{name: "not found", err: espn.ErrLeagueNotFound, want: "check the league id"},
		{name: "invalid league argument", err: config.ErrInvalidLeagueID, want: "check the league id"},
		{name: "no league", err: config.ErrNoLeague, want: "FFSCOPE_LEAGUE_ID"},
		{name: "one cookie", err: config.ErrIncompleteCredentials, want: "ESPN_SWID"},
		{name: "server error", err: &espn.HTTPError{StatusCode: 503}, want: "try again"},
		{name: "client error", err: &espn.HTTPError{StatusCode: 400}, want: ""},
		{name: "timeout", err: context.DeadlineExceeded, want: "--timeout"},
		{name: "network", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: "network"},
		{name: "joined", err: errors.Join(errors.New("x"), espn.ErrUnauthorized), want: "espn_s2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := errorHint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no hint, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected hint containing %q, got %q", tt.want, got)
			}
		})
	}
}
