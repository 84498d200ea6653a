package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/ffscope/internal/introspect"
)

const (
	// DefaultBaseURL is the read endpoint of the fantasy football API.
	DefaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "ffscope"

	// historyCutoffYear is the first season served by the seasons endpoint.
	// Older seasons are read from leagueHistory.
	historyCutoffYear = 2018

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512

	// maxResponseBody caps how much of a league response is read.
	maxResponseBody = 32 << 20
)

// Default views requested for a league season.
var leagueViews = []string{"mTeam", "mRoster", "mMatchup", "mSettings", "mStatus"}

// Credentials are the session cookies of a signed-in ESPN user.
// Both are empty for a public league.
type Credentials struct {
	// ESPNS2 is the espn_s2 cookie.
	ESPNS2 string

	// SWID is the SWID cookie, a GUID in braces.
	SWID string
}

// IsZero reports whether no credentials are set.
func (c Credentials) IsZero() bool {
	return c.ESPNS2 == "" && c.SWID == ""
}

// Query selects what FetchLeague requests.
type Query struct {
	// Views are the view parameters, for example "mTeam".
	Views []string

	// ScoringPeriod adds scoringPeriodId when positive.
	ScoringPeriod int

	// Filter is sent as the X-Fantasy-Filter header when not empty.
	Filter string
}

// Client talks to the ESPN fantasy API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	creds     Credentials
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
	httpClient *http.Client
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		o.baseURL = u
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient uses hc instead of a new client. Its cookie jar is
// replaced so the session cookies are sent.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// NewClient creates a client that sends creds as cookies.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(strings.TrimRight(o.baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", o.baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if !creds.IsZero() {
		jar.SetCookies(base, []*http.Cookie{
			{Name: "espn_s2", Value: creds.ESPNS2, Path: "/"},
			{Name: "SWID", Value: creds.SWID, Path: "/"},
		})
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}
	hc.Jar = jar

	return &Client{
		baseURL:   base,
		http:      hc,
		userAgent: o.userAgent,
		creds:     creds,
		logger:    o.logger,
	}, nil
}

// Authenticated reports whether the client carries session cookies.
func (c *Client) Authenticated() bool {
	return !c.creds.IsZero()
}

// leagueURL returns the league endpoint for a season.
func (c *Client) leagueURL(leagueID, year int) *url.URL {
	u := *c.baseURL
	if year < historyCutoffYear {
		u.Path += "/leagueHistory/" + strconv.Itoa(leagueID)
		return &u
	}
	u.Path += fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", year, leagueID)
	return &u
}

// FetchLeague returns the raw league document for one season.
// Seasons before 2018 are unwrapped from the leagueHistory array.
func (c *Client) FetchLeague(ctx context.Context, leagueID, year int, q Query) ([]byte, error) {
	if leagueID <= 0 {
		return nil, ErrInvalidLeagueID
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	u := c.leagueURL(leagueID, year)
	params := url.Values{}
	for _, v := range q.Views {
		params.Add("view", v)
	}
	if q.ScoringPeriod > 0 {
		params.Set("scoringPeriodId", strconv.Itoa(q.ScoringPeriod))
	}
	if year < historyCutoffYear {
		params.Set("seasonId", strconv.Itoa(year))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if q.Filter != "" {
		req.Header.Set("X-Fantasy-Filter", q.Filter)
	}

	c.logger.Debug("fetching league",
		"league_id", leagueID,
		"year", year,
		"views", strings.Join(q.Views, ","),
		"scoring_period", q.ScoringPeriod,
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league %d: %w", leagueID, err)
	}
	defer resp.Body.Close()

	endpoint := u.Scheme + "://" + u.Host + u.Path
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrLeagueNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best effort
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read league %d: %w", leagueID, err)
	}

	c.logger.Debug("fetched league",
		"league_id", leagueID,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if year < historyCutoffYear {
		return unwrapHistory(body)
	}
	return body, nil
}

// unwrapHistory returns the first element of a leagueHistory response.
func unwrapHistory(body []byte) ([]byte, error) {
	var seasons []json.RawMessage
	if err := json.Unmarshal(body, &seasons); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	if len(seasons) == 0 {
		return nil, ErrLeagueNotFound
	}
	return seasons[0], nil
}

// RawLeague fetches the default league views and returns the document as
// an ordered object for exploration of the wire format.
func (c *Client) RawLeague(ctx context.Context, leagueID, year int) (*introspect.Object, error) {
	body, err := c.FetchLeague(ctx, leagueID, year, Query{Views: leagueViews})
	if err != nil {
		return nil, err
	}
	obj, err := introspect.FromJSON("League", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	return obj, nil
}
