package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/ffscope/internal/espn"
	"github.com/nao1215/ffscope/internal/introspect"
	"github.com/nao1215/ffscope/internal/model"
)

// Section titles of an exploration.
const (
	TitleLeague      = "LEAGUE OBJECT"
	TitleTeam        = "TEAM OBJECT STRUCTURE"
	TitlePlayer      = "PLAYER OBJECT STRUCTURE"
	TitleBoxScore    = "BOXSCORE OBJECT STRUCTURE"
	TitleSettings    = "SETTINGS OBJECT STRUCTURE"
	TitleRawLeague   = "RAW LEAGUE DOCUMENT"
	TitleRawTeam     = "RAW TEAM DOCUMENT"
	TitleRawSettings = "RAW SETTINGS DOCUMENT"
)

// playerKeyPreviewLimit is the key preview of the player section unless
// the caller sets one.
const playerKeyPreviewLimit = 5

// ErrLeagueNotLoaded is returned by object steps that run before the
// league was opened.
var ErrLeagueNotLoaded = errors.New("league not loaded")

// Target is the league shared by the steps of one pipeline run.
// OpenLeagueStep fills it; object steps read it.
type Target struct {
	League *espn.League
}

// OpenFunc loads a league season.
type OpenFunc func(ctx context.Context, leagueID, year int) (*espn.League, error)

// OpenLeagueStep opens the league of the exploration.
type OpenLeagueStep struct {
	open   OpenFunc
	target *Target
}

// NewOpenLeagueStep creates the step that fills target.
func NewOpenLeagueStep(open OpenFunc, target *Target) *OpenLeagueStep {
	return &OpenLeagueStep{open: open, target: target}
}

// Name returns the step name.
func (s *OpenLeagueStep) Name() string {
	return "open_league"
}

// Do opens the league and records its name.
func (s *OpenLeagueStep) Do(ctx context.Context, e *model.Exploration) error {
	l, err := s.open(ctx, e.LeagueID, e.Year)
	if err != nil {
		return fmt.Errorf("failed to open league %d: %w", e.LeagueID, err)
	}
	s.target.League = l
	if l.Settings != nil {
		e.LeagueName = l.Settings.Name
	}
	return nil
}

// picked is the object chosen by an ObjectStep.
type picked struct {
	object  any
	subject string
	label   string

	// skip is the reason the object does not exist; empty when it does.
	skip string
}

type pickFunc func(ctx context.Context, l *espn.League) (picked, error)

// ObjectStep describes one object of the loaded league.
type ObjectStep struct {
	name   string
	title  string
	target *Target
	pick   pickFunc
	opts   []introspect.Option
}

// Name returns the step name.
func (s *ObjectStep) Name() string {
	return s.name
}

// Do picks the object and adds its surface report to the exploration.
func (s *ObjectStep) Do(ctx context.Context, e *model.Exploration) error {
	l := s.target.League
	if l == nil {
		e.AddFailed(s.title, "", ErrLeagueNotLoaded)
		return ErrLeagueNotLoaded
	}

	p, err := s.pick(ctx, l)
	if err != nil {
		e.AddFailed(s.title, p.subject, err)
		return fmt.Errorf("%s: %w", s.name, err)
	}
	if p.skip != "" {
		e.AddSkipped(s.title, p.subject, p.skip)
		return nil
	}

	rep, err := introspect.Describe(p.object, s.opts...)
	if err != nil {
		e.AddFailed(s.title, p.subject, err)
		return fmt.Errorf("%s: %w", s.name, err)
	}
	e.AddReport(s.title, p.subject, rep).Label = p.label
	return nil
}

// NewLeagueStep describes the league itself.
func NewLeagueStep(target *Target, opts ...introspect.Option) *ObjectStep {
	return &ObjectStep{
		name:   "explore_league",
		title:  TitleLeague,
		target: target,
		opts:   opts,
		pick: func(_ context.Context, l *espn.League) (picked, error) {
			label := ""
			if l.Settings != nil {
				label = "Exploring: " + l.Settings.Name
			}
			return picked{object: l, subject: "league", label: label}, nil
		},
	}
}

// NewTeamStep describes the first team.
func NewTeamStep(target *Target, opts ...introspect.Option) *ObjectStep {
	return &ObjectStep{
		name:   "explore_team",
		title:  TitleTeam,
		target: target,
		opts:   opts,
		pick: func(_ context.Context, l *espn.League) (picked, error) {
			p := picked{subject: "teams[0]"}
			if len(l.Teams) == 0 {
				p.skip = "league has no teams"
				return p, nil
			}
			p.object = l.Teams[0]
			p.label = "Exploring: " + l.Teams[0].Name
			return p, nil
		},
	}
}

// NewPlayerStep describes the first rostered player of the first team.
// Mapping previews show 5 keys unless opts set a limit.
func NewPlayerStep(target *Target, opts ...introspect.Option) *ObjectStep {
	withDefault := append([]introspect.Option{introspect.WithKeyPreviewLimit(playerKeyPreviewLimit)}, opts...)
	return &ObjectStep{
		name:   "explore_player",
		title:  TitlePlayer,
		target: target,
		opts:   withDefault,
		pick: func(_ context.Context, l *espn.League) (picked, error) {
			p := picked{subject: "teams[0].roster[0]"}
			switch {
			case len(l.Teams) == 0:
				p.skip = "league has no teams"
			case len(l.Teams[0].Roster) == 0:
				p.skip = "roster of " + l.Teams[0].Name + " is empty"
			default:
				p.object = l.Teams[0].Roster[0]
				p.label = "Exploring: " + l.Teams[0].Roster[0].Name
			}
			return p, nil
		},
	}
}

// NewBoxScoreStep describes the first box score of the current matchup
// period. It fetches box scores from the API.
func NewBoxScoreStep(target *Target, opts ...introspect.Option) *ObjectStep {
	return &ObjectStep{
		name:   "explore_box_score",
		title:  TitleBoxScore,
		target: target,
		opts:   opts,
		pick: func(ctx context.Context, l *espn.League) (picked, error) {
			p := picked{subject: fmt.Sprintf("box_scores(%d)[0]", l.CurrentMatchupPeriod)}
			scores, err := l.BoxScores(ctx, l.CurrentMatchupPeriod)
			if err != nil {
				return p, err
			}
			if len(scores) == 0 {
				p.skip = fmt.Sprintf("no matchups in week %d", l.CurrentMatchupPeriod)
				return p, nil
			}
			p.object = scores[0]
			p.label = "Exploring matchup: " + matchupLabel(scores[0])
			return p, nil
		},
	}
}

// matchupLabel names the teams of a box score.
func matchupLabel(b *espn.BoxScore) string {
	name := func(t *espn.Team) string {
		if t == nil {
			return "?"
		}
		return t.Name
	}
	if b.AwayTeam == nil {
		return name(b.HomeTeam) + " (bye)"
	}
	return name(b.AwayTeam) + " vs " + name(b.HomeTeam)
}

// NewSettingsStep describes the league settings.
func NewSettingsStep(target *Target, opts ...introspect.Option) *ObjectStep {
	return &ObjectStep{
		name:   "explore_settings",
		title:  TitleSettings,
		target: target,
		opts:   opts,
		pick: func(_ context.Context, l *espn.League) (picked, error) {
			p := picked{subject: "settings"}
			if l.Settings == nil {
				p.skip = "league has no settings"
				return p, nil
			}
			p.object = l.Settings
			return p, nil
		},
	}
}

// RawFetchFunc fetches the raw league document.
type RawFetchFunc func(ctx context.Context, leagueID, year int) (*introspect.Object, error)

// RawLeagueStep describes the raw API document: the root, the first team
// and the settings object.
type RawLeagueStep struct {
	fetch RawFetchFunc
	opts  []introspect.Option
}

// NewRawLeagueStep creates a raw document step.
func NewRawLeagueStep(fetch RawFetchFunc, opts ...introspect.Option) *RawLeagueStep {
	return &RawLeagueStep{fetch: fetch, opts: opts}
}

// Name returns the step name.
func (s *RawLeagueStep) Name() string {
	return "explore_raw_league"
}

// Do fetches the document and adds one section per described object.
func (s *RawLeagueStep) Do(ctx context.Context, e *model.Exploration) error {
	e.Raw = true

	doc, err := s.fetch(ctx, e.LeagueID, e.Year)
	if err != nil {
		e.AddFailed(TitleRawLeague, "league", err)
		return fmt.Errorf("failed to fetch league %d: %w", e.LeagueID, err)
	}

	settings := childObject(doc, "settings")
	if settings != nil {
		if name, ok := settings.Get("name"); ok {
			if s, ok := name.(string); ok {
				e.LeagueName = s
			}
		}
	}

	if err := s.describe(e, TitleRawLeague, "league", doc); err != nil {
		return err
	}

	if team := firstElement(doc, "teams"); team != nil {
		if err := s.describe(e, TitleRawTeam, "teams[0]", team); err != nil {
			return err
		}
	} else {
		e.AddSkipped(TitleRawTeam, "teams[0]", "document has no teams")
	}

	if settings != nil {
		return s.describe(e, TitleRawSettings, "settings", settings)
	}
	e.AddSkipped(TitleRawSettings, "settings", "document has no settings")
	return nil
}

func (s *RawLeagueStep) describe(e *model.Exploration, title, subject string, obj *introspect.Object) error {
	rep, err := introspect.Describe(obj, s.opts...)
	if err != nil {
		e.AddFailed(title, subject, err)
		return err
	}
	e.AddReport(title, subject, rep)
	return nil
}

// childObject returns the nested object stored under key, or nil.
func childObject(obj *introspect.Object, key string) *introspect.Object {
	v, ok := obj.Get(key)
	if !ok {
		return nil
	}
	child, _ := v.(*introspect.Object) //nolint:errcheck // nil when not an object
	return child
}

// firstElement returns the first element of the array under key when it
// is an object, or nil.
func firstElement(obj *introspect.Object, key string) *introspect.Object {
	v, ok := obj.Get(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	first, _ := arr[0].(*introspect.Object) //nolint:errcheck // nil when not an object
	return first
}

// DefaultPipeline builds the explore pipeline for the league models:
// open, league, team, player, box score and settings.
func DefaultPipeline(client *espn.Client, reporterOpts []introspect.Option, opts ...Option) *Pipeline {
	target := &Target{}
	open := func(ctx context.Context, leagueID, year int) (*espn.League, error) {
		return espn.Open(ctx, client, leagueID, year)
	}
	return NewExplorePipeline(open, target, reporterOpts, opts...)
}

// NewExplorePipeline builds the explore pipeline around an OpenFunc.
func NewExplorePipeline(open OpenFunc, target *Target, reporterOpts []introspect.Option, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewOpenLeagueStep(open, target),
		NewLeagueStep(target, reporterOpts...),
		NewTeamStep(target, reporterOpts...),
		NewPlayerStep(target, reporterOpts...),
		NewBoxScoreStep(target, reporterOpts...),
		NewSettingsStep(target, reporterOpts...),
	)
	return p
}

// RawPipeline builds the pipeline that explores the raw API document.
func RawPipeline(client *espn.Client, reporterOpts []introspect.Option, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewRawLeagueStep(client.RawLeague, reporterOpts...))
	return p
}
