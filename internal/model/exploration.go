package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/ffscope/internal/introspect"
)

// Exploration is the result of exploring the object surface of one league.
// Sections keep the order in which the pipeline added them.
type Exploration struct {
	// LeagueID is the explored ESPN league id.
	LeagueID int `json:"league_id"`

	// Year is the explored season.
	Year int `json:"year"`

	// LeagueName is the league name once the league has been loaded.
	LeagueName string `json:"league_name,omitempty"`

	// GeneratedAt is when the exploration started.
	GeneratedAt time.Time `json:"generated_at"`

	// Raw is true when the sections describe the raw API document instead
	// of the league models.
	Raw bool `json:"raw,omitempty"`

	// Sections holds one entry per explored object.
	Sections []*Section `json:"sections"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Fingerprint is the SHA3-256 digest of the rendered sections. Two
	// explorations with the same object surface share a fingerprint.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Error is the error that stopped the exploration, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// Section is the report of one explored object.
type Section struct {
	// Title is the banner heading, for example "LEAGUE OBJECT".
	Title string `json:"title"`

	// Subject is the path of the object from the league, for example
	// "teams[0].roster[0]".
	Subject string `json:"subject"`

	// Label names the explored instance, for example "Exploring: Alpha".
	Label string `json:"label,omitempty"`

	// Status is the outcome of the section.
	Status SectionStatus `json:"status"`

	// Note explains a skipped section.
	Note string `json:"note,omitempty"`

	// Report is the surface report; nil for skipped and failed sections.
	Report *introspect.Report `json:"report,omitempty"`

	// Error is the failure of a failed section.
	Error string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewExploration creates an empty exploration of a league season.
func NewExploration(leagueID, year int) *Exploration {
	return &Exploration{
		LeagueID:    leagueID,
		Year:        year,
		GeneratedAt: time.Now(),
		Sections:    make([]*Section, 0),
	}
}

// AddReport adds a section for a produced report. The status is partial
// when any member was unavailable.
func (e *Exploration) AddReport(title, subject string, rep *introspect.Report) *Section {
	s := &Section{
		Title:   title,
		Subject: subject,
		Status:  StatusOK,
		Report:  rep,
	}
	if rep != nil && len(rep.UnavailableMembers()) > 0 {
		s.Status = StatusPartial
	}
	e.Sections = append(e.Sections, s)
	return s
}

// AddSkipped adds a section for an object that does not exist.
func (e *Exploration) AddSkipped(title, subject, note string) *Section {
	s := &Section{
		Title:   title,
		Subject: subject,
		Status:  StatusSkipped,
		Note:    note,
	}
	e.Sections = append(e.Sections, s)
	return s
}

// AddFailed adds a section for an object that could not be reported.
func (e *Exploration) AddFailed(title, subject string, err error) *Section {
	s := &Section{
		Title:   title,
		Subject: subject,
		Status:  StatusFailed,
	}
	if err != nil {
		s.Error = err.Error()
	}
	e.Sections = append(e.Sections, s)
	return s
}

// Section returns the section with the given title, or nil.
func (e *Exploration) Section(title string) *Section {
	for _, s := range e.Sections {
		if s.Title == title {
			return s
		}
	}
	return nil
}

// CountByStatus returns the number of sections with the given status.
func (e *Exploration) CountByStatus(status SectionStatus) int {
	n := 0
	for _, s := range e.Sections {
		if s.Status == status {
			n++
		}
	}
	return n
}

// SetError records the error that stopped the exploration.
func (e *Exploration) SetError(err error) {
	e.Error = err
	if err != nil {
		e.ErrorMessage = err.Error()
	} else {
		e.ErrorMessage = ""
	}
}

// ComputeFingerprint hashes the titles and rendered reports of all
// sections, stores the hex digest in Fingerprint and returns it.
// Generation time is not part of the digest.
func (e *Exploration) ComputeFingerprint() string {
	h := sha3.New256()
	for _, s := range e.Sections {
		_, _ = h.Write([]byte(s.Title + "\n" + s.Subject + "\n" + s.Status.String() + "\n")) //nolint:errcheck // hash writes never fail
		if s.Report != nil {
			_, _ = h.Write([]byte(s.Report.String())) //nolint:errcheck // hash writes never fail
		}
	}
	e.Fingerprint = hex.EncodeToString(h.Sum(nil))
	return e.Fingerprint
}
