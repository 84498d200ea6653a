package model

// SectionStatus is the outcome of exploring one object.
type SectionStatus int

const (
	// StatusOK means every member of the object was read.
	StatusOK SectionStatus = iota

	// StatusPartial means the report was produced but some members could
	// not be read.
	StatusPartial

	// StatusSkipped means the object does not exist in this league, for
	// example a roster with no players.
	StatusSkipped

	// StatusFailed means the object could not be reported at all.
	StatusFailed
)

// String returns the upper-case name of the status.
func (s SectionStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusPartial:
		return "PARTIAL"
	case StatusSkipped:
		return "SKIPPED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the status by name.
func (s SectionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
