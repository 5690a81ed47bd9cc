package proof

import (
	"fmt"
	"strings"

	"originx/internal/vault"
)

// Status is the outcome of a verification attempt.
type Status int

const (
	// StatusIdle means no verification has been attempted.
	StatusIdle Status = iota
	// StatusMatch means a stored proof has the same fingerprint.
	StatusMatch
	// StatusMismatch means no stored proof has the fingerprint.
	StatusMismatch
)

func (s Status) String() string {
	switch s {
	case StatusMatch:
		return "match"
	case StatusMismatch:
		return "mismatch"
	default:
		return "idle"
	}
}

// MarshalText renders the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a lowercase status name.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "idle", "":
		*s = StatusIdle
	case "match":
		*s = StatusMatch
	case "mismatch":
		*s = StatusMismatch
	default:
		return fmt.Errorf("unknown verification status %q", text)
	}
	return nil
}

// Verification is the result of checking content against the vault. Match is
// set only when Status is StatusMatch.
type Verification struct {
	Status      Status        `json:"status"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	Size        int64         `json:"size,omitempty"`
	Match       *vault.Record `json:"match,omitempty"`
}

// Matched reports whether a stored proof was found.
func (v Verification) Matched() bool {
	return v.Status == StatusMatch && v.Match != nil
}
