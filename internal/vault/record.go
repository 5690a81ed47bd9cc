package vault

import (
	"fmt"
	"strings"
	"time"

	"originx/internal/fingerprint"
)

// DefaultLabel is used when a record is created without a usable label.
const DefaultLabel = "Untitled Creation"

// Record is a proof of creation: the fingerprint of some content and the
// moment it was registered. The content itself is never stored.
type Record struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
}

// NormalizeLabel trims label and substitutes DefaultLabel when nothing is left.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultLabel
	}
	return label
}

// DisplayLabel returns the label to show for r. Legacy records may carry an
// empty label.
func (r Record) DisplayLabel() string {
	return NormalizeLabel(r.Label)
}

// Validate checks the invariants every stored record must satisfy.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidRecord)
	}
	if !fingerprint.Valid(r.Fingerprint) {
		return fmt.Errorf("%w: fingerprint %q is not 64 lowercase hex characters", ErrInvalidRecord, r.Fingerprint)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is missing", ErrInvalidRecord)
	}
	return nil
}
