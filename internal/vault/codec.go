package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// SlotName is the versioned key under which the vault blob is stored.
	SlotName = "originx_proofs_v1"
	// SchemaName identifies originx vault envelopes.
	SchemaName = "originx.proofs"
	// SchemaVersion is the envelope version written by this build.
	SchemaVersion = 1
)

type envelope struct {
	Schema  string          `json:"schema"`
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

type envelopeOut struct {
	Schema  string   `json:"schema"`
	Version int      `json:"version"`
	Records []Record `json:"records"`
}

// encodeBlob serializes records, newest first, into the current envelope.
func encodeBlob(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(envelopeOut{
		Schema:  SchemaName,
		Version: SchemaVersion,
		Records: records,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal vault: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeBlob parses and structurally validates a persisted blob. An empty
// blob is an empty vault. Parse and validation failures are returned as
// *CorruptionError; a newer envelope version as ErrUnsupportedSchema.
func decodeBlob(blob []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return []Record{}, nil
	}

	var raw []byte
	switch trimmed[0] {
	case '[':
		raw = trimmed
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &CorruptionError{Cause: fmt.Errorf("parse envelope: %w", err)}
		}
		if env.Schema != SchemaName {
			return nil, &CorruptionError{Cause: fmt.Errorf("unexpected schema %q", env.Schema)}
		}
		if env.Version > SchemaVersion {
			return nil, fmt.Errorf("%w: blob is version %d, this build reads up to %d", ErrUnsupportedSchema, env.Version, SchemaVersion)
		}
		if env.Version < 1 {
			return nil, &CorruptionError{Cause: fmt.Errorf("invalid envelope version %d", env.Version)}
		}
		raw = bytes.TrimSpace(env.Records)
		if len(raw) == 0 || raw[0] != '[' {
			return nil, &CorruptionError{Cause: errors.New("records must be an array")}
		}
	default:
		return nil, &CorruptionError{Cause: errors.New("blob is neither an envelope nor an array")}
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &CorruptionError{Cause: fmt.Errorf("parse records: %w", err)}
	}
	if err := validateRecords(records); err != nil {
		return nil, &CorruptionError{Cause: err}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func validateRecords(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[record.ID]; dup {
			return fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, record.ID)
		}
		seen[record.ID] = struct{}{}
	}
	return nil
}
