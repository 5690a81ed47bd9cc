package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "vault_corrupted").
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check or do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldFingerprint is the standardized key for content fingerprints.
	FieldFingerprint = "fingerprint"
	// FieldRecordID is the standardized key for proof record identifiers.
	FieldRecordID = "record_id"
	// FieldSlot is the standardized key for the storage slot (path or key) of a vault.
	FieldSlot = "slot"
)
