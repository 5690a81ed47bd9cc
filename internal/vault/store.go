package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"originx/internal/config"
	"originx/internal/logging"
)

// CorruptionPolicy decides what the store does with a blob it cannot decode.
type CorruptionPolicy int

const (
	// ResetOnCorruption treats a corrupted blob as an empty vault. List and
	// FindByFingerprint return nothing and the next Save starts over.
	ResetOnCorruption CorruptionPolicy = iota
	// FailOnCorruption returns the *CorruptionError to the caller.
	FailOnCorruption
)

// ParseCorruptionPolicy maps the vault.on_corruption config value.
func ParseCorruptionPolicy(value string) (CorruptionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", config.CorruptionReset:
		return ResetOnCorruption, nil
	case config.CorruptionFail:
		return FailOnCorruption, nil
	default:
		return ResetOnCorruption, fmt.Errorf("unknown corruption policy %q", value)
	}
}

func (p CorruptionPolicy) String() string {
	if p == FailOnCorruption {
		return config.CorruptionFail
	}
	return config.CorruptionReset
}

// Store is the proof vault: an ordered, newest-first collection of records
// persisted as one blob through a Backend.
type Store struct {
	backend Backend
	policy  CorruptionPolicy
	logger  *slog.Logger
	mu      sync.Mutex
}

// New returns a store over backend.
func New(backend Backend, policy CorruptionPolicy, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "vault")
	return &Store{
		backend: backend,
		policy:  policy,
		logger:  logger.With(logging.String(logging.FieldSlot, backendName(backend))),
	}
}

// Policy reports the corruption policy the store was built with.
func (s *Store) Policy() CorruptionPolicy {
	return s.policy
}

// Backend returns the persistence adapter.
func (s *Store) Backend() Backend {
	return s.backend
}

// Load reads and decodes the vault without applying the corruption policy.
// An absent slot is an empty vault.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	blob, ok, err := s.backend.ReadBlob(ctx)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	if !ok {
		return []Record{}, nil
	}
	records, err := decodeBlob(blob)
	if err != nil {
		return nil, s.annotate(err)
	}
	return records, nil
}

// List returns every record, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	records, err := s.Load(ctx)
	if err == nil {
		return records, nil
	}
	if s.recoverable(err) {
		s.warnCorrupted(err, "vault treated as empty until the next save")
		return []Record{}, nil
	}
	return nil, err
}

// FindByFingerprint returns the most recently saved record whose fingerprint
// equals target exactly.
func (s *Store) FindByFingerprint(ctx context.Context, target string) (Record, bool, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Record{}, false, err
	}
	for _, record := range records {
		if record.Fingerprint == target {
			return record, true, nil
		}
	}
	return Record{}, false, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Save validates record and stores it at the front of the vault. Records
// sharing a fingerprint are allowed; records sharing an id are not.
func (s *Store) Save(ctx context.Context, record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	mutate := func(blob []byte, ok bool) ([]byte, error) {
		var current []Record
		if ok {
			decoded, err := decodeBlob(blob)
			if err != nil {
				err = s.annotate(err)
				if !s.recoverable(err) {
					return nil, err
				}
				s.warnCorrupted(err, "previous records discarded; vault reset with the new record")
			}
			current = decoded
		}
		for _, existing := range current {
			if existing.ID == record.ID {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
			}
		}
		next := make([]Record, 0, len(current)+1)
		next = append(next, record)
		next = append(next, current...)
		return encodeBlob(next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if updater, ok := s.backend.(Updater); ok {
		err = updater.Update(ctx, mutate)
	} else {
		err = s.readModifyWrite(ctx, mutate)
	}
	if err != nil {
		logging.ErrorWithContext(s.logger, "proof record not saved", "vault_save_failed",
			logging.String(logging.FieldRecordID, record.ID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, saveFailureHint(err)))
		return fmt.Errorf("save proof record: %w", err)
	}

	s.logger.Debug("proof record saved",
		logging.String(logging.FieldRecordID, record.ID),
		logging.String(logging.FieldFingerprint, record.Fingerprint))
	return nil
}

// Reset replaces the vault with an empty collection.
func (s *Store) Reset(ctx context.Context) error {
	blob, err := encodeBlob(nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.WriteBlob(ctx, blob); err != nil {
		return fmt.Errorf("reset vault: %w", err)
	}
	s.logger.Info("vault reset", logging.String(logging.FieldEventType, "vault_reset"))
	return nil
}

// Close releases the backend when it holds resources.
func (s *Store) Close() error {
	if closer, ok := s.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Store) readModifyWrite(ctx context.Context, fn UpdateFunc) error {
	blob, ok, err := s.backend.ReadBlob(ctx)
	if err != nil {
		return fmt.Errorf("read vault: %w", err)
	}
	next, err := fn(blob, ok)
	if err != nil {
		return err
	}
	return s.backend.WriteBlob(ctx, next)
}

func (s *Store) recoverable(err error) bool {
	return s.policy == ResetOnCorruption && errors.Is(err, ErrStorageCorrupted)
}

func (s *Store) annotate(err error) error {
	var corruption *CorruptionError
	if errors.As(err, &corruption) && corruption.Slot == "" {
		corruption.Slot = backendName(s.backend)
	}
	return err
}

func (s *Store) warnCorrupted(err error, impact string) {
	logging.WarnWithContext(s.logger, "vault storage corrupted",
		"vault_corrupted",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect or restore the vault slot; set vault.on_corruption = \"fail\" to stop instead"),
		logging.String(logging.FieldImpact, impact),
	)
}

func saveFailureHint(err error) string {
	switch {
	case errors.Is(err, ErrConcurrentUpdate):
		return "another writer saved first; run the command again"
	case errors.Is(err, ErrDuplicateID):
		return "record ids must be unique; create the proof again for a fresh id"
	case errors.Is(err, ErrStorageCorrupted), errors.Is(err, ErrUnsupportedSchema):
		return "inspect the vault slot or run originx vault reset"
	default:
		return "check that the vault backend is reachable and writable"
	}
}

func backendName(backend Backend) string {
	if named, ok := backend.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", backend)
}
