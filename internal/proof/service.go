package proof

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"originx/internal/fingerprint"
	"originx/internal/logging"
	"originx/internal/vault"
)

// Vault is the subset of *vault.Store the workflow needs.
type Vault interface {
	Save(ctx context.Context, record vault.Record) error
	List(ctx context.Context) ([]vault.Record, error)
	FindByFingerprint(ctx context.Context, target string) (vault.Record, bool, error)
}

// Service runs the create, verify and lookup workflows against a vault.
type Service struct {
	vault  Vault
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the record id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires a workflow service to v.
func NewService(v Vault, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Service{
		vault:  v,
		logger: logging.NewComponentLogger(logger, "proof"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fingerprint computes the digest of content without touching the vault.
func (s *Service) Fingerprint(ctx context.Context, content Content) (Digest, error) {
	return content.digest(ctx)
}

// Create fingerprints content and stores a new proof record for it. A blank
// label is replaced with vault.DefaultLabel.
func (s *Service) Create(ctx context.Context, content Content, label string) (vault.Record, error) {
	d, err := content.digest(ctx)
	if err != nil {
		return vault.Record{}, err
	}

	record := vault.Record{
		ID:          s.newID(),
		Fingerprint: d.Fingerprint,
		Timestamp:   s.now().UTC(),
		Label:       vault.NormalizeLabel(label),
	}
	if err := s.vault.Save(ctx, record); err != nil {
		return vault.Record{}, err
	}

	s.logger.Info("proof created",
		logging.String(logging.FieldEventType, "proof_created"),
		logging.String(logging.FieldRecordID, record.ID),
		logging.String(logging.FieldFingerprint, record.Fingerprint),
		logging.String("source", d.Source),
		logging.Int64("size_bytes", d.Size))
	return record, nil
}

// Verify fingerprints content and reports whether a stored proof matches.
func (s *Service) Verify(ctx context.Context, content Content) (Verification, error) {
	d, err := content.digest(ctx)
	if err != nil {
		return Verification{}, err
	}
	v, err := s.match(ctx, d.Fingerprint)
	if err != nil {
		return Verification{}, err
	}
	v.Size = d.Size
	return v, nil
}

// Lookup checks an already computed fingerprint against the vault. Input is
// trimmed and lowercased before matching.
func (s *Service) Lookup(ctx context.Context, fp string) (Verification, error) {
	fp = strings.ToLower(strings.TrimSpace(fp))
	if !fingerprint.Valid(fp) {
		return Verification{}, fmt.Errorf("%w: %q", ErrInvalidFingerprint, fp)
	}
	return s.match(ctx, fp)
}

// List returns every stored proof, newest first.
func (s *Service) List(ctx context.Context) ([]vault.Record, error) {
	return s.vault.List(ctx)
}

func (s *Service) match(ctx context.Context, fp string) (Verification, error) {
	record, ok, err := s.vault.FindByFingerprint(ctx, fp)
	if err != nil {
		return Verification{}, fmt.Errorf("lookup fingerprint: %w", err)
	}
	if !ok {
		s.logger.Debug("no matching proof", logging.String(logging.FieldFingerprint, fp))
		return Verification{Status: StatusMismatch, Fingerprint: fp}, nil
	}
	s.logger.Debug("matching proof found",
		logging.String(logging.FieldFingerprint, fp),
		logging.String(logging.FieldRecordID, record.ID))
	return Verification{Status: StatusMatch, Fingerprint: fp, Match: &record}, nil
}
