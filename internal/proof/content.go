package proof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"originx/internal/fingerprint"
)

var (
	// ErrEmptyInput is returned when there is nothing to fingerprint.
	ErrEmptyInput = errors.New("content is empty")
	// ErrConflictingInput is returned when more than one content source is set.
	ErrConflictingInput = errors.New("content has more than one source")
	// ErrInvalidFingerprint is returned by Lookup for malformed digests.
	ErrInvalidFingerprint = errors.New("fingerprint must be 64 hex characters")
)

// Content is the material a proof is made from. Exactly one source is used.
// Text that is blank after trimming counts as empty, but non-blank text is
// hashed byte for byte including surrounding whitespace. A named file is
// always hashed, even when it has no bytes. A stream that yields nothing
// counts as empty.
type Content struct {
	Text   string
	Data   []byte
	Path   string
	Reader io.Reader
}

// Digest is the computed fingerprint and how many bytes produced it.
type Digest struct {
	Fingerprint string `json:"fingerprint"`
	Size        int64  `json:"size"`
	Source      string `json:"source"`
}

func (c Content) sources() int {
	n := 0
	if c.Text != "" {
		n++
	}
	if len(c.Data) > 0 {
		n++
	}
	if c.Path != "" {
		n++
	}
	if c.Reader != nil {
		n++
	}
	return n
}

// Validate rejects content with no usable source or more than one.
func (c Content) Validate() error {
	switch c.sources() {
	case 0:
		return ErrEmptyInput
	case 1:
	default:
		return ErrConflictingInput
	}
	if c.Text != "" && strings.TrimSpace(c.Text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// digest fingerprints c.
func (c Content) digest(ctx context.Context) (Digest, error) {
	if err := c.Validate(); err != nil {
		return Digest{}, err
	}

	var (
		d   Digest
		err error
	)
	switch {
	case c.Path != "":
		d.Source = "file"
		d.Fingerprint, d.Size, err = fingerprint.File(ctx, c.Path)
	case c.Reader != nil:
		d.Source = "stream"
		d.Fingerprint, d.Size, err = fingerprint.Reader(ctx, c.Reader)
	case len(c.Data) > 0:
		d.Source = "bytes"
		d.Size = int64(len(c.Data))
		d.Fingerprint, err = fingerprint.Bytes(c.Data)
	default:
		d.Source = "text"
		d.Size = int64(len(c.Text))
		d.Fingerprint, err = fingerprint.Text(c.Text)
	}
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprint %s: %w", d.Source, err)
	}
	if c.Reader != nil && d.Size == 0 {
		return Digest{}, fmt.Errorf("%w: nothing was read from the stream", ErrEmptyInput)
	}
	return d, nil
}
