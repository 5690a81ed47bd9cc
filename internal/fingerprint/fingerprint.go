package fingerprint

import (
	"context"
	"crypto"
	_ "crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnavailableCryptoProvider is returned when the SHA-256 implementation is
// not linked into the binary.
var ErrUnavailableCryptoProvider = errors.New("secure digest provider unavailable")

// Length is the number of hex characters in a fingerprint.
const Length = 64

const chunkSize = 64 * 1024

// digester binds the hash used for fingerprints. Only SHA-256 is used in
// production; tests swap in an unlinked algorithm to exercise the
// unavailable-provider path.
type digester struct {
	algo crypto.Hash
}

var sha256Digester = digester{algo: crypto.SHA256}

// Text returns the fingerprint of the UTF-8 bytes of s.
func Text(s string) (string, error) {
	return sha256Digester.sum([]byte(s))
}

// Bytes returns the fingerprint of data.
func Bytes(data []byte) (string, error) {
	return sha256Digester.sum(data)
}

// Reader streams r into the digest and returns the fingerprint with the
// number of bytes consumed. ctx is checked between chunks.
func Reader(ctx context.Context, r io.Reader) (string, int64, error) {
	return sha256Digester.stream(ctx, r)
}

// File fingerprints the contents of the file at path.
func File(ctx context.Context, path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum, n, err := sha256Digester.stream(ctx, f)
	if err != nil {
		return "", n, fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, n, nil
}

// Valid reports whether s is a well-formed fingerprint: exactly 64 lowercase
// hex characters.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (d digester) sum(data []byte) (string, error) {
	if !d.algo.Available() {
		return "", ErrUnavailableCryptoProvider
	}
	h := d.algo.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (d digester) stream(ctx context.Context, r io.Reader) (string, int64, error) {
	if !d.algo.Available() {
		return "", 0, ErrUnavailableCryptoProvider
	}
	if r == nil {
		return "", 0, errors.New("nil reader")
	}

	h := d.algo.New()
	buf := make([]byte, chunkSize)
	var total int64
	for {
		select {
		case <-ctx.Done():
			return "", total, ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", total, err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), total, nil
}
