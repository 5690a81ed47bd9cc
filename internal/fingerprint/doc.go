// Package fingerprint computes content fingerprints for proof records.
//
// This package has no originx-specific dependencies and could be extracted
// as a standalone library.
//
// A fingerprint is the lowercase hex SHA-256 digest of the exact byte
// sequence supplied. Text is hashed as its UTF-8 bytes, buffers and files are
// hashed as-is. The algorithm is fixed: when SHA-256 is not available in the
// running binary the functions return ErrUnavailableCryptoProvider rather
// than falling back to a weaker hash.
//
// Primary entry points:
//   - Text / Bytes: in-memory content
//   - Reader / File: streamed content, cancellable between chunks
//   - Valid: format check for a 64-character lowercase hex digest
package fingerprint
