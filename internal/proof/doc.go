// Package proof implements the proof-of-creation workflows on top of the
// vault: creating a record for some content, verifying content against the
// stored records, and looking up a known fingerprint.
//
// Content is fingerprinted locally and only the digest is persisted. Blank
// text is rejected before hashing and a stream that yields no bytes is
// rejected after. A named file is hashed whatever its size, so an empty file
// has the SHA-256 of empty input.
package proof
