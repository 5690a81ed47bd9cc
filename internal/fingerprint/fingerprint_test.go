package fingerprint

import (
	"context"
	"crypto"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloWorldDigest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestTextKnownVector(t *testing.T) {
	got, err := Text("hello world")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != helloWorldDigest {
		t.Fatalf("unexpected fingerprint: %s", got)
	}
}

func TestTextDeterministic(t *testing.T) {
	inputs := []string{"", "a", "hello world", "naïve café ☕", strings.Repeat("x", 100000)}
	for _, in := range inputs {
		first, err := Text(in)
		if err != nil {
			t.Fatalf("Text(%q): %v", in, err)
		}
		second, err := Text(in)
		if err != nil {
			t.Fatalf("Text(%q) second call: %v", in, err)
		}
		if first != second {
			t.Fatalf("fingerprint not deterministic for %q: %s vs %s", in, first, second)
		}
		if !Valid(first) {
			t.Fatalf("fingerprint %q is not 64 lowercase hex chars", first)
		}
	}
}

func TestEmptyAndNonEmptyDiffer(t *testing.T) {
	empty, err := Text("")
	if err != nil {
		t.Fatalf("Text empty: %v", err)
	}
	nonEmpty, err := Text("x")
	if err != nil {
		t.Fatalf("Text non-empty: %v", err)
	}
	if !Valid(empty) || !Valid(nonEmpty) {
		t.Fatalf("expected valid digests, got %q and %q", empty, nonEmpty)
	}
	if empty == nonEmpty {
		t.Fatal("empty and non-empty content must not share a fingerprint")
	}
	if empty != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("unexpected empty digest: %s", empty)
	}
}

func TestSingleByteDifference(t *testing.T) {
	a, _ := Text("hello world")
	b, _ := Text("hello worle")
	if a == b {
		t.Fatal("one-byte change produced identical fingerprints")
	}
}

func TestTextMatchesBytes(t *testing.T) {
	fromText, err := Text("hello world")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	fromBytes, err := Bytes([]byte("hello world"))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if fromText != fromBytes {
		t.Fatalf("text and byte fingerprints differ: %s vs %s", fromText, fromBytes)
	}
}

func TestReaderMatchesBytes(t *testing.T) {
	content := strings.Repeat("originx", 30000) // spans several chunks
	want, _ := Text(content)
	got, n, err := Reader(context.Background(), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if got != want {
		t.Fatalf("Reader fingerprint mismatch: %s vs %s", got, want)
	}
	if n != int64(len(content)) {
		t.Fatalf("unexpected byte count: %d", n)
	}
}

func TestReaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Reader(ctx, strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, n, err := File(context.Background(), path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != helloWorldDigest {
		t.Fatalf("unexpected fingerprint: %s", got)
	}
	if n != 11 {
		t.Fatalf("unexpected size: %d", n)
	}
}

func TestFileMissing(t *testing.T) {
	_, _, err := File(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestUnavailableProvider(t *testing.T) {
	// MD4 lives in x/crypto and is never linked into this binary.
	d := digester{algo: crypto.MD4}
	if _, err := d.sum([]byte("data")); !errors.Is(err, ErrUnavailableCryptoProvider) {
		t.Fatalf("expected ErrUnavailableCryptoProvider, got %v", err)
	}
	if _, _, err := d.stream(context.Background(), strings.NewReader("data")); !errors.Is(err, ErrUnavailableCryptoProvider) {
		t.Fatalf("expected ErrUnavailableCryptoProvider from stream, got %v", err)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{helloWorldDigest, true},
		{strings.ToUpper(helloWorldDigest), false},
		{helloWorldDigest[:63], false},
		{helloWorldDigest + "0", false},
		{"not-a-real-hash", false},
		{"", false},
		{strings.Repeat("g", 64), false},
	}
	for _, tc := range cases {
		if got := Valid(tc.in); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
