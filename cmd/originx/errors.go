package main

import (
	"errors"
	"fmt"

	"originx/internal/fingerprint"
	"originx/internal/proof"
	"originx/internal/vault"
)

const exitMismatch = 2

// exitCodeError carries a non-default exit status. A nil err exits quietly.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

// errMismatch signals a verification that found no proof. The result has
// already been printed.
var errMismatch = &exitCodeError{code: exitMismatch}

// describeError adds an operator hint to the errors users can act on.
func describeError(err error) string {
	switch {
	case errors.Is(err, fingerprint.ErrUnavailableCryptoProvider):
		return fmt.Sprintf("cannot generate fingerprint here: %v", err)
	case errors.Is(err, proof.ErrEmptyInput):
		return fmt.Sprintf("%v: pass --text, --file, or pipe content on stdin", err)
	case errors.Is(err, proof.ErrConflictingInput):
		return fmt.Sprintf("%v: use only one of --text, --file, or stdin", err)
	case errors.Is(err, vault.ErrUnsupportedSchema):
		return fmt.Sprintf("%v: upgrade originx to read this vault", err)
	case errors.Is(err, vault.ErrStorageCorrupted):
		return fmt.Sprintf("%v: restore the vault from a backup or run `originx vault reset`", err)
	default:
		return err.Error()
	}
}
