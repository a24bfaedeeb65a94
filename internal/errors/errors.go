// Package errors defines the error taxonomy for the QuantumShield library.
// Error messages never include key material or other secrets, and
// authentication failures deliberately carry no detail about why the tag
// check failed.
package errors

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Sentinel errors. The taxonomy is flat: every failure maps onto exactly one
// of these, and callers match with errors.Is.
var (
	// ErrInvalidKey indicates a key is malformed or zero-length where disallowed.
	ErrInvalidKey = errors.New("qshield: invalid key")

	// ErrEncryption indicates an AEAD encryption operation failed.
	ErrEncryption = errors.New("qshield: encryption failed")

	// ErrDecryption indicates AEAD decryption or tag verification failed.
	// All tag-mismatch cases produce this same error.
	ErrDecryption = errors.New("qshield: decryption failed")

	// ErrInvalidCiphertext indicates ciphertext is too short or structurally impossible.
	ErrInvalidCiphertext = errors.New("qshield: invalid ciphertext")

	// ErrKeyDerivation indicates HKDF or Argon2id failure, or an oversized split.
	ErrKeyDerivation = errors.New("qshield: key derivation failed")

	// ErrSignature indicates signing-side failure. Verification never returns
	// an error; it reports false.
	ErrSignature = errors.New("qshield: signature operation failed")

	// ErrParse indicates deserialization of a wire object failed.
	ErrParse = errors.New("qshield: parse failed")
)

// CryptoError wraps a sentinel error with the name of the failing operation.
// It unwraps to the sentinel so errors.Is matching still works.
type CryptoError struct {
	Op  string // operation that failed
	Err error  // underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Wrap attaches an operation name and a sentinel to an underlying cause.
// The result matches both the sentinel and the cause under errors.Is.
func Wrap(op string, sentinel, cause error) error {
	return NewCryptoError(op, fmt.Errorf("%w: %w", sentinel, cause))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// WarnHandler receives non-fatal diagnostic warnings, most notably the
// post-quantum-unavailable notice issued at key generation time. The
// condition is a warning rather than an error: the library continues with
// classical-only primitives, and callers that require post-quantum security
// must check the capability probes themselves.
type WarnHandler func(msg string)

var (
	warnMu      sync.RWMutex
	warnHandler WarnHandler = func(msg string) {
		fmt.Fprintln(os.Stderr, "qshield: warning: "+msg)
	}
)

// SetWarnHandler replaces the diagnostic warning sink. A nil handler
// silences warnings.
func SetWarnHandler(h WarnHandler) {
	warnMu.Lock()
	defer warnMu.Unlock()
	if h == nil {
		h = func(string) {}
	}
	warnHandler = h
}

// Warn delivers a diagnostic warning to the registered handler.
func Warn(msg string) {
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	h(msg)
}
