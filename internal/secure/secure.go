// Package secure provides randomness and key-material hygiene helpers shared
// by every QuantumShield component.
//
// All random number generation uses crypto/rand, which sources entropy from
// the operating system's CSPRNG. It is shared read-only and assumed to be
// non-blocking and well-seeded.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
)

// Reader is the cryptographically secure randomness source used throughout
// the library. Tests may substitute a deterministic reader; production code
// must never do so.
var Reader io.Reader = rand.Reader

// Random fills b with cryptographically secure random bytes.
//
// An error here means the system's random number generator failed, which
// should be treated as a critical system failure.
func Random(b []byte) error {
	if _, err := io.ReadFull(Reader, b); err != nil {
		return qerrors.NewCryptoError("secure.Random", err)
	}
	return nil
}

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := Random(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MustRandomBytes returns n cryptographically secure random bytes and panics
// if the CSPRNG fails. Use only where CSPRNG failure must be unrecoverable.
func MustRandomBytes(n int) []byte {
	b, err := RandomBytes(n)
	if err != nil {
		panic("secure: failed to read from CSPRNG: " + err.Error())
	}
	return b
}

// ConstantTimeCompare compares two byte slices in constant time.
// Slices of different lengths compare unequal.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites b with zeros to erase secret material before its
// storage is released.
//
// Note: the Go runtime may have copied the data elsewhere. Zeroize is
// best-effort hygiene, not an OS-level memory protection.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeAll overwrites multiple byte slices with zeros.
func ZeroizeAll(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
