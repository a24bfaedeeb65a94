// Package kem implements the QuantumShield hybrid key encapsulation
// mechanism.
//
// The hybrid KEM combines X25519 (RFC 7748) with ML-KEM-768 (NIST FIPS 203).
// Both components produce a shared secret, and the two are combined through
// the domain-separated KDF, so an adversary must break both algorithms to
// recover the final secret.
//
// When the post-quantum backend is compiled out (build tag qshield_nopq),
// key generation emits a diagnostic warning and the ML-KEM fields stay
// empty; the wire format carries empty post-quantum fields so classical-only
// and hybrid deployments interoperate at a defined (classical) security
// level. Callers that require post-quantum protection must treat
// PQAvailable() == false as fatal themselves.
//
// Mismatched key material, tampered ciphertexts, and mismatched PQ/non-PQ
// components do not produce errors: decapsulation yields a different
// pseudo-random secret, and the upstream authenticated cipher detects the
// mismatch via AEAD failure.
package kem

import (
	"bytes"
	"crypto/ecdh"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
	"github.com/quantumshield/quantum-shield-go/internal/wire"
	"github.com/quantumshield/quantum-shield-go/pkg/kdf"
)

// SharedSecretSize is the size of the combined shared secret in bytes,
// fixed regardless of post-quantum availability.
const SharedSecretSize = constants.QShieldSharedSecretSize

// PublicKey is a hybrid KEM public key. It carries no secret material and
// may be freely copied and shared.
type PublicKey struct {
	// X25519 is the 32-byte X25519 public key.
	X25519 []byte

	// MLKEM is the ML-KEM-768 encapsulation key, empty when the key pair
	// was generated without a post-quantum backend.
	MLKEM []byte
}

// SecretKey is a hybrid KEM secret key. It owns its key material and must
// be scrubbed with Zeroize when no longer needed.
type SecretKey struct {
	x25519 []byte
	mlkem  []byte

	// mlkemPublic caches the encapsulation key generated alongside the
	// secret so PublicKey can round-trip without backend recovery.
	mlkemPublic []byte
}

// Ciphertext is a hybrid KEM ciphertext: the encapsulator's ephemeral
// X25519 public key plus the ML-KEM ciphertext. Non-secret and single-use.
type Ciphertext struct {
	// X25519 is the 32-byte ephemeral X25519 public key.
	X25519 []byte

	// MLKEM is the ML-KEM-768 ciphertext, empty in classical-only mode.
	MLKEM []byte
}

// GenerateKeyPair generates a new hybrid key pair.
//
// The X25519 component is always present. The ML-KEM-768 component is
// generated when the post-quantum backend is available; otherwise a
// diagnostic warning is emitted and the fields stay empty.
func GenerateKeyPair() (*PublicKey, *SecretKey, error) {
	priv, err := ecdh.X25519().GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("kem.GenerateKeyPair", qerrors.ErrInvalidKey, err)
	}

	mlPub, mlPriv, err := mlkemGenerate()
	if err != nil {
		return nil, nil, err
	}
	if !PQAvailable() {
		warnPQUnavailable()
	}

	pub := &PublicKey{
		X25519: priv.PublicKey().Bytes(),
		MLKEM:  mlPub,
	}
	sec := &SecretKey{
		x25519:      priv.Bytes(),
		mlkem:       mlPriv,
		mlkemPublic: mlPub,
	}
	return pub, sec, nil
}

// Encapsulate produces a fresh shared secret for the holder of sec.
//
// An ephemeral X25519 key pair is generated for each call, and the ML-KEM
// component is used whenever the public key carries one and the backend is
// available. The returned secret is always SharedSecretSize bytes.
func Encapsulate(pub *PublicKey) (*Ciphertext, []byte, error) {
	if pub == nil || len(pub.X25519) != constants.X25519PublicKeySize {
		return nil, nil, qerrors.NewCryptoError("kem.Encapsulate", qerrors.ErrInvalidKey)
	}

	curve := ecdh.X25519()
	eph, err := curve.GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.NewCryptoError("kem.Encapsulate", err)
	}
	peer, err := curve.NewPublicKey(pub.X25519)
	if err != nil {
		return nil, nil, qerrors.Wrap("kem.Encapsulate", qerrors.ErrInvalidKey, err)
	}
	ssX, err := eph.ECDH(peer)
	if err != nil {
		return nil, nil, qerrors.NewCryptoError("kem.Encapsulate", err)
	}
	defer secure.Zeroize(ssX)

	var ctML, ssML []byte
	if len(pub.MLKEM) > 0 && PQAvailable() {
		ctML, ssML, err = mlkemEncapsulate(pub.MLKEM)
		if err != nil {
			return nil, nil, err
		}
		defer secure.Zeroize(ssML)
	}

	ss, err := combineSecrets(ssX, ssML)
	if err != nil {
		return nil, nil, err
	}

	ct := &Ciphertext{
		X25519: eph.PublicKey().Bytes(),
		MLKEM:  ctML,
	}
	return ct, ss, nil
}

// Decapsulate recovers the shared secret from a ciphertext.
//
// If encapsulation and decapsulation used matching key material and an
// untampered ciphertext, the outputs are byte-equal. Otherwise the result
// is a different pseudo-random secret with no distinguishing error.
func Decapsulate(sec *SecretKey, ct *Ciphertext) ([]byte, error) {
	if sec == nil || len(sec.x25519) != constants.X25519PrivateKeySize {
		return nil, qerrors.NewCryptoError("kem.Decapsulate", qerrors.ErrInvalidKey)
	}
	if ct == nil || len(ct.X25519) != constants.X25519PublicKeySize {
		return nil, qerrors.NewCryptoError("kem.Decapsulate", qerrors.ErrInvalidCiphertext)
	}

	curve := ecdh.X25519()
	priv, err := curve.NewPrivateKey(sec.x25519)
	if err != nil {
		return nil, qerrors.Wrap("kem.Decapsulate", qerrors.ErrInvalidKey, err)
	}
	peer, err := curve.NewPublicKey(ct.X25519)
	if err != nil {
		return nil, qerrors.Wrap("kem.Decapsulate", qerrors.ErrInvalidCiphertext, err)
	}
	ssX, err := priv.ECDH(peer)
	if err != nil {
		return nil, qerrors.NewCryptoError("kem.Decapsulate", err)
	}
	defer secure.Zeroize(ssX)

	var ssML []byte
	if len(sec.mlkem) > 0 && len(ct.MLKEM) > 0 && PQAvailable() {
		ssML, err = mlkemDecapsulate(sec.mlkem, ct.MLKEM)
		if err != nil {
			return nil, err
		}
		defer secure.Zeroize(ssML)
	}

	return combineSecrets(ssX, ssML)
}

// combineSecrets derives the final shared secret from the component
// secrets via the domain-separated KDF. The ML-KEM component is included
// only when present, so classical-only peers derive a consistent secret.
func combineSecrets(ssX, ssML []byte) ([]byte, error) {
	parts := [][]byte{ssX}
	if len(ssML) > 0 {
		parts = append(parts, ssML)
	}
	return kdf.New().Combine(parts, []byte(constants.DomainKEMCombine), SharedSecretSize)
}

// --- Serialization ---

// Bytes serializes the public key to the length-prefixed wire format.
func (pk *PublicKey) Bytes() []byte {
	return wire.NewBuilder(8 + len(pk.X25519) + len(pk.MLKEM)).
		Bytes(pk.X25519).
		Bytes(pk.MLKEM).
		Build()
}

// ParsePublicKey parses a public key from the wire format.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	r := wire.NewReader(data)
	x, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	ml, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return &PublicKey{X25519: x, MLKEM: ml}, nil
}

// Equal reports whether two public keys have identical serializations.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(pk.X25519, other.X25519) && bytes.Equal(pk.MLKEM, other.MLKEM)
}

// Bytes serializes the secret key to the length-prefixed wire format.
// The output contains secret material; never write it to untrusted sinks,
// and scrub the buffer after use.
func (sk *SecretKey) Bytes() []byte {
	return wire.NewBuilder(8 + len(sk.x25519) + len(sk.mlkem)).
		Bytes(sk.x25519).
		Bytes(sk.mlkem).
		Build()
}

// ParseSecretKey parses a secret key from the wire format.
func ParseSecretKey(data []byte) (*SecretKey, error) {
	r := wire.NewReader(data)
	x, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	ml, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return &SecretKey{x25519: x, mlkem: ml}, nil
}

// PublicKey returns the public key corresponding to sk.
//
// The X25519 component is always derivable. The ML-KEM component comes
// from the copy stored at generation time, or is recovered from the
// decapsulation key (FIPS 203 secret keys embed the encapsulation key).
func (sk *SecretKey) PublicKey() (*PublicKey, error) {
	priv, err := ecdh.X25519().NewPrivateKey(sk.x25519)
	if err != nil {
		return nil, qerrors.Wrap("kem.SecretKey.PublicKey", qerrors.ErrInvalidKey, err)
	}

	mlPub := sk.mlkemPublic
	if len(mlPub) == 0 && len(sk.mlkem) > 0 && PQAvailable() {
		mlPub, err = mlkemPublicFromPrivate(sk.mlkem)
		if err != nil {
			return nil, err
		}
		sk.mlkemPublic = mlPub
	}

	return &PublicKey{
		X25519: priv.PublicKey().Bytes(),
		MLKEM:  mlPub,
	}, nil
}

// Zeroize scrubs the secret key material. The SecretKey must not be used
// afterwards.
func (sk *SecretKey) Zeroize() {
	secure.ZeroizeAll(sk.x25519, sk.mlkem)
	sk.x25519 = nil
	sk.mlkem = nil
	sk.mlkemPublic = nil
}

// Bytes serializes the ciphertext to the length-prefixed wire format.
func (ct *Ciphertext) Bytes() []byte {
	return wire.NewBuilder(8 + len(ct.X25519) + len(ct.MLKEM)).
		Bytes(ct.X25519).
		Bytes(ct.MLKEM).
		Build()
}

// ParseCiphertext parses a ciphertext from the wire format.
func ParseCiphertext(data []byte) (*Ciphertext, error) {
	r := wire.NewReader(data)
	x, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	ml, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return &Ciphertext{X25519: x, MLKEM: ml}, nil
}
