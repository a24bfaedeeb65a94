// Package sign implements the QuantumShield dual digital signature scheme.
//
// Every signature carries two sub-signatures over the same domain-separated
// SHA3-256 pre-hash, and verification succeeds only when both verify:
//
//   - Scheme "pq": ML-DSA-65 (NIST FIPS 204) primary + Ed25519 secondary.
//   - Scheme "classical": two independent Ed25519 key pairs, used as the
//     fallback when the post-quantum backend is compiled out. Key generation
//     emits a diagnostic warning in that case.
//
// The pre-hash binds the message length, and optionally a caller-supplied
// timestamp, under distinct domain tags. Timestamp policy is opaque to this
// package: it only binds the value into the signed hash; freshness windows
// belong to callers.
package sign

import (
	"crypto/ed25519"
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
	"github.com/quantumshield/quantum-shield-go/internal/wire"
)

// Scheme identifies the algorithm combination of a key pair or signature.
type Scheme uint8

// Supported schemes. The zero value is the classical fallback so that
// zero-initialized objects never claim post-quantum protection.
const (
	// SchemeClassical is the dual Ed25519 combination.
	SchemeClassical Scheme = iota

	// SchemePQ is the ML-DSA-65 + Ed25519 combination.
	SchemePQ
)

// String returns the wire identifier of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemePQ:
		return constants.SchemeNamePQ
	case SchemeClassical:
		return constants.SchemeNameClassical
	default:
		return "unknown"
	}
}

// parseScheme maps a wire identifier back to a Scheme.
func parseScheme(name string) (Scheme, error) {
	switch name {
	case constants.SchemeNamePQ:
		return SchemePQ, nil
	case constants.SchemeNameClassical:
		return SchemeClassical, nil
	default:
		return 0, qerrors.NewCryptoError("sign.parseScheme", qerrors.ErrParse)
	}
}

// PublicKey is a dual verification key. It carries no secret material.
type PublicKey struct {
	// Primary is the primary verification key: ML-DSA-65 under SchemePQ,
	// Ed25519 under SchemeClassical.
	Primary []byte

	// Secondary is the Ed25519 verification key.
	Secondary []byte

	// Scheme is the algorithm combination.
	Scheme Scheme
}

// SecretKey is a dual signing key. It owns its key material and must be
// scrubbed with Zeroize when no longer needed.
type SecretKey struct {
	primary   []byte
	secondary []byte
	scheme    Scheme
}

// Scheme returns the algorithm combination of the signing key.
func (sk *SecretKey) Scheme() Scheme {
	return sk.scheme
}

// Signature is a combined dual signature. The Scheme must match the
// verifying public key's scheme; a mismatch fails verification.
type Signature struct {
	// Primary is the primary sub-signature.
	Primary []byte

	// Secondary is the Ed25519 sub-signature.
	Secondary []byte

	// Scheme is the algorithm combination.
	Scheme Scheme

	// Timestamp is the optional signing timestamp (Unix seconds), bound
	// into the signed hash when present.
	Timestamp *uint64
}

// GenerateKeyPair generates a new dual signing key pair.
//
// With the post-quantum backend compiled in, the primary algorithm is
// ML-DSA-65. Otherwise two independent Ed25519 key pairs are generated and
// a diagnostic warning is emitted.
func GenerateKeyPair() (*PublicKey, *SecretKey, error) {
	if PQAvailable() {
		return generateKeyPairPQ()
	}
	warnPQUnavailable()
	return GenerateClassicalKeyPair()
}

// GenerateClassicalKeyPair generates a dual Ed25519 key pair regardless of
// post-quantum availability. Intended for interoperating with peers that
// lack a post-quantum backend.
func GenerateClassicalKeyPair() (*PublicKey, *SecretKey, error) {
	pub1, priv1, err := ed25519.GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateClassicalKeyPair", qerrors.ErrSignature, err)
	}
	pub2, priv2, err := ed25519.GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateClassicalKeyPair", qerrors.ErrSignature, err)
	}

	return &PublicKey{
			Primary:   pub1,
			Secondary: pub2,
			Scheme:    SchemeClassical,
		}, &SecretKey{
			primary:   priv1,
			secondary: priv2,
			scheme:    SchemeClassical,
		}, nil
}

// Sign signs a message with both algorithms.
func Sign(sk *SecretKey, message []byte) (*Signature, error) {
	h := hashMessage(message)
	return signHash(sk, h, nil)
}

// SignWithTimestamp signs a message with both algorithms, binding the given
// Unix timestamp into the signed hash.
func SignWithTimestamp(sk *SecretKey, message []byte, timestamp uint64) (*Signature, error) {
	h := hashMessageWithTimestamp(message, timestamp)
	return signHash(sk, h, &timestamp)
}

func signHash(sk *SecretKey, hash []byte, timestamp *uint64) (*Signature, error) {
	if sk == nil {
		return nil, qerrors.NewCryptoError("sign.Sign", qerrors.ErrInvalidKey)
	}

	var primary []byte
	var err error
	switch sk.scheme {
	case SchemePQ:
		primary, err = mldsaSign(sk.primary, hash)
	case SchemeClassical:
		primary, err = ed25519Sign(sk.primary, hash)
	default:
		err = qerrors.NewCryptoError("sign.Sign", qerrors.ErrSignature)
	}
	if err != nil {
		return nil, err
	}

	secondary, err := ed25519Sign(sk.secondary, hash)
	if err != nil {
		return nil, err
	}

	return &Signature{
		Primary:   primary,
		Secondary: secondary,
		Scheme:    sk.scheme,
		Timestamp: timestamp,
	}, nil
}

// Verify reports whether sig is a valid dual signature over message.
//
// Both sub-signatures must verify, and the signature's scheme must match
// the public key's scheme. Verification never returns an error: any
// failure, including malformed input, reports false.
func Verify(pk *PublicKey, message []byte, sig *Signature) bool {
	if pk == nil || sig == nil {
		return false
	}
	if pk.Scheme != sig.Scheme {
		return false
	}

	var h []byte
	if sig.Timestamp != nil {
		h = hashMessageWithTimestamp(message, *sig.Timestamp)
	} else {
		h = hashMessage(message)
	}

	switch sig.Scheme {
	case SchemePQ:
		if !mldsaVerify(pk.Primary, h, sig.Primary) {
			return false
		}
	case SchemeClassical:
		if !ed25519Verify(pk.Primary, h, sig.Primary) {
			return false
		}
	default:
		return false
	}

	return ed25519Verify(pk.Secondary, h, sig.Secondary)
}

// Fingerprint computes the SHA3-256 fingerprint of a verification key for
// out-of-band comparison.
func (pk *PublicKey) Fingerprint() []byte {
	h := sha3.New256()
	h.Write([]byte(constants.DomainFingerprint))
	h.Write(pk.Primary)
	h.Write(pk.Secondary)
	return h.Sum(nil)
}

// Equal reports whether two verification keys have identical contents.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pk.Scheme == other.Scheme &&
		secure.ConstantTimeCompare(pk.Primary, other.Primary) &&
		secure.ConstantTimeCompare(pk.Secondary, other.Secondary)
}

// Zeroize scrubs the signing key material. The SecretKey must not be used
// afterwards.
func (sk *SecretKey) Zeroize() {
	secure.ZeroizeAll(sk.primary, sk.secondary)
	sk.primary = nil
	sk.secondary = nil
}

// --- Message pre-hashing ---

// hashMessage computes SHA3-256("QShieldSign-v1" || len(msg) || msg) with
// the length as a little-endian uint64.
func hashMessage(message []byte) []byte {
	h := sha3.New256()
	h.Write([]byte(constants.DomainSigning))
	h.Write(uint64LE(uint64(len(message))))
	h.Write(message)
	return h.Sum(nil)
}

// hashMessageWithTimestamp computes
// SHA3-256("QShieldSign-ts-v1" || ts || len(msg) || msg).
func hashMessageWithTimestamp(message []byte, timestamp uint64) []byte {
	h := sha3.New256()
	h.Write([]byte(constants.DomainSigningTimestamp))
	h.Write(uint64LE(timestamp))
	h.Write(uint64LE(uint64(len(message))))
	h.Write(message)
	return h.Sum(nil)
}

func uint64LE(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

// --- Ed25519 helpers ---

func ed25519Sign(priv, hash []byte) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, qerrors.NewCryptoError("sign.ed25519Sign", qerrors.ErrInvalidKey)
	}
	return ed25519.Sign(ed25519.PrivateKey(priv), hash), nil
}

func ed25519Verify(pub, hash, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), hash, sig)
}

// --- Serialization ---

// signatureFlagTimestamp marks a timestamp-bearing signature. The remaining
// flag bits are reserved and must be zero.
const signatureFlagTimestamp uint16 = 0x0001

// Bytes serializes the public key to the length-prefixed wire format.
func (pk *PublicKey) Bytes() []byte {
	return wire.NewBuilder(12 + len(pk.Primary) + len(pk.Secondary)).
		String(pk.Scheme.String()).
		Bytes(pk.Primary).
		Bytes(pk.Secondary).
		Build()
}

// ParsePublicKey parses a public key from the wire format.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	scheme, primary, secondary, err := parseKeyFields(data)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Primary: primary, Secondary: secondary, Scheme: scheme}, nil
}

// Bytes serializes the secret key to the length-prefixed wire format.
// The output contains secret material; never write it to untrusted sinks,
// and scrub the buffer after use.
func (sk *SecretKey) Bytes() []byte {
	return wire.NewBuilder(12 + len(sk.primary) + len(sk.secondary)).
		String(sk.scheme.String()).
		Bytes(sk.primary).
		Bytes(sk.secondary).
		Build()
}

// ParseSecretKey parses a secret key from the wire format.
func ParseSecretKey(data []byte) (*SecretKey, error) {
	scheme, primary, secondary, err := parseKeyFields(data)
	if err != nil {
		return nil, err
	}
	return &SecretKey{primary: primary, secondary: secondary, scheme: scheme}, nil
}

func parseKeyFields(data []byte) (Scheme, []byte, []byte, error) {
	r := wire.NewReader(data)
	name, err := r.String()
	if err != nil {
		return 0, nil, nil, err
	}
	scheme, err := parseScheme(name)
	if err != nil {
		return 0, nil, nil, err
	}
	primary, err := r.Bytes()
	if err != nil {
		return 0, nil, nil, err
	}
	secondary, err := r.Bytes()
	if err != nil {
		return 0, nil, nil, err
	}
	return scheme, primary, secondary, nil
}

// Bytes serializes the signature to the length-prefixed wire format.
func (sig *Signature) Bytes() []byte {
	var flags uint16
	if sig.Timestamp != nil {
		flags |= signatureFlagTimestamp
	}

	b := wire.NewBuilder(22 + len(sig.Primary) + len(sig.Secondary)).
		Uint16(flags).
		String(sig.Scheme.String()).
		Bytes(sig.Primary).
		Bytes(sig.Secondary)
	if sig.Timestamp != nil {
		b.Uint64(*sig.Timestamp)
	}
	return b.Build()
}

// ParseSignature parses a signature from the wire format.
func ParseSignature(data []byte) (*Signature, error) {
	r := wire.NewReader(data)
	flags, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	name, err := r.String()
	if err != nil {
		return nil, err
	}
	scheme, err := parseScheme(name)
	if err != nil {
		return nil, err
	}
	primary, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	secondary, err := r.Bytes()
	if err != nil {
		return nil, err
	}

	sig := &Signature{Primary: primary, Secondary: secondary, Scheme: scheme}
	if flags&signatureFlagTimestamp != 0 {
		ts, err := r.Uint64()
		if err != nil {
			return nil, err
		}
		sig.Timestamp = &ts
	}
	return sig, nil
}
