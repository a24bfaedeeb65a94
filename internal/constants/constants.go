// Package constants defines security parameters and wire-format constants for
// the QuantumShield hybrid cryptography library.
//
// Every primitive in QuantumShield pairs a classical algorithm with a
// post-quantum algorithm. The sizes below pin the byte-level contract of the
// library: shared secrets are always QShieldSharedSecretSize bytes, and the
// cascading cipher always adds exactly QShieldOverhead bytes per message.
package constants

// ML-KEM-768 parameters (NIST FIPS 203, Category 3 security).
const (
	// MLKEMPublicKeySize is the size of an ML-KEM-768 encapsulation key in bytes.
	MLKEMPublicKeySize = 1184

	// MLKEMPrivateKeySize is the size of an ML-KEM-768 decapsulation key in bytes.
	MLKEMPrivateKeySize = 2400

	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088

	// MLKEMSharedSecretSize is the size of the ML-KEM shared secret in bytes.
	MLKEMSharedSecretSize = 32
)

// X25519 parameters (RFC 7748).
const (
	// X25519PublicKeySize is the size of an X25519 public key in bytes.
	X25519PublicKeySize = 32

	// X25519PrivateKeySize is the size of an X25519 private key in bytes.
	X25519PrivateKeySize = 32

	// X25519SharedSecretSize is the size of an X25519 shared secret in bytes.
	X25519SharedSecretSize = 32
)

// ML-DSA-65 parameters (NIST FIPS 204, matching ML-KEM-768).
const (
	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = 1952

	// MLDSAPrivateKeySize is the size of an ML-DSA-65 private key in bytes.
	MLDSAPrivateKeySize = 4032

	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = 3309
)

// Ed25519 parameters (RFC 8032).
const (
	// Ed25519PublicKeySize is the size of an Ed25519 public key in bytes.
	Ed25519PublicKeySize = 32

	// Ed25519PrivateKeySize is the size of an Ed25519 private key in bytes
	// (seed plus public key, matching crypto/ed25519).
	Ed25519PrivateKeySize = 64

	// Ed25519SignatureSize is the size of an Ed25519 signature in bytes.
	Ed25519SignatureSize = 64
)

// Symmetric encryption parameters for the cascading cipher.
const (
	// AESKeySize is the size of AES-256 keys in bytes.
	AESKeySize = 32

	// AESNonceSize is the size of the AES-GCM nonce in bytes (96 bits).
	AESNonceSize = 12

	// AESTagSize is the size of the AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// ChaChaKeySize is the size of ChaCha20-Poly1305 keys in bytes.
	ChaChaKeySize = 32

	// ChaChaNonceSize is the size of the ChaCha20-Poly1305 nonce in bytes.
	ChaChaNonceSize = 12

	// ChaChaTagSize is the size of the Poly1305 authentication tag in bytes.
	ChaChaTagSize = 16
)

// Combined QuantumShield parameters.
const (
	// QShieldKeySize is the total cascading cipher key material:
	// one AES-256 key plus one ChaCha20 key.
	QShieldKeySize = AESKeySize + ChaChaKeySize

	// QShieldOverhead is the exact per-message overhead of the cascading
	// cipher: two nonces plus two authentication tags.
	QShieldOverhead = AESNonceSize + AESTagSize + ChaChaNonceSize + ChaChaTagSize

	// QShieldSharedSecretSize is the size of the hybrid KEM shared secret.
	// It is fixed regardless of whether the post-quantum component is present.
	QShieldSharedSecretSize = 64
)

// Domain separation strings. Each key-derivation context uses a unique tag so
// key material can never be reused across protocol purposes.
const (
	// DomainKEMCombine separates the hybrid KEM shared-secret combination.
	DomainKEMCombine = "QShieldKEM-v1"

	// DomainEncryption separates encryption key derivation.
	DomainEncryption = "QShieldEncrypt-v1"

	// DomainSigning separates signature message pre-hashing.
	DomainSigning = "QShieldSign-v1"

	// DomainSigningTimestamp separates timestamped signature pre-hashing.
	DomainSigningTimestamp = "QShieldSign-ts-v1"

	// DomainFingerprint separates signing public key fingerprints.
	DomainFingerprint = "QShieldSign-fingerprint-v1"

	// DomainHandshake is reserved for a future handshake protocol layer.
	// It must not be used for any other purpose.
	DomainHandshake = "QShieldHandshake-v1"

	// DomainSession is reserved for a future session protocol layer.
	// It must not be used for any other purpose.
	DomainSession = "QShieldSession-v1"

	// DomainPassword separates password-based key derivation.
	DomainPassword = "QShieldPassword-v1"

	// DomainPasswordFinal is the info string for the post-Argon2id HKDF step.
	DomainPasswordFinal = "QShieldPassword-final"

	// DomainCascade is the info string for cascading cipher key derivation.
	DomainCascade = "QuantumShield-cascade-v1"

	// DomainRotate is the info string for cascading cipher key rotation.
	DomainRotate = "QuantumShield-rotate-v1"
)

// Key derivation parameters.
const (
	// KDFSaltSize is the size of automatically generated HKDF salts in bytes.
	KDFSaltSize = 64

	// DefaultSaltSize is the default size of generated salts in bytes.
	DefaultSaltSize = 32

	// MaxPasswordKeyLength is the maximum output length of password-based
	// key derivation in bytes.
	MaxPasswordKeyLength = 1024
)

// Scheme identifiers carried in signature wire formats.
const (
	// SchemeNamePQ identifies the ML-DSA-65 + Ed25519 combination.
	SchemeNamePQ = "pq"

	// SchemeNameClassical identifies the dual Ed25519 combination.
	SchemeNameClassical = "classical"
)
