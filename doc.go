// Package quantumshield provides hybrid classical/post-quantum cryptography
// for defense-in-depth against both classical and quantum adversaries.
//
// QuantumShield composes every primitive from a classical algorithm and a
// post-quantum algorithm, so breaking one still leaves the other protecting
// the data:
//
//   - Hybrid KEM: X25519 (RFC 7748) + ML-KEM-768 (NIST FIPS 203)
//   - Dual signatures: ML-DSA-65 (NIST FIPS 204) + Ed25519 (RFC 8032)
//   - Cascading cipher: AES-256-GCM wrapped in ChaCha20-Poly1305
//   - Key derivation: HKDF-SHA-512, SHAKE-256 expansion, Argon2id passwords
//
// # Quick Start
//
// Establish a shared secret and encrypt with it:
//
//	import (
//		"github.com/quantumshield/quantum-shield-go/pkg/cipher"
//		"github.com/quantumshield/quantum-shield-go/pkg/kem"
//	)
//
//	pub, sec, _ := kem.GenerateKeyPair()
//	ct, sharedSecret, _ := kem.Encapsulate(pub)
//	recovered, _ := kem.Decapsulate(sec, ct)
//
//	c, _ := cipher.New(sharedSecret)
//	sealed, _ := c.Encrypt([]byte("hello"))
//	plain, _ := c.Decrypt(sealed)
//
// Sign and verify with the dual scheme:
//
//	import "github.com/quantumshield/quantum-shield-go/pkg/sign"
//
//	pub, sec, _ := sign.GenerateKeyPair()
//	sig, _ := sign.Sign(sec, []byte("message"))
//	ok := sign.Verify(pub, []byte("message"), sig)
//
// # Package Structure
//
//   - pkg/kem: hybrid key encapsulation
//   - pkg/sign: dual digital signatures
//   - pkg/cipher: cascading authenticated encryption
//   - pkg/kdf: key derivation, combination and password hashing
//   - pkg/metrics: structured logging and tracing for callers
//   - internal/constants: sizes and domain separation strings
//   - internal/errors: error taxonomy and diagnostic warnings
//
// # Post-Quantum Availability
//
// The post-quantum backend is compiled in by default. Building with the
// qshield_nopq tag removes it; the library then operates classical-only,
// emits a diagnostic warning at key generation, and interoperates with
// hybrid peers through empty post-quantum wire fields. Callers that require
// post-quantum protection must check kem.PQAvailable and sign.PQAvailable.
//
// # Key Material Hygiene
//
// Secret-bearing objects (KEM and signing secret keys, cipher states,
// derived keys) own their buffers and scrub them with zeros on Zeroize or
// Close. Shared secrets returned to callers are the caller's to scrub.
//
// # References
//
//   - NIST FIPS 203: Module-Lattice-Based Key-Encapsulation Mechanism Standard
//   - NIST FIPS 204: Module-Lattice-Based Digital Signature Standard
//   - RFC 5869: HMAC-based Extract-and-Expand Key Derivation Function
//   - RFC 7748: Elliptic Curves for Security
//   - RFC 8032: Edwards-Curve Digital Signature Algorithm
//   - RFC 9106: Argon2 Memory-Hard Function for Password Hashing
package quantumshield
