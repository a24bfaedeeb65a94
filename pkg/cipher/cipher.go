// Package cipher implements the QuantumShield cascading authenticated cipher.
//
// Data is encrypted through two independent AEAD layers: first AES-256-GCM,
// then ChaCha20-Poly1305. The two ciphers rest on different mathematical
// foundations (substitution-permutation network vs ARX), so a break in one
// still leaves the data protected by the other.
//
// Layer keys are derived independently from the input shared secret using
// HKDF with domain separation. Each layer draws a fresh random 12-byte nonce
// per message and prepends it to its ciphertext:
//
//	inner  = aes_nonce (12B) || AES-256-GCM(plaintext)
//	output = chacha_nonce (12B) || ChaCha20-Poly1305(inner)
//
// The total overhead is exactly 56 bytes per message: two nonces plus two
// 16-byte authentication tags.
package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
	"github.com/quantumshield/quantum-shield-go/pkg/kdf"
)

// Exported sizes of the cascading construction.
const (
	// AESKeySize is the size of the AES-256 layer key in bytes.
	AESKeySize = constants.AESKeySize

	// AESNonceSize is the size of the AES-GCM nonce in bytes.
	AESNonceSize = constants.AESNonceSize

	// AESTagSize is the size of the AES-GCM authentication tag in bytes.
	AESTagSize = constants.AESTagSize

	// ChaChaKeySize is the size of the ChaCha20-Poly1305 layer key in bytes.
	ChaChaKeySize = constants.ChaChaKeySize

	// ChaChaNonceSize is the size of the ChaCha20-Poly1305 nonce in bytes.
	ChaChaNonceSize = constants.ChaChaNonceSize

	// ChaChaTagSize is the size of the Poly1305 authentication tag in bytes.
	ChaChaTagSize = constants.ChaChaTagSize

	// KeySize is the total derived key material: both layer keys.
	KeySize = constants.QShieldKeySize

	// Overhead is the exact number of bytes added to every plaintext.
	Overhead = constants.QShieldOverhead
)

// Cipher is a cascading AEAD bound to keys derived from a shared secret.
//
// A Cipher is not safe for concurrent use: Encrypt and Decrypt hold no
// locks, and RotateKeys replaces the key material in place. Concurrent
// callers must use distinct instances or synchronize externally.
type Cipher struct {
	aesKey    []byte
	chachaKey []byte
	aes       stdcipher.AEAD
	chacha    stdcipher.AEAD
}

// New creates a cascading cipher from a shared secret of any non-empty
// length. The secret is expanded to two independent 32-byte layer keys via
// HKDF with domain separation.
func New(sharedSecret []byte) (*Cipher, error) {
	if len(sharedSecret) == 0 {
		return nil, qerrors.NewCryptoError("cipher.New", qerrors.ErrInvalidKey)
	}

	derived, err := kdf.New().Derive(
		sharedSecret,
		[]byte{}, // empty salt: the shared secret already carries the entropy
		[]byte(constants.DomainCascade),
		constants.QShieldKeySize,
	)
	if err != nil {
		return nil, qerrors.Wrap("cipher.New", qerrors.ErrInvalidKey, err)
	}

	c := &Cipher{}
	if err := c.installKeys(derived); err != nil {
		secure.Zeroize(derived)
		return nil, err
	}
	return c, nil
}

// installKeys takes ownership of 64 bytes of key material and builds the
// two AEAD instances.
func (c *Cipher) installKeys(material []byte) error {
	aesKey := material[:constants.AESKeySize]
	chachaKey := material[constants.AESKeySize:]

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return qerrors.Wrap("cipher.installKeys", qerrors.ErrInvalidKey, err)
	}
	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return qerrors.Wrap("cipher.installKeys", qerrors.ErrInvalidKey, err)
	}
	chacha, err := chacha20poly1305.New(chachaKey)
	if err != nil {
		return qerrors.Wrap("cipher.installKeys", qerrors.ErrInvalidKey, err)
	}

	c.aesKey = aesKey
	c.chachaKey = chachaKey
	c.aes = aead
	c.chacha = chacha
	return nil
}

// Encrypt encrypts plaintext through both layers with no associated data.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	return c.EncryptWithAAD(plaintext, nil)
}

// Decrypt decrypts a cascaded ciphertext with no associated data.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.DecryptWithAAD(ciphertext, nil)
}

// EncryptWithAAD encrypts plaintext through both layers. The associated
// data is authenticated, but not encrypted, by each layer.
func (c *Cipher) EncryptWithAAD(plaintext, aad []byte) ([]byte, error) {
	// Inner layer: AES-256-GCM.
	inner := make([]byte, constants.AESNonceSize, constants.AESNonceSize+len(plaintext)+constants.AESTagSize)
	if err := secure.Random(inner[:constants.AESNonceSize]); err != nil {
		return nil, qerrors.Wrap("cipher.Encrypt", qerrors.ErrEncryption, err)
	}
	inner = c.aes.Seal(inner, inner[:constants.AESNonceSize], plaintext, aad)

	// Outer layer: ChaCha20-Poly1305 over the whole inner blob.
	out := make([]byte, constants.ChaChaNonceSize, constants.ChaChaNonceSize+len(inner)+constants.ChaChaTagSize)
	if err := secure.Random(out[:constants.ChaChaNonceSize]); err != nil {
		return nil, qerrors.Wrap("cipher.Encrypt", qerrors.ErrEncryption, err)
	}
	out = c.chacha.Seal(out, out[:constants.ChaChaNonceSize], inner, aad)

	return out, nil
}

// DecryptWithAAD reverses both layers. The associated data must match the
// value supplied at encryption time. Any authentication failure, at either
// layer, yields the same ErrDecryption.
func (c *Cipher) DecryptWithAAD(ciphertext, aad []byte) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, qerrors.NewCryptoError("cipher.Decrypt", qerrors.ErrInvalidCiphertext)
	}

	nonce := ciphertext[:constants.ChaChaNonceSize]
	inner, err := c.chacha.Open(nil, nonce, ciphertext[constants.ChaChaNonceSize:], aad)
	if err != nil {
		return nil, qerrors.NewCryptoError("cipher.Decrypt", qerrors.ErrDecryption)
	}

	if len(inner) < constants.AESNonceSize+constants.AESTagSize {
		return nil, qerrors.NewCryptoError("cipher.Decrypt", qerrors.ErrDecryption)
	}
	aesNonce := inner[:constants.AESNonceSize]
	plaintext, err := c.aes.Open(nil, aesNonce, inner[constants.AESNonceSize:], aad)
	if err != nil {
		return nil, qerrors.NewCryptoError("cipher.Decrypt", qerrors.ErrDecryption)
	}

	return plaintext, nil
}

// Seal encrypts plaintext with no associated data. Alias for Encrypt.
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	return c.Encrypt(plaintext)
}

// Open decrypts a sealed ciphertext. Alias for Decrypt.
func (c *Cipher) Open(ciphertext []byte) ([]byte, error) {
	return c.Decrypt(ciphertext)
}

// Overhead returns the per-message overhead in bytes.
func (c *Cipher) Overhead() int {
	return Overhead
}

// RotateKeys derives fresh layer keys from the current ones, scrubs the old
// keys, and installs the new ones. Ciphertexts produced before rotation can
// no longer be decrypted; rotation is the forward-secrecy mechanism.
func (c *Cipher) RotateKeys() error {
	current := make([]byte, 0, constants.QShieldKeySize)
	current = append(current, c.aesKey...)
	current = append(current, c.chachaKey...)
	defer secure.Zeroize(current)

	derived, err := kdf.New().Derive(
		current,
		nil, // random salt: rotation does not need to be reproducible
		[]byte(constants.DomainRotate),
		constants.QShieldKeySize,
	)
	if err != nil {
		return qerrors.Wrap("cipher.RotateKeys", qerrors.ErrKeyDerivation, err)
	}

	secure.ZeroizeAll(c.aesKey, c.chachaKey)
	if err := c.installKeys(derived); err != nil {
		secure.Zeroize(derived)
		return err
	}
	return nil
}

// Close scrubs the key material. The Cipher must not be used afterwards.
func (c *Cipher) Close() {
	secure.ZeroizeAll(c.aesKey, c.chachaKey)
	c.aes = nil
	c.chacha = nil
}
