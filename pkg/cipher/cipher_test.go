package cipher_test

import (
	"bytes"
	"testing"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/pkg/cipher"
)

func newCipher(t *testing.T) *cipher.Cipher {
	t.Helper()
	c, err := cipher.New([]byte("this is a test shared secret for encryption"))
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	plaintexts := [][]byte{
		{},
		[]byte("x"),
		[]byte("Hello, quantum world!"),
		bytes.Repeat([]byte("block"), 1000),
	}

	for _, pt := range plaintexts {
		ct, err := c.Encrypt(pt)
		if err != nil {
			t.Fatalf("Encrypt(%d bytes) failed: %v", len(pt), err)
		}
		if len(ct) != len(pt)+cipher.Overhead {
			t.Errorf("ciphertext length: got %d, want %d", len(ct), len(pt)+cipher.Overhead)
		}

		got, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if !bytes.Equal(got, pt) {
			t.Errorf("round trip mismatch for %d-byte plaintext", len(pt))
		}
	}
}

func TestKnownCiphertextLength(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	ct, err := c.Encrypt([]byte("Hello, quantum world!"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(ct) != 77 {
		t.Errorf("ciphertext length: got %d, want 77", len(ct))
	}
}

func TestEmptyPlaintext(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	ct, err := c.Encrypt(nil)
	if err != nil {
		t.Fatalf("Encrypt(empty) failed: %v", err)
	}
	if len(ct) != 56 {
		t.Errorf("empty plaintext ciphertext: got %d bytes, want 56", len(ct))
	}

	pt, err := c.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if len(pt) != 0 {
		t.Errorf("decrypted plaintext: got %d bytes, want 0", len(pt))
	}
}

func TestLargePlaintext(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	pt := make([]byte, 1<<20)
	for i := range pt {
		pt[i] = byte(i)
	}

	ct, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt(1 MiB) failed: %v", err)
	}
	got, err := c.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt(1 MiB) failed: %v", err)
	}
	if !bytes.Equal(got, pt) {
		t.Error("1 MiB round trip mismatch")
	}
}

func TestCiphertextRandomness(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	pt := []byte("Hello!")
	a, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext should differ")
	}

	for _, ct := range [][]byte{a, b} {
		got, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if !bytes.Equal(got, pt) {
			t.Error("decryption mismatch")
		}
	}
}

func TestAADRoundTrip(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	pt := []byte("payload")
	aad := []byte("header-v1")

	ct, err := c.EncryptWithAAD(pt, aad)
	if err != nil {
		t.Fatalf("EncryptWithAAD failed: %v", err)
	}

	got, err := c.DecryptWithAAD(ct, aad)
	if err != nil {
		t.Fatalf("DecryptWithAAD failed: %v", err)
	}
	if !bytes.Equal(got, pt) {
		t.Error("AAD round trip mismatch")
	}

	if _, err := c.DecryptWithAAD(ct, []byte("header-v2")); !qerrors.Is(err, qerrors.ErrDecryption) {
		t.Errorf("wrong AAD: got err %v, want ErrDecryption", err)
	}
	if _, err := c.DecryptWithAAD(ct, nil); !qerrors.Is(err, qerrors.ErrDecryption) {
		t.Errorf("missing AAD: got err %v, want ErrDecryption", err)
	}
}

func TestBitFlipDetected(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	ct, err := c.Encrypt([]byte("integrity matters"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	for _, pos := range []int{0, 11, 12, len(ct) / 2, len(ct) - 1} {
		tampered := make([]byte, len(ct))
		copy(tampered, ct)
		tampered[pos] ^= 0x01

		if _, err := c.Decrypt(tampered); !qerrors.Is(err, qerrors.ErrDecryption) {
			t.Errorf("bit flip at %d: got err %v, want ErrDecryption", pos, err)
		}
	}
}

func TestShortCiphertext(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	for _, n := range []int{0, 1, 28, 55} {
		if _, err := c.Decrypt(make([]byte, n)); !qerrors.Is(err, qerrors.ErrInvalidCiphertext) {
			t.Errorf("%d-byte ciphertext: got err %v, want ErrInvalidCiphertext", n, err)
		}
	}

	// Exactly 56 bytes is structurally valid but fails authentication.
	if _, err := c.Decrypt(make([]byte, 56)); !qerrors.Is(err, qerrors.ErrDecryption) {
		t.Errorf("garbage 56-byte ciphertext: got err %v, want ErrDecryption", err)
	}
}

func TestEmptySharedSecret(t *testing.T) {
	if _, err := cipher.New(nil); !qerrors.Is(err, qerrors.ErrInvalidKey) {
		t.Errorf("nil secret: got err %v, want ErrInvalidKey", err)
	}
	if _, err := cipher.New([]byte{}); !qerrors.Is(err, qerrors.ErrInvalidKey) {
		t.Errorf("empty secret: got err %v, want ErrInvalidKey", err)
	}
}

func TestSealOpenAliases(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	pt := []byte("sealed payload")
	ct, err := c.Seal(pt)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	got, err := c.Open(ct)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got, pt) {
		t.Error("Seal/Open round trip mismatch")
	}
}

func TestOverhead(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	if c.Overhead() != 56 {
		t.Errorf("Overhead: got %d, want 56", c.Overhead())
	}
	if cipher.Overhead != 56 {
		t.Errorf("package Overhead: got %d, want 56", cipher.Overhead)
	}
}

func TestKeyRotation(t *testing.T) {
	c := newCipher(t)
	defer c.Close()

	phase1, err := c.Encrypt([]byte("phase 1"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if err := c.RotateKeys(); err != nil {
		t.Fatalf("RotateKeys failed: %v", err)
	}

	phase2, err := c.Encrypt([]byte("phase 2"))
	if err != nil {
		t.Fatalf("Encrypt after rotation failed: %v", err)
	}

	if _, err := c.Decrypt(phase1); !qerrors.Is(err, qerrors.ErrDecryption) {
		t.Errorf("pre-rotation ciphertext: got err %v, want ErrDecryption", err)
	}

	got, err := c.Decrypt(phase2)
	if err != nil {
		t.Fatalf("Decrypt after rotation failed: %v", err)
	}
	if !bytes.Equal(got, []byte("phase 2")) {
		t.Error("post-rotation round trip mismatch")
	}
}

func TestIndependentCiphersShareSecret(t *testing.T) {
	secret := []byte("shared between sender and receiver")

	sender, err := cipher.New(secret)
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	defer sender.Close()
	receiver, err := cipher.New(secret)
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	defer receiver.Close()

	ct, err := sender.Encrypt([]byte("cross-instance"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	got, err := receiver.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, []byte("cross-instance")) {
		t.Error("ciphers from the same secret should interoperate")
	}
}

func TestDifferentSecretsCannotDecrypt(t *testing.T) {
	a, err := cipher.New([]byte("secret a"))
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	defer a.Close()
	b, err := cipher.New([]byte("secret b"))
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	defer b.Close()

	ct, err := a.Encrypt([]byte("for a only"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := b.Decrypt(ct); !qerrors.Is(err, qerrors.ErrDecryption) {
		t.Errorf("foreign ciphertext: got err %v, want ErrDecryption", err)
	}
}
