package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/quantumshield/quantum-shield-go/pkg/cipher"
	"github.com/quantumshield/quantum-shield-go/pkg/kdf"
	"github.com/quantumshield/quantum-shield-go/pkg/kem"
	"github.com/quantumshield/quantum-shield-go/pkg/sign"
)

func demoCommand() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "print intermediate values")
	_ = fs.Parse(os.Args[2:])

	fmt.Println("QuantumShield Demo")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("Post-quantum KEM backend:       %v\n", kem.PQAvailable())
	fmt.Printf("Post-quantum signature backend: %v\n", sign.PQAvailable())
	fmt.Println()

	demoKEM(*verbose)
	demoCipher(*verbose)
	demoSign(*verbose)
	demoKDF(*verbose)
}

func demoKEM(verbose bool) {
	fmt.Println("1. Hybrid KEM (X25519 + ML-KEM-768)")
	fmt.Println("-----------------------------------")

	pub, sec, err := kem.GenerateKeyPair()
	if err != nil {
		fatal("key generation failed", err)
	}
	defer sec.Zeroize()

	ct, ssA, err := kem.Encapsulate(pub)
	if err != nil {
		fatal("encapsulation failed", err)
	}
	ssB, err := kem.Decapsulate(sec, ct)
	if err != nil {
		fatal("decapsulation failed", err)
	}

	fmt.Printf("  public key:    %d bytes\n", len(pub.Bytes()))
	fmt.Printf("  ciphertext:    %d bytes\n", len(ct.Bytes()))
	fmt.Printf("  shared secret: %d bytes, match=%v\n", len(ssA), string(ssA) == string(ssB))
	if verbose {
		fmt.Printf("  secret: %s\n", hex.EncodeToString(ssA[:16])+"...")
	}
	fmt.Println()
}

func demoCipher(verbose bool) {
	fmt.Println("2. Cascading Cipher (AES-256-GCM + ChaCha20-Poly1305)")
	fmt.Println("-----------------------------------------------------")

	c, err := cipher.New([]byte("demo shared secret"))
	if err != nil {
		fatal("cipher setup failed", err)
	}
	defer c.Close()

	plaintext := []byte("Hello, quantum world!")
	sealed, err := c.Encrypt(plaintext)
	if err != nil {
		fatal("encryption failed", err)
	}
	opened, err := c.Decrypt(sealed)
	if err != nil {
		fatal("decryption failed", err)
	}

	fmt.Printf("  plaintext:  %d bytes\n", len(plaintext))
	fmt.Printf("  ciphertext: %d bytes (overhead %d)\n", len(sealed), c.Overhead())
	fmt.Printf("  round trip: %v\n", string(opened) == string(plaintext))

	if err := c.RotateKeys(); err != nil {
		fatal("key rotation failed", err)
	}
	if _, err := c.Decrypt(sealed); err != nil {
		fmt.Println("  after rotation: old ciphertext rejected (forward secrecy)")
	}
	if verbose {
		fmt.Printf("  ciphertext: %s\n", hex.EncodeToString(sealed[:24])+"...")
	}
	fmt.Println()
}

func demoSign(verbose bool) {
	fmt.Println("3. Dual Signatures (ML-DSA-65 + Ed25519)")
	fmt.Println("----------------------------------------")

	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		fatal("key generation failed", err)
	}
	defer sec.Zeroize()

	message := []byte("signed by QuantumShield")
	sig, err := sign.Sign(sec, message)
	if err != nil {
		fatal("signing failed", err)
	}

	fmt.Printf("  scheme:      %s\n", sig.Scheme)
	fmt.Printf("  signature:   %d bytes\n", len(sig.Bytes()))
	fmt.Printf("  verify:      %v\n", sign.Verify(pub, message, sig))
	fmt.Printf("  tampered:    %v\n", sign.Verify(pub, []byte("signed by someone else"), sig))
	fmt.Printf("  fingerprint: %s\n", hex.EncodeToString(pub.Fingerprint()[:8])+"...")
	if verbose {
		fmt.Printf("  public key: %d bytes\n", len(pub.Bytes()))
	}
	fmt.Println()
}

func demoKDF(verbose bool) {
	fmt.Println("4. Key Derivation (HKDF-SHA-512 + Argon2id)")
	fmt.Println("-------------------------------------------")

	k := kdf.NewWithConfig(kdf.LowMemoryConfig())

	salt, err := k.GenerateSalt(32)
	if err != nil {
		fatal("salt generation failed", err)
	}
	key, err := k.DeriveFromPassword([]byte("correct horse battery staple"), salt, 32)
	if err != nil {
		fatal("password derivation failed", err)
	}

	fmt.Printf("  password key: %d bytes\n", len(key))

	derived, err := k.Derive([]byte("input keying material"), []byte{}, []byte("demo-context"), 64)
	if err != nil {
		fatal("derivation failed", err)
	}
	dk := kdf.NewDerivedKey(derived)
	defer dk.Zeroize()

	parts, err := dk.Split(32, 32)
	if err != nil {
		fatal("split failed", err)
	}
	fmt.Printf("  derived %dB, split into %d sub-keys\n", dk.Len(), len(parts))
	if verbose {
		fmt.Printf("  salt: %s\n", hex.EncodeToString(salt))
	}
	fmt.Println()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
