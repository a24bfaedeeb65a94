//go:build qshield_nopq

// This file is compiled when the "qshield_nopq" build tag is specified.
// Signatures then fall back to two independent Ed25519 key pairs, and
// signatures from "pq"-scheme peers cannot be verified.
package sign

import (
	"sync"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
)

// PQAvailable reports whether the post-quantum signature backend is
// compiled in.
func PQAvailable() bool { return false }

var warnOnce sync.Once

func warnPQUnavailable() {
	warnOnce.Do(func() {
		qerrors.Warn("post-quantum backend not compiled in; " +
			"signatures are using dual Ed25519 only, which is NOT post-quantum secure")
	})
}

func generateKeyPairPQ() (*PublicKey, *SecretKey, error) {
	warnPQUnavailable()
	return GenerateClassicalKeyPair()
}

func mldsaSign(privBytes, hash []byte) ([]byte, error) {
	return nil, qerrors.NewCryptoError("sign.mldsaSign", qerrors.ErrSignature)
}

func mldsaVerify(pubBytes, hash, sig []byte) bool {
	return false
}
