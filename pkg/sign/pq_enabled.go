//go:build !qshield_nopq

// This file is compiled unless the "qshield_nopq" build tag is specified.
// It binds the ML-DSA-65 backend from cloudflare/circl.
package sign

import (
	"crypto/ed25519"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
)

// PQAvailable reports whether the post-quantum signature backend is
// compiled in.
func PQAvailable() bool { return true }

func warnPQUnavailable() {}

// generateKeyPairPQ generates an ML-DSA-65 primary key pair and an Ed25519
// secondary key pair.
func generateKeyPairPQ() (*PublicKey, *SecretKey, error) {
	mlPub, mlPriv, err := mldsa65.GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateKeyPair", qerrors.ErrSignature, err)
	}
	mlPubBytes, err := mlPub.MarshalBinary()
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateKeyPair", qerrors.ErrSignature, err)
	}
	mlPrivBytes, err := mlPriv.MarshalBinary()
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateKeyPair", qerrors.ErrSignature, err)
	}

	edPub, edPriv, err := ed25519.GenerateKey(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("sign.GenerateKeyPair", qerrors.ErrSignature, err)
	}

	return &PublicKey{
			Primary:   mlPubBytes,
			Secondary: edPub,
			Scheme:    SchemePQ,
		}, &SecretKey{
			primary:   mlPrivBytes,
			secondary: edPriv,
			scheme:    SchemePQ,
		}, nil
}

// mldsaSign produces a deterministic ML-DSA-65 signature over hash.
func mldsaSign(privBytes, hash []byte) ([]byte, error) {
	priv := new(mldsa65.PrivateKey)
	if err := priv.UnmarshalBinary(privBytes); err != nil {
		return nil, qerrors.Wrap("sign.mldsaSign", qerrors.ErrInvalidKey, err)
	}

	sig := make([]byte, mldsa65.SignatureSize)
	if err := mldsa65.SignTo(priv, hash, nil, false, sig); err != nil {
		return nil, qerrors.Wrap("sign.mldsaSign", qerrors.ErrSignature, err)
	}
	return sig, nil
}

// mldsaVerify reports whether sig is a valid ML-DSA-65 signature over hash.
func mldsaVerify(pubBytes, hash, sig []byte) bool {
	pub := new(mldsa65.PublicKey)
	if err := pub.UnmarshalBinary(pubBytes); err != nil {
		return false
	}
	return mldsa65.Verify(pub, hash, nil, sig)
}
