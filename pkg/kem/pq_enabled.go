//go:build !qshield_nopq

// This file is compiled unless the "qshield_nopq" build tag is specified.
// It binds the ML-KEM-768 backend from cloudflare/circl.
package kem

import (
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
)

// PQAvailable reports whether the post-quantum KEM backend is compiled in.
func PQAvailable() bool { return true }

func warnPQUnavailable() {}

// mlkemGenerate generates an ML-KEM-768 key pair and returns the packed
// encapsulation and decapsulation keys.
func mlkemGenerate() (pub, priv []byte, err error) {
	pk, sk, err := mlkem768.GenerateKeyPair(secure.Reader)
	if err != nil {
		return nil, nil, qerrors.Wrap("kem.mlkemGenerate", qerrors.ErrInvalidKey, err)
	}

	pub = make([]byte, mlkem768.PublicKeySize)
	pk.Pack(pub)
	priv = make([]byte, mlkem768.PrivateKeySize)
	sk.Pack(priv)
	return pub, priv, nil
}

// mlkemEncapsulate encapsulates to a packed ML-KEM-768 encapsulation key.
func mlkemEncapsulate(pubBytes []byte) (ct, ss []byte, err error) {
	if len(pubBytes) != constants.MLKEMPublicKeySize {
		return nil, nil, qerrors.NewCryptoError("kem.mlkemEncapsulate", qerrors.ErrInvalidKey)
	}

	pk := new(mlkem768.PublicKey)
	if err := pk.Unpack(pubBytes); err != nil {
		return nil, nil, qerrors.Wrap("kem.mlkemEncapsulate", qerrors.ErrInvalidKey, err)
	}

	seed := make([]byte, mlkem768.EncapsulationSeedSize)
	if err := secure.Random(seed); err != nil {
		return nil, nil, qerrors.NewCryptoError("kem.mlkemEncapsulate", err)
	}

	ct = make([]byte, mlkem768.CiphertextSize)
	ss = make([]byte, mlkem768.SharedKeySize)
	pk.EncapsulateTo(ct, ss, seed)
	return ct, ss, nil
}

// mlkemDecapsulate decapsulates an ML-KEM-768 ciphertext with a packed
// decapsulation key. Implicit rejection inside ML-KEM means a mismatched
// ciphertext yields a pseudo-random secret rather than an error.
func mlkemDecapsulate(privBytes, ct []byte) ([]byte, error) {
	if len(privBytes) != constants.MLKEMPrivateKeySize {
		return nil, qerrors.NewCryptoError("kem.mlkemDecapsulate", qerrors.ErrInvalidKey)
	}
	if len(ct) != constants.MLKEMCiphertextSize {
		return nil, qerrors.NewCryptoError("kem.mlkemDecapsulate", qerrors.ErrInvalidCiphertext)
	}

	sk := new(mlkem768.PrivateKey)
	if err := sk.Unpack(privBytes); err != nil {
		return nil, qerrors.Wrap("kem.mlkemDecapsulate", qerrors.ErrInvalidKey, err)
	}

	ss := make([]byte, mlkem768.SharedKeySize)
	sk.DecapsulateTo(ss, ct)
	return ss, nil
}

// mlkemPublicFromPrivate recovers the packed encapsulation key embedded in
// an ML-KEM-768 decapsulation key.
func mlkemPublicFromPrivate(privBytes []byte) ([]byte, error) {
	if len(privBytes) != constants.MLKEMPrivateKeySize {
		return nil, qerrors.NewCryptoError("kem.mlkemPublicFromPrivate", qerrors.ErrInvalidKey)
	}

	sk := new(mlkem768.PrivateKey)
	if err := sk.Unpack(privBytes); err != nil {
		return nil, qerrors.Wrap("kem.mlkemPublicFromPrivate", qerrors.ErrInvalidKey, err)
	}

	pk, ok := sk.Public().(*mlkem768.PublicKey)
	if !ok {
		return nil, qerrors.NewCryptoError("kem.mlkemPublicFromPrivate", qerrors.ErrInvalidKey)
	}
	pub := make([]byte, mlkem768.PublicKeySize)
	pk.Pack(pub)
	return pub, nil
}
