//go:build qshield_nopq

// This file is compiled when the "qshield_nopq" build tag is specified.
// The KEM then operates in X25519-only mode: ML-KEM fields stay empty and a
// diagnostic warning is emitted at key generation.
package kem

import (
	"sync"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
)

// PQAvailable reports whether the post-quantum KEM backend is compiled in.
func PQAvailable() bool { return false }

var warnOnce sync.Once

func warnPQUnavailable() {
	warnOnce.Do(func() {
		qerrors.Warn("post-quantum backend not compiled in; " +
			"KEM is using X25519 only, which is NOT post-quantum secure")
	})
}

func mlkemGenerate() (pub, priv []byte, err error) {
	return nil, nil, nil
}

func mlkemEncapsulate(pubBytes []byte) (ct, ss []byte, err error) {
	return nil, nil, nil
}

func mlkemDecapsulate(privBytes, ct []byte) ([]byte, error) {
	return nil, nil
}

func mlkemPublicFromPrivate(privBytes []byte) ([]byte, error) {
	return nil, nil
}
