package kdf

import (
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/internal/secure"
)

// DerivedKey owns a buffer of derived key material. It can be split into
// sub-keys and must be scrubbed with Zeroize when no longer needed.
//
// Bytes returns copies so the owned buffer is never aliased by callers;
// comparisons between DerivedKeys run in constant time.
type DerivedKey struct {
	key []byte
}

// NewDerivedKey wraps a copy of key in an owning DerivedKey.
func NewDerivedKey(key []byte) *DerivedKey {
	buf := make([]byte, len(key))
	copy(buf, key)
	return &DerivedKey{key: buf}
}

// Bytes returns a copy of the key material. The caller is responsible for
// scrubbing the copy.
func (d *DerivedKey) Bytes() []byte {
	out := make([]byte, len(d.key))
	copy(out, d.key)
	return out
}

// Len returns the key length in bytes.
func (d *DerivedKey) Len() int {
	return len(d.key)
}

// Split divides the key material into consecutive sub-keys of the given
// sizes. The parent key is left intact; each sub-key owns its own copy.
// Requesting more bytes than available returns ErrKeyDerivation.
func (d *DerivedKey) Split(sizes ...int) ([]*DerivedKey, error) {
	total := 0
	for _, size := range sizes {
		if size < 0 {
			return nil, qerrors.NewCryptoError("DerivedKey.Split", qerrors.ErrKeyDerivation)
		}
		total += size
	}
	if total > len(d.key) {
		return nil, qerrors.NewCryptoError("DerivedKey.Split", qerrors.ErrKeyDerivation)
	}

	keys := make([]*DerivedKey, 0, len(sizes))
	offset := 0
	for _, size := range sizes {
		keys = append(keys, NewDerivedKey(d.key[offset:offset+size]))
		offset += size
	}
	return keys, nil
}

// Equal compares two derived keys in constant time.
func (d *DerivedKey) Equal(other *DerivedKey) bool {
	if other == nil {
		return false
	}
	return secure.ConstantTimeCompare(d.key, other.key)
}

// Zeroize overwrites the key material with zeros. The DerivedKey must not
// be used afterwards.
func (d *DerivedKey) Zeroize() {
	secure.Zeroize(d.key)
}
