package kdf_test

import (
	"bytes"
	"testing"

	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/pkg/kdf"
)

func TestDerivedKeyOwnsItsBytes(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	dk := kdf.NewDerivedKey(src)

	src[0] = 0xFF
	if dk.Bytes()[0] != 1 {
		t.Error("DerivedKey should copy its input")
	}

	out := dk.Bytes()
	out[1] = 0xFF
	if dk.Bytes()[1] != 2 {
		t.Error("Bytes should return an independent copy")
	}
	if dk.Len() != 4 {
		t.Errorf("Len: got %d, want 4", dk.Len())
	}
}

func TestDerivedKeySplit(t *testing.T) {
	dk := kdf.NewDerivedKey([]byte("0123456789abcdef"))

	parts, err := dk.Split(4, 8, 4)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("parts: got %d, want 3", len(parts))
	}
	if !bytes.Equal(parts[0].Bytes(), []byte("0123")) {
		t.Errorf("part 0: got %q", parts[0].Bytes())
	}
	if !bytes.Equal(parts[1].Bytes(), []byte("456789ab")) {
		t.Errorf("part 1: got %q", parts[1].Bytes())
	}
	if !bytes.Equal(parts[2].Bytes(), []byte("cdef")) {
		t.Errorf("part 2: got %q", parts[2].Bytes())
	}

	// A partial split leaves trailing bytes unused.
	partial, err := dk.Split(8)
	if err != nil {
		t.Fatalf("partial Split failed: %v", err)
	}
	if !bytes.Equal(partial[0].Bytes(), []byte("01234567")) {
		t.Errorf("partial: got %q", partial[0].Bytes())
	}
}

func TestDerivedKeySplitTooLarge(t *testing.T) {
	dk := kdf.NewDerivedKey([]byte("short"))

	if _, err := dk.Split(4, 4); !qerrors.Is(err, qerrors.ErrKeyDerivation) {
		t.Errorf("oversized split: got err %v, want ErrKeyDerivation", err)
	}
	if _, err := dk.Split(-1); !qerrors.Is(err, qerrors.ErrKeyDerivation) {
		t.Errorf("negative split: got err %v, want ErrKeyDerivation", err)
	}
}

func TestDerivedKeyEqual(t *testing.T) {
	a := kdf.NewDerivedKey([]byte("same bytes"))
	b := kdf.NewDerivedKey([]byte("same bytes"))
	c := kdf.NewDerivedKey([]byte("diff bytes"))

	if !a.Equal(b) {
		t.Error("identical keys should compare equal")
	}
	if a.Equal(c) {
		t.Error("different keys should not compare equal")
	}
	if a.Equal(nil) {
		t.Error("nil comparison should be false")
	}
}

func TestDerivedKeyZeroize(t *testing.T) {
	dk := kdf.NewDerivedKey([]byte{1, 2, 3, 4})
	dk.Zeroize()

	for i, b := range dk.Bytes() {
		if b != 0 {
			t.Errorf("byte %d not zeroized: got %d", i, b)
		}
	}
}

func TestDeriveKeyIntegration(t *testing.T) {
	k := kdf.New()
	dk, err := k.DeriveKey([]byte("ikm"), []byte{}, []byte("ctx"), 64)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	defer dk.Zeroize()

	raw, err := k.Derive([]byte("ikm"), []byte{}, []byte("ctx"), 64)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !bytes.Equal(dk.Bytes(), raw) {
		t.Error("DeriveKey should wrap the same bytes as Derive")
	}
}
