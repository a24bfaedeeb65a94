package sign_test

import (
	"bytes"
	"testing"

	"github.com/quantumshield/quantum-shield-go/internal/constants"
	qerrors "github.com/quantumshield/quantum-shield-go/internal/errors"
	"github.com/quantumshield/quantum-shield-go/pkg/sign"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	messages := [][]byte{
		{},
		[]byte("x"),
		[]byte("Hello!"),
		bytes.Repeat([]byte("long message "), 1000),
	}

	for _, msg := range messages {
		sig, err := sign.Sign(sec, msg)
		if err != nil {
			t.Fatalf("Sign(%d bytes) failed: %v", len(msg), err)
		}
		if !sign.Verify(pub, msg, sig) {
			t.Errorf("signature over %d-byte message should verify", len(msg))
		}
	}
}

func TestSchemeSelection(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	if sign.PQAvailable() {
		if pub.Scheme != sign.SchemePQ {
			t.Errorf("scheme: got %v, want SchemePQ", pub.Scheme)
		}
		if len(pub.Primary) != constants.MLDSAPublicKeySize {
			t.Errorf("primary key: got %d bytes, want %d", len(pub.Primary), constants.MLDSAPublicKeySize)
		}
	} else {
		if pub.Scheme != sign.SchemeClassical {
			t.Errorf("scheme: got %v, want SchemeClassical", pub.Scheme)
		}
		if len(pub.Primary) != constants.Ed25519PublicKeySize {
			t.Errorf("primary key: got %d bytes, want %d", len(pub.Primary), constants.Ed25519PublicKeySize)
		}
	}
	if len(pub.Secondary) != constants.Ed25519PublicKeySize {
		t.Errorf("secondary key: got %d bytes, want %d", len(pub.Secondary), constants.Ed25519PublicKeySize)
	}
	if sec.Scheme() != pub.Scheme {
		t.Error("secret and public key schemes should match")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	sig, err := sign.Sign(sec, []byte("Hello!"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if sign.Verify(pub, []byte("Hella!"), sig) {
		t.Error("modified message should not verify")
	}
	if sign.Verify(pub, []byte("Hello!!"), sig) {
		t.Error("extended message should not verify")
	}
	if sign.Verify(pub, nil, sig) {
		t.Error("empty message should not verify")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	msg := []byte("Hello!")
	sig, err := sign.Sign(sec, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	flipPrimary := &sign.Signature{
		Primary:   append([]byte(nil), sig.Primary...),
		Secondary: sig.Secondary,
		Scheme:    sig.Scheme,
	}
	flipPrimary.Primary[0] ^= 0x01
	if sign.Verify(pub, msg, flipPrimary) {
		t.Error("tampered primary signature should not verify")
	}

	flipSecondary := &sign.Signature{
		Primary:   sig.Primary,
		Secondary: append([]byte(nil), sig.Secondary...),
		Scheme:    sig.Scheme,
	}
	flipSecondary.Secondary[0] ^= 0x01
	if sign.Verify(pub, msg, flipSecondary) {
		t.Error("tampered secondary signature should not verify")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, secA, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer secA.Zeroize()
	pubB, secB, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer secB.Zeroize()

	sig, err := sign.Sign(secA, []byte("message"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if sign.Verify(pubB, []byte("message"), sig) {
		t.Error("signature should not verify under a different key")
	}
}

func TestSchemeMismatchFailsVerification(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	sig, err := sign.Sign(sec, []byte("message"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	other := sign.SchemeClassical
	if sig.Scheme == sign.SchemeClassical {
		other = sign.SchemePQ
	}
	mismatched := &sign.Signature{
		Primary:   sig.Primary,
		Secondary: sig.Secondary,
		Scheme:    other,
	}
	if sign.Verify(pub, []byte("message"), mismatched) {
		t.Error("scheme mismatch should fail verification")
	}
}

func TestSignWithTimestamp(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	const ts = uint64(1704067200)
	msg := []byte("Hello!")

	sig, err := sign.SignWithTimestamp(sec, msg, ts)
	if err != nil {
		t.Fatalf("SignWithTimestamp failed: %v", err)
	}
	if sig.Timestamp == nil || *sig.Timestamp != ts {
		t.Fatal("signature should carry the timestamp")
	}
	if !sign.Verify(pub, msg, sig) {
		t.Error("timestamped signature should verify")
	}
	if sign.Verify(pub, []byte("Hella!"), sig) {
		t.Error("modified message should not verify")
	}

	// The timestamp is bound into the hash: changing it breaks verification.
	altered := uint64(1704067201)
	tamperedTS := &sign.Signature{
		Primary:   sig.Primary,
		Secondary: sig.Secondary,
		Scheme:    sig.Scheme,
		Timestamp: &altered,
	}
	if sign.Verify(pub, msg, tamperedTS) {
		t.Error("altered timestamp should not verify")
	}

	// Stripping the timestamp switches the pre-hash domain.
	stripped := &sign.Signature{
		Primary:   sig.Primary,
		Secondary: sig.Secondary,
		Scheme:    sig.Scheme,
	}
	if sign.Verify(pub, msg, stripped) {
		t.Error("signature without its timestamp should not verify")
	}
}

func TestTimestampedAndPlainSignaturesDiffer(t *testing.T) {
	_, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	msg := []byte("domain separation")
	plain, err := sign.Sign(sec, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	timestamped, err := sign.SignWithTimestamp(sec, msg, 42)
	if err != nil {
		t.Fatalf("SignWithTimestamp failed: %v", err)
	}
	if bytes.Equal(plain.Secondary, timestamped.Secondary) {
		t.Error("plain and timestamped signatures should differ")
	}
}

func TestSignatureSerializationRoundTrip(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	msg := []byte("Hello!")

	for _, withTS := range []bool{false, true} {
		var sig *sign.Signature
		if withTS {
			sig, err = sign.SignWithTimestamp(sec, msg, 1704067200)
		} else {
			sig, err = sign.Sign(sec, msg)
		}
		if err != nil {
			t.Fatalf("signing failed: %v", err)
		}

		restored, err := sign.ParseSignature(sig.Bytes())
		if err != nil {
			t.Fatalf("ParseSignature failed: %v", err)
		}
		if restored.Scheme != sig.Scheme {
			t.Error("scheme should round-trip")
		}
		if withTS {
			if restored.Timestamp == nil || *restored.Timestamp != 1704067200 {
				t.Error("timestamp should round-trip")
			}
		} else if restored.Timestamp != nil {
			t.Error("absent timestamp should stay absent")
		}
		if !sign.Verify(pub, msg, restored) {
			t.Error("restored signature should verify")
		}
	}
}

func TestPublicKeySerializationRoundTrip(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	restored, err := sign.ParsePublicKey(pub.Bytes())
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}
	if !pub.Equal(restored) {
		t.Error("public key should round-trip through serialization")
	}

	sig, err := sign.Sign(sec, []byte("message"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !sign.Verify(restored, []byte("message"), sig) {
		t.Error("restored public key should verify signatures")
	}
}

func TestSecretKeySerializationRoundTrip(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	restored, err := sign.ParseSecretKey(sec.Bytes())
	if err != nil {
		t.Fatalf("ParseSecretKey failed: %v", err)
	}
	defer restored.Zeroize()

	sig, err := sign.Sign(restored, []byte("message"))
	if err != nil {
		t.Fatalf("Sign with restored key failed: %v", err)
	}
	if !sign.Verify(pub, []byte("message"), sig) {
		t.Error("signature from restored secret key should verify")
	}
}

func TestClassicalKeyPair(t *testing.T) {
	pub, sec, err := sign.GenerateClassicalKeyPair()
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	if pub.Scheme != sign.SchemeClassical {
		t.Errorf("scheme: got %v, want SchemeClassical", pub.Scheme)
	}
	if bytes.Equal(pub.Primary, pub.Secondary) {
		t.Error("the two classical key pairs should be independent")
	}

	sig, err := sign.Sign(sec, []byte("classical message"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !sign.Verify(pub, []byte("classical message"), sig) {
		t.Error("classical signature should verify")
	}
	if len(sig.Primary) != constants.Ed25519SignatureSize || len(sig.Secondary) != constants.Ed25519SignatureSize {
		t.Error("classical sub-signatures should both be Ed25519-sized")
	}
}

func TestFingerprint(t *testing.T) {
	pubA, secA, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer secA.Zeroize()
	pubB, secB, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer secB.Zeroize()

	fpA := pubA.Fingerprint()
	if len(fpA) != 32 {
		t.Errorf("fingerprint length: got %d, want 32", len(fpA))
	}
	if !bytes.Equal(fpA, pubA.Fingerprint()) {
		t.Error("fingerprint should be stable")
	}
	if bytes.Equal(fpA, pubB.Fingerprint()) {
		t.Error("distinct keys should have distinct fingerprints")
	}

	restored, err := sign.ParsePublicKey(pubA.Bytes())
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}
	if !bytes.Equal(fpA, restored.Fingerprint()) {
		t.Error("fingerprint should survive serialization")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0x01}},
		{"unknown scheme", append([]byte{0x03, 0x00, 0x00, 0x00}, []byte("bad")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sign.ParsePublicKey(tt.data); !qerrors.Is(err, qerrors.ErrParse) {
				t.Errorf("ParsePublicKey: got err %v, want ErrParse", err)
			}
			if _, err := sign.ParseSecretKey(tt.data); !qerrors.Is(err, qerrors.ErrParse) {
				t.Errorf("ParseSecretKey: got err %v, want ErrParse", err)
			}
		})
	}

	if _, err := sign.ParseSignature(nil); !qerrors.Is(err, qerrors.ErrParse) {
		t.Errorf("ParseSignature(nil): got err %v, want ErrParse", err)
	}
	// Flags claim a timestamp that is not present.
	_, sec, err := sign.GenerateClassicalKeyPair()
	if err != nil {
		t.Fatalf("GenerateClassicalKeyPair failed: %v", err)
	}
	defer sec.Zeroize()
	sig, err := sign.Sign(sec, []byte("m"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	encoded := sig.Bytes()
	encoded[0] |= 0x01 // set the timestamp flag without appending one
	if _, err := sign.ParseSignature(encoded); !qerrors.Is(err, qerrors.ErrParse) {
		t.Errorf("flagged-but-missing timestamp: got err %v, want ErrParse", err)
	}
}

func TestVerifyNilInputs(t *testing.T) {
	pub, sec, err := sign.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	defer sec.Zeroize()

	sig, err := sign.Sign(sec, []byte("m"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if sign.Verify(nil, []byte("m"), sig) {
		t.Error("nil public key should not verify")
	}
	if sign.Verify(pub, []byte("m"), nil) {
		t.Error("nil signature should not verify")
	}
	if sign.Verify(pub, []byte("m"), &sign.Signature{Scheme: pub.Scheme}) {
		t.Error("empty signature should not verify")
	}
}

func TestSchemeString(t *testing.T) {
	if sign.SchemePQ.String() != "pq" {
		t.Errorf("SchemePQ: got %q, want %q", sign.SchemePQ.String(), "pq")
	}
	if sign.SchemeClassical.String() != "classical" {
		t.Errorf("SchemeClassical: got %q, want %q", sign.SchemeClassical.String(), "classical")
	}
}
