package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/quantumshield/quantum-shield-go/pkg/cipher"
	"github.com/quantumshield/quantum-shield-go/pkg/kem"
	"github.com/quantumshield/quantum-shield-go/pkg/metrics"
	"github.com/quantumshield/quantum-shield-go/pkg/sign"
)

// exchangeCommand runs a complete authenticated key exchange between two
// in-process parties: signing keys authenticate the KEM public key, the KEM
// establishes a shared secret, and the cascading cipher carries traffic.
func exchangeCommand() {
	fs := flag.NewFlagSet("exchange", flag.ExitOnError)
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "text", "log format (text, json)")
	tracing := fs.Bool("tracing", false, "record spans with the in-memory tracer")
	_ = fs.Parse(os.Args[2:])

	format := metrics.FormatText
	if *logFormat == "json" {
		format = metrics.FormatJSON
	}
	logger := metrics.NewLogger(
		metrics.WithOutput(os.Stdout),
		metrics.WithLevel(metrics.ParseLevel(*logLevel)),
		metrics.WithFormat(format),
		metrics.WithName("qshield.exchange"),
	)
	metrics.SetLogger(logger)

	var tracer metrics.Tracer = metrics.NoOpTracer{}
	if *tracing {
		tracer = metrics.NewSimpleTracer()
	} else if metrics.OTelEnabled() {
		tracer = metrics.NewOTelTracer("qshield")
	}
	metrics.SetTracer(tracer)

	ctx := context.Background()

	// Long-term identity keys for both parties.
	alicePub, aliceSec, err := sign.GenerateKeyPair()
	if err != nil {
		fatal("alice signing keygen failed", err)
	}
	defer aliceSec.Zeroize()
	bobPub, bobSec, err := sign.GenerateKeyPair()
	if err != nil {
		fatal("bob signing keygen failed", err)
	}
	defer bobSec.Zeroize()

	logger.Info("identity keys generated", metrics.Fields{
		"scheme":            alicePub.Scheme.String(),
		"alice_fingerprint": fmt.Sprintf("%x", alicePub.Fingerprint()[:8]),
		"bob_fingerprint":   fmt.Sprintf("%x", bobPub.Fingerprint()[:8]),
	})

	// Bob publishes a signed KEM public key.
	ctx, end := metrics.StartSpan(ctx, metrics.SpanKEMGenerate)
	kemPub, kemSec, err := kem.GenerateKeyPair()
	end(err)
	if err != nil {
		fatal("kem keygen failed", err)
	}
	defer kemSec.Zeroize()

	kemPubBytes := kemPub.Bytes()
	sig, err := sign.Sign(bobSec, kemPubBytes)
	if err != nil {
		fatal("signing kem key failed", err)
	}

	// Alice verifies Bob's KEM key before encapsulating to it.
	if !sign.Verify(bobPub, kemPubBytes, sig) {
		fatal("kem key verification failed", fmt.Errorf("signature rejected"))
	}
	logger.Info("kem public key authenticated", metrics.Fields{
		"key_bytes": len(kemPubBytes),
	})

	received, err := kem.ParsePublicKey(kemPubBytes)
	if err != nil {
		fatal("kem key parse failed", err)
	}

	ctx, end = metrics.StartSpan(ctx, metrics.SpanKEMEncapsulate)
	kemCT, aliceSecret, err := kem.Encapsulate(received)
	end(err)
	if err != nil {
		fatal("encapsulation failed", err)
	}

	ctx, end = metrics.StartSpan(ctx, metrics.SpanKEMDecapsulate)
	bobSecret, err := kem.Decapsulate(kemSec, kemCT)
	end(err)
	if err != nil {
		fatal("decapsulation failed", err)
	}

	logger.Info("shared secret established", metrics.Fields{
		"secret_bytes":     len(aliceSecret),
		"ciphertext_bytes": len(kemCT.Bytes()),
	})

	// Both sides derive ciphers from the shared secret and exchange traffic.
	aliceCipher, err := cipher.New(aliceSecret)
	if err != nil {
		fatal("alice cipher setup failed", err)
	}
	defer aliceCipher.Close()
	bobCipher, err := cipher.New(bobSecret)
	if err != nil {
		fatal("bob cipher setup failed", err)
	}
	defer bobCipher.Close()

	message := []byte("the tunnel is up")
	_, end = metrics.StartSpan(ctx, metrics.SpanEncrypt)
	sealed, err := aliceCipher.EncryptWithAAD(message, []byte("session-1"))
	end(err)
	if err != nil {
		fatal("encryption failed", err)
	}
	opened, err := bobCipher.DecryptWithAAD(sealed, []byte("session-1"))
	if err != nil {
		fatal("decryption failed", err)
	}

	logger.Info("message delivered", metrics.Fields{
		"plaintext_bytes":  len(message),
		"ciphertext_bytes": len(sealed),
		"match":            string(opened) == string(message),
	})

	if st, ok := tracer.(*metrics.SimpleTracer); ok {
		for _, span := range st.Spans() {
			logger.Debug("span recorded", metrics.Fields{
				"name":        span.Name,
				"duration_us": span.Duration.Microseconds(),
			})
		}
	}

	fmt.Println("key exchange complete")
}
