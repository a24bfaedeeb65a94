// Command qshield demonstrates the QuantumShield hybrid cryptography
// library: hybrid key encapsulation, cascading encryption, dual signatures
// and password-based key derivation.
package main

import (
	"fmt"
	"os"

	pkgversion "github.com/quantumshield/quantum-shield-go/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		demoCommand()
	case "exchange":
		exchangeCommand()
	case "version":
		fmt.Printf("qshield version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`qshield - QuantumShield Hybrid Cryptography Demo Tool

USAGE:
    qshield <command> [options]

COMMANDS:
    demo      Walk through every primitive with explanations
    exchange  Run an authenticated key exchange between two parties
    version   Print version information
    help      Show this help message

EXAMPLES:
    # Walk through KEM, cipher, signatures and KDF
    qshield demo

    # Authenticated key exchange with JSON logs
    qshield exchange --log-format json --log-level debug

PROJECT:
    QuantumShield - Hybrid Classical/Post-Quantum Cryptography
    https://github.com/quantumshield/quantum-shield-go`)
}
