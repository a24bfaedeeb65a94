// Package metrics provides observability support for QuantumShield: a
// leveled structured logger and a pluggable tracing interface with an
// optional OpenTelemetry backend (build tag "otel").
//
// The cryptographic core never logs and never starts spans; callers attach
// observability around the primitives. Log output must never contain key
// material.
package metrics
