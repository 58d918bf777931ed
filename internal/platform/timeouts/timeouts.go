// Package timeouts defines shared timeout constants used across the
// binaries.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// GapAnalysis caps one gap analysis started from a tool call. A four-dice
// sweep over the default range finishes well within it.
const GapAnalysis = 2 * time.Minute
