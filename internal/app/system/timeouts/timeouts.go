// Package timeouts provides centralized timeout values for handler operations.
//
// The values are used with context.WithTimeout around database work in HTTP
// handlers so every feature agrees on how long a class lookup, a ledger
// count, or a CSV export may take.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads (class by id, order fetch)
//   - Medium: list queries and simple writes (signup insert, class create)
//   - Long: multi-collection work (class delete with signup cleanup, exports)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-collection operations and exports.
func Long() time.Duration { return long }
