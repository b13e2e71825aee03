// Package lifecycle holds timeouts shared by start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start/stop hook (pings, server shutdown, pool close).
const DefaultTimeout = 10 * time.Second
