// Package poolstats reports connection pool contention of database/sql backed stores.
package poolstats

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

const (
	// DefaultInterval is how often pool statistics are sampled.
	DefaultInterval = 5 * time.Second

	// WarnThreshold is the wait time per sample above which contention is logged as a warning.
	WarnThreshold = 50 * time.Millisecond
)

// Monitor samples db.Stats every interval until ctx is done and logs any growth in the
// number of callers that had to wait for a connection.
func Monitor(ctx context.Context, logger *slog.Logger, store string, db *sql.DB, interval time.Duration) {
	if logger == nil || db == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := db.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := db.Stats()
			if level, attrs, ok := observe(prev, cur); ok {
				attrs = append(attrs, slog.String("store", store))
				logger.LogAttrs(ctx, level, "Connection pool wait detected", attrs...)
			}
			prev = cur
		}
	}
}

// observe compares two samples. ok is false when nobody waited between them.
func observe(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waitDelta := cur.WaitCount - prev.WaitCount
	if waitDelta <= 0 {
		return slog.LevelDebug, nil, false
	}

	waitDurationDelta := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waitDelta),
		slog.Duration("waitDurationDelta", waitDurationDelta),
		slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	if waitDurationDelta >= WarnThreshold {
		return slog.LevelWarn, attrs, true
	}

	return slog.LevelDebug, attrs, true
}
