package impl

import (
	"io"
	"log/slog"

	"polystore/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(requirePositiveBalance bool) *config.Config {
	return &config.Config{
		Transfer: config.TransferConfig{RequirePositiveBalance: requirePositiveBalance},
	}
}
