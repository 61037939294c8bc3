package services

import "log/slog"

func discardSlog() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
