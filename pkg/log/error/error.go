package error

import (
	"context"
	"log/slog"
	"os"

	motmedelContext "github.com/Motmedel/nocache_httpd_go/pkg/context"
)

func LogError(message string, err error, logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(
		motmedelContext.WithErrorContextValue(context.Background(), err),
		message,
		args...,
	)
}

func LogWarning(message string, err error, logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(
		motmedelContext.WithErrorContextValue(context.Background(), err),
		message,
		args...,
	)
}

func LogFatalWithExitCode(message string, err error, logger *slog.Logger, exitCode int, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(
		motmedelContext.WithErrorContextValue(context.Background(), err),
		message,
		args...,
	)
	os.Exit(exitCode)
}

func LogFatal(message string, err error, logger *slog.Logger, args ...any) {
	LogFatalWithExitCode(message, err, logger, 1, args...)
}
