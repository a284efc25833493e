package common

import "log/slog"

// Coalesce returns the first value that is not the zero value of T.
//
// Parameters:
//   - values: candidates in order of preference
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Logger resolves an optional logger. A nil logger falls back to slog.Default().
//
// Parameters:
//   - logger: the configured logger, possibly nil
//
// Returns:
//   - *slog.Logger: a logger safe to call
func Logger(logger *slog.Logger) *slog.Logger {
	return Coalesce(logger, slog.Default())
}
