// Package logging provides structured logging configuration for fakehttp.
//
// This package wraps log/slog. Scopes and transports accept a *slog.Logger;
// when none is given they use Nop, so a test double stays silent unless the
// test opts in:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	    Output: os.Stderr,
//	})
//	scope := testing.Begin(t, testing.WithLogger(logger))
//
// The transport logs each dispatch at debug level with the call's method,
// URL and the setup that answered it.
package logging
