// Package log provides the logging abstraction used by charview components.
//
// The coordinator, the HTTP client and the config watcher only depend on the
// Logger interface. A zerolog-backed implementation is provided for the CLI
// and a no-op logger for tests and embedders that do not want output.
//
// # Usage
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("characters loaded", log.Int("count", 58))
//
// Request-scoped loggers carry fields into every entry:
//
//	reqLog := logger.With(log.String("request_id", id))
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package log
