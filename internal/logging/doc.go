// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to stderr, so diagnostics never mix with command output on stdout
//   - Logs to the systemd journal as well when journald is reachable
//     (for example when dvbtune runs from a udev rule or a systemd unit)
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"tuner": "debug",  // Per-module overrides
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("tuner")
//	logger.Info("Frontend tuned", "frequency_khz", 474000)
//
// # Viewing Logs
//
//	journalctl -t dvbtune              # All dvbtune logs
//	journalctl -t dvbtune MODULE=tuner # Filter by structured field
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	tuner = "debug"
package logging
