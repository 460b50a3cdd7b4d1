// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
// Output goes to stderr by default because stdout belongs to the interactive menu.
//
// # Operation Correlation
//
// WithOperation tags a logger with the operation name and a random op_id (UUID), so
// every log line produced while serving one menu action or CLI command can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//   - Output: stderr, stdout or a file path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Catalog ready")
//
//	l := logger.WithOperation(log, "add_book")
//	l.Error("Add failed", zap.Error(err))
package logger
