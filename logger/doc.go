// Package logger provides structured logging for funckit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. Loggers pick up the run ID and the active
// OpenTelemetry span from a context via WithContext.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("engine")
//	log.Info("pass finished", logger.Fields("accepted", 4, "rejected", 6))
package logger
