// Package logger provides structured logging for the order service using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying field maps.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("inventory-client")
//	log.Info("call completed", logger.Fields("status", 200))
package logger
