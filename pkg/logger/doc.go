// Package logger provides a structured JSON logger for the curator service,
// built on Uber's Zap.
//
// The logger is constructed once at startup through the Fx module and shared
// by every other component. Log entries carry ISO8601 timestamps, the process
// id, and the service name as initial fields.
//
// # Basic Usage
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug})
//	log.Info("account created", nil, map[string]interface{}{
//	    "account_id": id,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
//
// The Fx lifecycle hook flushes buffered entries on shutdown.
package logger
