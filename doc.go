// Package telemetry provides a concurrency-safe configuration and processing
// layer over rs/zerolog with named hierarchical loggers, per-module level
// filtering, and an explicit setup/reconfigure/shutdown lifecycle.
//
// Key features
//   - Declarative Config (global level, per-module overrides, text/json
//     output, stdout/stderr destination) validated once at Setup
//   - Longest-prefix module level resolution: "app.db.pool" is governed by
//     the most specific of "app.db.pool", "app.db", "app" or the global level
//   - An immutable record pipeline (filter -> enrichment -> exception capture
//     -> timestamp -> encode) swapped atomically on reconfiguration; readers
//     never observe a torn (pipeline, resolver) pair
//   - Domain-Action-Status (DAS) enrichment: records carrying domain, action
//     and status fields gain a composed emoji marker for scannability
//   - Exception logging that captures the failure's type, message, formatted
//     stack and full error chain (outermost -> root, with operations when
//     using Station-Manager DetailedError) at the call site
//   - Optional buffered, non-blocking emission with a bounded shutdown drain;
//     dropped records are reported in a final diagnostic line
//   - Environment-derived configuration via the TELEMETRY_* variables
//
// Typical usage
//
//	cfg := telemetry.DefaultConfig()
//	cfg.Level = telemetry.SeverityDebug
//	if err := telemetry.Setup(cfg); err != nil { panic(err) }
//	defer telemetry.Shutdown()
//
//	log := telemetry.GetLogger("app.db")
//	log.Info("pool ready", "max_conns", 10)
//	log.Exception("query failed", err, "table", "users")
package telemetry
