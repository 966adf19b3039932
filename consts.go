package telemetry

import "time"

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Destination streams accepted by Config.Destination.
const (
	DestinationStdout = "stdout"
	DestinationStderr = "stderr"
)

// Environment variables recognized by FromEnv.
const (
	EnvLogLevel           = "TELEMETRY_LOG_LEVEL"
	EnvServiceName        = "TELEMETRY_SERVICE_NAME"
	EnvModuleLevels       = "TELEMETRY_MODULE_LEVELS"
	EnvLogFormat          = "TELEMETRY_LOG_FORMAT"
	EnvLogDestination     = "TELEMETRY_LOG_DESTINATION"
	EnvLogOmitTimestamp   = "TELEMETRY_LOG_OMIT_TIMESTAMP"
	EnvLogDASEmojiEnabled = "TELEMETRY_LOG_DAS_EMOJI_ENABLED"
)

// Output keys. JSON lines are emitted with a stable leading key order:
// timestamp, level, logger, event, then the remaining fields in insertion
// order.
const (
	keyTimestamp = "timestamp"
	keyLevel     = "level"
	keyLogger    = "logger"
	keyEvent     = "event"
	keyService   = "service"
)

// Semantic DAS field keys consumed by the enrichment stage.
const (
	keyDomain = "domain"
	keyAction = "action"
	keyStatus = "status"
)

const (
	emptyString = ""

	// timestampFormat is UTC with fixed microsecond precision.
	timestampFormat = "2006-01-02T15:04:05.000000Z"

	defaultBufferSize      = 1024
	defaultShutdownTimeout = 2 * time.Second
	defaultFlushInterval   = 10 * time.Millisecond
)

const (
	errMsgNilService      = "Telemetry service is nil."
	errMsgNilConfig       = "Telemetry config is nil."
	errMsgConfigInvalid   = "Telemetry configuration is invalid."
	errMsgEnvInvalid      = "Environment-derived telemetry configuration is invalid."
	errMsgBadSeverity     = "unrecognized severity"
	errMsgBadModuleLevels = "malformed module levels"
)
