package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/caarlos0/env/v11"
)

// ModuleLevels maps dotted logger-name prefixes to the minimum severity for
// that subtree. Keys are unique; ordering carries no meaning. The environment
// representation is a comma-separated list of prefix:level pairs, e.g.
// "auth.service:trace,database:error".
type ModuleLevels map[string]Severity

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (m *ModuleLevels) UnmarshalText(text []byte) error {
	const op errors.Op = "telemetry.ModuleLevels.UnmarshalText"

	parsed := make(ModuleLevels)
	for _, pair := range strings.Split(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == emptyString {
			continue
		}
		prefix, level, found := strings.Cut(pair, ":")
		prefix = strings.TrimSpace(prefix)
		if !found || prefix == emptyString {
			return errors.New(op).Errorf("%s: entry %q in %s must be prefix:level", errMsgBadModuleLevels, pair, EnvModuleLevels)
		}
		sev, err := ParseSeverity(level)
		if err != nil {
			return errors.New(op).Err(err).Msg(fmt.Sprintf("%s: entry %q in %s", errMsgBadModuleLevels, pair, EnvModuleLevels))
		}
		parsed[prefix] = sev
	}
	*m = parsed
	return nil
}

// Config is the immutable description of desired telemetry behavior. It is
// validated once by Setup; after that the built pipeline and resolver are
// never mutated, only replaced wholesale.
type Config struct {
	// Level is the global minimum severity for loggers without a matching
	// module override.
	Level Severity `env:"TELEMETRY_LOG_LEVEL" envDefault:"warning" validate:"min=0,max=5"`

	// ServiceName, when non-empty, is attached to every record under the
	// "service" key.
	ServiceName string `env:"TELEMETRY_SERVICE_NAME"`

	// ModuleLevels overrides the global level per dotted-name prefix using
	// longest-matching-prefix semantics.
	ModuleLevels ModuleLevels `env:"TELEMETRY_MODULE_LEVELS" validate:"omitempty,dive,min=0,max=5"`

	// Format selects the output encoding: "text" or "json".
	Format string `env:"TELEMETRY_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// Destination selects the output stream: "stdout" or "stderr".
	Destination string `env:"TELEMETRY_LOG_DESTINATION" envDefault:"stderr" validate:"oneof=stdout stderr"`

	// EnrichmentEnabled toggles the DAS emoji marker stage.
	EnrichmentEnabled bool `env:"TELEMETRY_LOG_DAS_EMOJI_ENABLED" envDefault:"true"`

	// OmitTimestamp suppresses the timestamp stage.
	OmitTimestamp bool `env:"TELEMETRY_LOG_OMIT_TIMESTAMP" envDefault:"false"`

	// NoColor disables ANSI coloring cues in text output.
	NoColor bool

	// BufferedOutput routes emission through a non-blocking ring buffer so
	// log calls never stall on destination writes. Records that do not fit
	// are dropped and counted; Shutdown reports the count.
	BufferedOutput bool

	// BufferSize is the ring capacity for the buffered path, in records.
	BufferSize int `validate:"min=0"`

	// ShutdownTimeout bounds how long Shutdown (and reconfiguration) waits
	// for in-flight records before giving up on them.
	ShutdownTimeout time.Duration `validate:"min=0"`
}

// DefaultConfig returns the built-in configuration used before Setup is
// called: global level warning, text format, stderr.
func DefaultConfig() Config {
	return Config{
		Level:             SeverityWarning,
		Format:            FormatText,
		Destination:       DestinationStderr,
		EnrichmentEnabled: true,
		BufferSize:        defaultBufferSize,
		ShutdownTimeout:   defaultShutdownTimeout,
	}
}

// FromEnv builds a Config from the TELEMETRY_* environment variables.
// Missing variables fall back to the built-in defaults; malformed values fail
// with a configuration error naming the offending entry. Environment
// variables are read here and nowhere else: an explicit Setup(cfg) always
// takes precedence over the environment.
func FromEnv() (Config, error) {
	const op errors.Op = "telemetry.FromEnv"

	cfg := Config{
		BufferSize:      defaultBufferSize,
		ShutdownTimeout: defaultShutdownTimeout,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.New(op).Err(err).Msg(errMsgEnvInvalid)
	}
	return cfg, nil
}
