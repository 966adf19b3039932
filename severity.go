package telemetry

import (
	"strings"

	"github.com/Station-Manager/errors"
)

// Severity is the totally ordered log level set used for filtering decisions.
// SeverityTrace is an extra ultra-verbose level below the conventional debug.
type Severity int8

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityTrace:    "trace",
	SeverityDebug:    "debug",
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

// String returns the canonical lowercase name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Severity) valid() bool {
	return s >= SeverityTrace && s <= SeverityCritical
}

// ParseSeverity parses a severity name, case-insensitively. "warn" is
// accepted as an alias for "warning".
func ParseSeverity(name string) (Severity, error) {
	const op errors.Op = "telemetry.ParseSeverity"

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return SeverityTrace, nil
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	}
	return SeverityTrace, errors.New(op).Errorf("%s: %q", errMsgBadSeverity, name)
}

// UnmarshalText implements encoding.TextUnmarshaler so Severity fields can be
// populated from environment variables.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
