package telemetry

import "strings"

// levelResolver is a read-only view over a Config's module overrides plus its
// global level. A reconfiguration builds a new resolver; existing ones are
// never patched in place.
type levelResolver struct {
	global  Severity
	modules map[string]Severity
}

func newLevelResolver(cfg *Config) *levelResolver {
	r := &levelResolver{global: cfg.Level}
	if len(cfg.ModuleLevels) > 0 {
		r.modules = make(map[string]Severity, len(cfg.ModuleLevels))
		for prefix, level := range cfg.ModuleLevels {
			r.modules[prefix] = level
		}
	}
	return r
}

// effectiveLevel returns the minimum severity the named logger emits at:
// the severity of the longest dotted prefix of name present in the module
// overrides, or the global level when none match. An exact name match is a
// prefix of full length; there is no wildcard syntax.
func (r *levelResolver) effectiveLevel(name string) Severity {
	if len(r.modules) == 0 || name == emptyString {
		return r.global
	}
	for prefix := name; ; {
		if level, ok := r.modules[prefix]; ok {
			return level
		}
		i := strings.LastIndexByte(prefix, '.')
		if i < 0 {
			break
		}
		prefix = prefix[:i]
	}
	return r.global
}
