package telemetry

import "fmt"

// Domain-Action-Status (DAS) marker tables. Each table carries an explicit
// fallback entry under fallbackKey; unknown values degrade to it rather than
// erroring. The composed marker is prepended to the event message, while the
// textual domain/action/status fields always remain on the record.

const fallbackKey = "default"

var domainMarkers = map[string]string{
	"auth":     "🔑",
	"database": "🗄️",
	"db":       "🗄️",
	"network":  "🌐",
	"system":   "⚙️",
	"server":   "🛎️",
	"client":   "🙋",
	"file":     "📄",
	"cache":    "💾",
	"task":     "🔄",
	"security": "🛡️",
	fallbackKey: "❓",
}

var actionMarkers = map[string]string{
	"login":      "➡️",
	"logout":     "⬅️",
	"query":      "🔍",
	"connect":    "🔗",
	"disconnect": "💔",
	"read":       "📖",
	"write":      "📝",
	"delete":     "🗑️",
	"start":      "🚀",
	"stop":       "🛑",
	"process":    "⚙️",
	"send":       "📤",
	"receive":    "📥",
	"validate":   "🛂",
	fallbackKey:  "❓",
}

var statusMarkers = map[string]string{
	"success":   "✅",
	"failure":   "❌",
	"error":     "🔥",
	"warning":   "⚠️",
	"complete":  "🏁",
	"pending":   "⏳",
	"retry":     "🔁",
	"timeout":   "⏱️",
	fallbackKey: "➡️",
}

func markerFor(table map[string]string, value interface{}) string {
	name, ok := value.(string)
	if !ok {
		name = fmt.Sprint(value)
	}
	if marker, ok := table[name]; ok {
		return marker
	}
	return table[fallbackKey]
}

// enrichRecord prepends the composed DAS marker to the event message when the
// record carries all three of domain, action and status. Absence of any of
// the three keys leaves the record untouched.
func enrichRecord(r *Record) *Record {
	domain, okD := r.field(keyDomain)
	action, okA := r.field(keyAction)
	status, okS := r.field(keyStatus)
	if !okD || !okA || !okS {
		return r
	}

	marker := markerFor(domainMarkers, domain) +
		markerFor(actionMarkers, action) +
		markerFor(statusMarkers, status)
	r.Event = marker + " " + r.Event
	return r
}
