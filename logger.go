package telemetry

// Logger is a lightweight named front-end. It holds no mutable state besides
// its name and optional pre-bound fields; every call consults the owning
// Service for the current pipeline and resolver, so reconfiguration takes
// effect for handles obtained earlier.
type Logger struct {
	name  string
	svc   *Service
	bound []Field
}

// Name returns the logger's dotted name.
func (l *Logger) Name() string {
	if l == nil {
		return emptyString
	}
	return l.name
}

// With returns a derived handle whose records carry the given key/value
// pairs ahead of per-call fields. The receiver is not modified.
func (l *Logger) With(kv ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	extra := fieldsFromKV(kv)
	if len(extra) == 0 {
		return l
	}
	bound := make([]Field, 0, len(l.bound)+len(extra))
	bound = append(bound, l.bound...)
	bound = append(bound, extra...)
	return &Logger{name: l.name, svc: l.svc, bound: bound}
}

// Log emits a record at the given severity. kv is alternating key/value
// pairs. Records below the effective level for this logger's name return
// immediately, before the record is allocated.
func (l *Logger) Log(level Severity, event string, kv ...interface{}) {
	l.log(level, event, kv, nil, nil)
}

func (l *Logger) Trace(event string, kv ...interface{}) {
	l.log(SeverityTrace, event, kv, nil, nil)
}

func (l *Logger) Debug(event string, kv ...interface{}) {
	l.log(SeverityDebug, event, kv, nil, nil)
}

func (l *Logger) Info(event string, kv ...interface{}) {
	l.log(SeverityInfo, event, kv, nil, nil)
}

func (l *Logger) Warn(event string, kv ...interface{}) {
	l.log(SeverityWarning, event, kv, nil, nil)
}

func (l *Logger) Error(event string, kv ...interface{}) {
	l.log(SeverityError, event, kv, nil, nil)
}

func (l *Logger) Critical(event string, kv ...interface{}) {
	l.log(SeverityCritical, event, kv, nil, nil)
}

// Exception logs at error level with the failure's context captured
// synchronously at the call site: type, message, formatted stack and the
// full cause chain. A nil err attaches nothing and is not an error.
func (l *Logger) Exception(event string, err error, kv ...interface{}) {
	var stack []byte
	if err != nil {
		stack = captureStack()
	}
	l.log(SeverityError, event, kv, err, stack)
}

func (l *Logger) log(level Severity, event string, kv []interface{}, err error, stack []byte) {
	if l == nil || l.svc == nil {
		return
	}

	sn := l.svc.currentSnapshot()
	if level < sn.resolver.effectiveLevel(l.name) {
		return
	}

	sn.inflight.Add(1)
	defer sn.inflight.Add(-1)

	// Per-record failures never reach the caller.
	defer func() {
		_ = recover()
	}()

	r := &Record{Logger: l.name, Level: level, Event: event, err: err, stack: stack}
	r.Fields = make([]Field, 0, len(l.bound)+(len(kv)+1)/2)
	r.Fields = append(r.Fields, l.bound...)
	r.Fields = append(r.Fields, fieldsFromKV(kv)...)

	sn.pipeline.process(r)
}
