package telemetry

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"go.uber.org/atomic"
)

// failoverWriter reports the first failed write to the alternate stream and
// swallows every error afterwards: emission must never raise out of an
// application call site.
type failoverWriter struct {
	primary   io.Writer
	alternate io.Writer
	failed    atomic.Bool
}

func (w *failoverWriter) Write(p []byte) (int, error) {
	if _, err := w.primary.Write(p); err != nil {
		if w.failed.CompareAndSwap(false, true) {
			_, _ = fmt.Fprintf(w.alternate, "telemetry: log emission failed: %v\n", err)
		}
	}
	return len(p), nil
}

func destinationStreams(destination string) (primary, alternate io.Writer) {
	if destination == DestinationStdout {
		return os.Stdout, os.Stderr
	}
	return os.Stderr, os.Stdout
}

// emitter owns the zerolog engine bound to the configured destination. When
// buffering is enabled, writes go through a non-blocking diode ring; records
// that do not fit are dropped and counted for the shutdown diagnostic.
type emitter struct {
	engine    zerolog.Logger
	out       *failoverWriter
	buffered  *diode.Writer
	dropped   atomic.Int64
	closeOnce sync.Once
}

func newEmitter(cfg *Config, override io.Writer) *emitter {
	e := &emitter{}

	primary, alternate := destinationStreams(cfg.Destination)
	if override != nil {
		primary, alternate = override, io.Discard
	}
	e.out = &failoverWriter{primary: primary, alternate: alternate}

	var sink io.Writer = e.out
	if cfg.BufferedOutput {
		size := cfg.BufferSize
		if size <= 0 {
			size = defaultBufferSize
		}
		dw := diode.NewWriter(e.out, size, defaultFlushInterval, func(missed int) {
			e.dropped.Add(int64(missed))
		})
		e.buffered = &dw
		sink = e.buffered
	}
	if cfg.Format == FormatText {
		sink = newConsoleWriter(sink, cfg.NoColor)
	}

	e.engine = zerolog.New(sink)
	return e
}

// emit renders the record through the engine with the stable leading key
// order timestamp, level, logger, event, then fields in insertion order.
func (e *emitter) emit(r *Record) {
	ev := e.engine.Log()
	if !r.Timestamp.IsZero() {
		ev.Str(keyTimestamp, r.Timestamp.Format(timestampFormat))
	}
	ev.Str(keyLevel, r.Level.String())
	ev.Str(keyLogger, r.Logger)
	ev.Str(keyEvent, r.Event)
	for _, f := range r.Fields {
		appendEventField(ev, f)
	}
	ev.Send()
}

func appendEventField(ev *zerolog.Event, f Field) {
	switch v := f.Value.(type) {
	case nil:
		ev.Interface(f.Key, nil)
	case string:
		ev.Str(f.Key, v)
	case bool:
		ev.Bool(f.Key, v)
	case int:
		ev.Int(f.Key, v)
	case int64:
		ev.Int64(f.Key, v)
	case uint64:
		ev.Uint64(f.Key, v)
	case float32:
		ev.Float32(f.Key, v)
	case float64:
		ev.Float64(f.Key, v)
	case time.Time:
		ev.Str(f.Key, v.UTC().Format(timestampFormat))
	case time.Duration:
		ev.Dur(f.Key, v)
	case error:
		ev.AnErr(f.Key, v)
	case []string:
		ev.Strs(f.Key, v)
	case []byte:
		ev.Bytes(f.Key, v)
	default:
		ev.Interface(f.Key, v)
	}
}

// diagnosticf writes a single best-effort line straight to the destination,
// bypassing the buffered path. Used for drain/drop reporting.
func (e *emitter) diagnosticf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(e.out, format, args...)
}

// close flushes the buffered path within the given window. Idempotent.
func (e *emitter) close(timeout time.Duration) {
	e.closeOnce.Do(func() {
		if e.buffered == nil {
			return
		}
		done := make(chan struct{})
		go func() {
			e.buffered.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(timeout):
		}
	})
}

// newConsoleWriter configures zerolog's console formatting for the text
// format: <timestamp> [<LEVEL>] <logger>: <event> <key=value ...>.
func newConsoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       noColor,
		PartsOrder:    []string{keyTimestamp, keyLevel, keyLogger, keyEvent},
		FieldsExclude: []string{keyTimestamp, keyLevel, keyLogger, keyEvent},
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)
			if name == emptyString {
				name = "unknown"
			}
			part := "[" + strings.ToUpper(name) + "]"
			if noColor {
				return part
			}
			return colorize(part, levelColor(name))
		},
		FormatPartValueByName: func(i interface{}, name string) string {
			if i == nil {
				return emptyString
			}
			s := fmt.Sprint(i)
			if name == keyLogger && s != emptyString {
				return s + ":"
			}
			return s
		},
	}
}

func levelColor(level string) int {
	switch level {
	case "trace":
		return 90
	case "debug":
		return 36
	case "info":
		return 32
	case "warning":
		return 33
	case "error":
		return 31
	case "critical":
		return 91
	default:
		return 37
	}
}

func colorize(s string, color int) string {
	return "\x1b[" + strconv.Itoa(color) + "m" + s + "\x1b[0m"
}
