package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"go.uber.org/atomic"
)

// snapshot is one atomically-installed unit of runtime state: the validated
// config with its derived resolver, pipeline and emitter. Readers either see
// a whole snapshot or the previous one, never a mixture.
type snapshot struct {
	cfg      Config
	resolver *levelResolver
	pipeline *Pipeline
	emit     *emitter
	inflight atomic.Int64
}

func newSnapshot(cfg Config, override io.Writer) *snapshot {
	resolver := newLevelResolver(&cfg)
	emit := newEmitter(&cfg, override)
	return &snapshot{
		cfg:      cfg,
		resolver: resolver,
		pipeline: buildPipeline(&cfg, resolver, emit),
		emit:     emit,
	}
}

// streamOverride redirects emission for tests.
type streamOverride struct {
	w io.Writer
}

// Service is the process-wide telemetry runtime. It owns the current
// (pipeline, resolver) snapshot and the setup/reconfigure/shutdown
// lifecycle. The zero value is usable: logging before Setup runs against the
// built-in default configuration (level warning, text format, stderr).
type Service struct {
	mu          sync.Mutex
	snap        atomic.Pointer[snapshot]
	stream      atomic.Pointer[streamOverride]
	initialized atomic.Bool
	closing     atomic.Bool
}

func NewService() *Service {
	return &Service{}
}

// Setup validates cfg, builds a new pipeline and resolver, and atomically
// swaps them in as current. Safe to call repeatedly; each call fully
// supersedes the previous configuration, never merges with it. On a
// validation error the previous configuration remains active.
func (s *Service) Setup(cfg Config) error {
	const op errors.Op = "telemetry.Setup"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}
	if err := validateConfig(&cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := newSnapshot(cfg, s.overrideWriter())
	prev := s.snap.Swap(next)
	s.initialized.Store(true)

	if prev != nil {
		s.retire(prev)
	}
	return nil
}

// SetupFromEnv derives a Config from the TELEMETRY_* environment variables
// and installs it.
func (s *Service) SetupFromEnv() error {
	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	return s.Setup(cfg)
}

// GetLogger returns a handle bound to the given dotted name. Valid in any
// lifecycle state; the handle reads the current snapshot on every call, so a
// later Setup takes effect without re-acquiring it.
func (s *Service) GetLogger(name string) *Logger {
	return &Logger{name: name, svc: s}
}

// Active reports whether Setup has installed a configuration that has not
// been shut down.
func (s *Service) Active() bool {
	return s != nil && s.initialized.Load()
}

// Shutdown drains in-flight records within the configured bounded window,
// flushes the buffered emission path, and resets the service to its
// uninitialized state. Idempotent: a second call is a no-op. Records that
// cannot be flushed in time are dropped, and the drop is reported as a
// single final diagnostic line.
func (s *Service) Shutdown() error {
	if s == nil {
		return nil
	}
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}
	defer s.closing.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snap.Swap(nil)
	s.initialized.Store(false)
	if prev != nil {
		s.retire(prev)
	}
	return nil
}

// currentSnapshot returns the active snapshot, lazily installing the default
// one when the service is uninitialized.
func (s *Service) currentSnapshot() *snapshot {
	if sn := s.snap.Load(); sn != nil {
		return sn
	}
	def := newSnapshot(DefaultConfig(), s.overrideWriter())
	if s.snap.CompareAndSwap(nil, def) {
		return def
	}
	return s.snap.Load()
}

func (s *Service) overrideWriter() io.Writer {
	if o := s.stream.Load(); o != nil {
		return o.w
	}
	return nil
}

// setStreamForTesting redirects emission to w (nil restores the configured
// destination) and resets the service so the next call rebuilds against it.
func (s *Service) setStreamForTesting(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w == nil {
		s.stream.Store(nil)
	} else {
		s.stream.Store(&streamOverride{w: w})
	}
	prev := s.snap.Swap(nil)
	s.initialized.Store(false)
	if prev != nil {
		s.retire(prev)
	}
}

// retire drains a superseded snapshot with a bounded wait, closes its
// emitter, and reports any shortfall. A record issued against the old
// snapshot after the window may be lost; the swap itself is never torn.
func (s *Service) retire(sn *snapshot) {
	timeout := sn.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	deadline := time.Now().Add(timeout)
	timedOut := false
	for sn.inflight.Load() > 0 {
		if time.Now().After(deadline) {
			timedOut = true
			break
		}
		time.Sleep(time.Millisecond)
	}

	sn.emit.close(timeout)

	dropped := sn.emit.dropped.Load()
	if timedOut || dropped > 0 {
		sn.emit.diagnosticf("telemetry: shutdown drain incomplete: active_operations=%d dropped_records=%d\n",
			sn.inflight.Load(), dropped)
	}
}
