package telemetry

import (
	"io"
	"strconv"
	"testing"

	smerrors "github.com/Station-Manager/errors"
)

// newBenchService constructs a service emitting to io.Discard at the given
// global level. It focuses on pure pipeline overhead, not destination I/O.
func newBenchService(level Severity) *Service {
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Format = FormatJSON

	svc := NewService()
	svc.setStreamForTesting(io.Discard)
	if err := svc.Setup(cfg); err != nil {
		panic(err)
	}
	return svc
}

func makeDetailedChain(depth int) error {
	if depth <= 0 {
		return nil
	}
	err := smerrors.New(smerrors.Op("op_0")).Msg("root cause message")
	for i := 1; i < depth; i++ {
		op := "op_" + strconv.Itoa(i)
		err = smerrors.New(smerrors.Op(op)).Err(err).Msg("wrapped message")
	}
	return err
}

func BenchmarkInfo(b *testing.B) {
	svc := newBenchService(SeverityInfo)
	log := svc.GetLogger("bench.app")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("hello", "k", "v", "n", i)
	}
}

func BenchmarkInfo_Filtered(b *testing.B) {
	svc := newBenchService(SeverityError)
	log := svc.GetLogger("bench.app")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("dropped before allocation", "k", "v", "n", i)
	}
}

func BenchmarkInfo_DASEnrichment(b *testing.B) {
	svc := newBenchService(SeverityInfo)
	log := svc.GetLogger("bench.auth")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("login attempt",
			"domain", "auth",
			"action", "login",
			"status", "success")
	}
}

func BenchmarkException_DetailedChain3(b *testing.B) {
	svc := newBenchService(SeverityError)
	log := svc.GetLogger("bench.app")
	err := makeDetailedChain(3)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Exception("oops", err)
	}
}

func BenchmarkException_DetailedChain6(b *testing.B) {
	svc := newBenchService(SeverityError)
	log := svc.GetLogger("bench.app")
	err := makeDetailedChain(6)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Exception("oops", err)
	}
}

func BenchmarkParallel_Info(b *testing.B) {
	svc := newBenchService(SeverityInfo)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		log := svc.GetLogger("bench.parallel")
		for pb.Next() {
			log.Info("hi", "k", "v")
		}
	})
}

func BenchmarkEffectiveLevel(b *testing.B) {
	cfg := DefaultConfig()
	cfg.ModuleLevels = ModuleLevels{
		"a":     SeverityError,
		"a.b":   SeverityInfo,
		"a.b.c": SeverityDebug,
	}
	resolver := newLevelResolver(&cfg)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = resolver.effectiveLevel("a.b.c.d.e")
	}
}
