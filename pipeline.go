package telemetry

import "time"

// Pipeline is the ordered, immutable chain of record transformations applied
// before emission. It is shared by all logger handles concurrently and is
// never mutated after assembly, only replaced wholesale by a reconfiguration.
type Pipeline struct {
	procs []Processor
}

func (p *Pipeline) process(r *Record) {
	for _, proc := range p.procs {
		if r = proc(r); r == nil {
			return
		}
	}
}

// buildPipeline assembles the fixed-order chain from a validated Config:
// level filter, DAS enrichment (when enabled), exception capture,
// service/timestamp stamping, encode-and-emit.
func buildPipeline(cfg *Config, resolver *levelResolver, emit *emitter) *Pipeline {
	procs := make([]Processor, 0, 5)
	procs = append(procs, filterProcessor(resolver))
	if cfg.EnrichmentEnabled {
		procs = append(procs, enrichRecord)
	}
	procs = append(procs, exceptionProcessor)
	procs = append(procs, stampProcessor(cfg.ServiceName, cfg.OmitTimestamp))
	procs = append(procs, emitProcessor(emit))
	return &Pipeline{procs: procs}
}

// filterProcessor drops records below the effective level for their logger
// name before any further processing.
func filterProcessor(resolver *levelResolver) Processor {
	return func(r *Record) *Record {
		if r.Level < resolver.effectiveLevel(r.Logger) {
			return nil
		}
		return r
	}
}

// stampProcessor attaches the UTC timestamp and, when configured, the service
// name as the leading field.
func stampProcessor(serviceName string, omitTimestamp bool) Processor {
	return func(r *Record) *Record {
		if !omitTimestamp {
			r.Timestamp = time.Now().UTC()
		}
		if serviceName != emptyString {
			r.Fields = append([]Field{{Key: keyService, Value: serviceName}}, r.Fields...)
		}
		return r
	}
}

func emitProcessor(emit *emitter) Processor {
	return func(r *Record) *Record {
		emit.emit(r)
		return r
	}
}
