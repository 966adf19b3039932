package telemetry

import (
	"fmt"
	"time"
)

// Field is a single key/value pair attached to a record. Fields preserve
// insertion order through encoding.
type Field struct {
	Key   string
	Value interface{}
}

// Record is one in-flight log record flowing through the pipeline. Stages
// transform it in memory; only the final stage performs I/O.
type Record struct {
	Logger    string
	Level     Severity
	Event     string
	Timestamp time.Time
	Fields    []Field

	// failure context captured synchronously at the call site for
	// exception calls; nil otherwise.
	err   error
	stack []byte
}

// Processor is one stage of the pipeline. Returning nil drops the record and
// stops the chain.
type Processor func(*Record) *Record

func (r *Record) appendField(key string, value interface{}) {
	r.Fields = append(r.Fields, Field{Key: key, Value: value})
}

// field returns the first value recorded under key.
func (r *Record) field(key string) (interface{}, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// fieldsFromKV converts alternating key/value arguments into ordered fields.
// Non-string keys are stringified; a dangling trailing key gets a nil value.
func fieldsFromKV(kv []interface{}) []Field {
	if len(kv) == 0 {
		return nil
	}
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		var value interface{}
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}
