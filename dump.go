package telemetry

import (
	"fmt"
	"reflect"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

const maxDumpElements = 10

// Dump logs the contents of the provided value at debug level, one line per
// leaf. Structs expand their exported fields, maps and slices their
// elements. A no-op when debug is below the effective level for this logger.
func (l *Logger) Dump(v interface{}) {
	if l == nil || l.svc == nil {
		return
	}
	sn := l.svc.currentSnapshot()
	if SeverityDebug < sn.resolver.effectiveLevel(l.name) {
		return
	}

	if v == nil {
		l.Debug("dump: <nil>")
		return
	}

	// Track visited pointers to prevent infinite recursion.
	visited := make(map[uintptr]bool)
	l.dumpValue(v, emptyString, visited, 0)
}

func (l *Logger) dumpValue(v interface{}, prefix string, visited map[uintptr]bool, depth int) {
	if depth > maxDumpDepth {
		l.Debug(fmt.Sprintf("%s: <max depth reached>", prefix))
		return
	}
	if v == nil {
		l.Debug(fmt.Sprintf("%s: <nil>", prefix))
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers with cycle detection.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				l.Debug(fmt.Sprintf("%s: <nil>", prefix))
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				l.Debug(fmt.Sprintf("%s: <nil>", prefix))
				return
			}
			ptr := val.Pointer()
			if visited[ptr] {
				l.Debug(fmt.Sprintf("%s: <circular reference>", prefix))
				return
			}
			visited[ptr] = true
			val = val.Elem()
			continue
		default:
		}
		break
	}

	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			l.Debug(fmt.Sprintf("dump: %s", typ.Name()))
		} else {
			l.Debug(fmt.Sprintf("%s: %s {", prefix, typ.Name()))
		}

		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)
			if !fieldVal.CanInterface() {
				continue
			}
			fieldPrefix := field.Name
			if prefix != emptyString {
				fieldPrefix = prefix + "." + field.Name
			}
			l.dumpValue(fieldVal.Interface(), fieldPrefix, visited, depth+1)
		}

		if prefix != emptyString {
			l.Debug(fmt.Sprintf("%s: }", prefix))
		}

	case reflect.Map:
		l.Debug(fmt.Sprintf("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len()))

		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			l.dumpValue(iter.Value().Interface(), prefix+"["+keyStr+"]", visited, depth+1)
		}

		l.Debug(fmt.Sprintf("%s: }", prefix))

	case reflect.Slice, reflect.Array:
		l.Debug(fmt.Sprintf("%s: %s (len: %d) {", prefix, typ.String(), val.Len()))

		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elem := val.Index(i)
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			if elem.CanInterface() {
				l.dumpValue(elem.Interface(), elemPrefix, visited, depth+1)
			}
		}
		if val.Len() > maxDumpElements {
			l.Debug(fmt.Sprintf("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements))
		}

		l.Debug(fmt.Sprintf("%s: }", prefix))

	default:
		if val.IsValid() && val.CanInterface() {
			l.Debug(fmt.Sprintf("%s: %v", prefix, val.Interface()))
		} else {
			l.Debug(fmt.Sprintf("%s: %v", prefix, v))
		}
	}
}
