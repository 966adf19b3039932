package telemetry

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestFailoverWriter_ReportsFirstFailureOnce(t *testing.T) {
	primary := &failingWriter{}
	var alternate bytes.Buffer
	w := &failoverWriter{primary: primary, alternate: &alternate}

	n, err := w.Write([]byte("first\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// every write reaches the primary, only the first failure is reported
	assert.Equal(t, 2, primary.writes)
	assert.Equal(t, 1, bytes.Count(alternate.Bytes(), []byte("log emission failed")))
	assert.Contains(t, alternate.String(), "disk full")
}

func TestFailoverWriter_HealthyPrimaryWritesThrough(t *testing.T) {
	var primary, alternate bytes.Buffer
	w := &failoverWriter{primary: &primary, alternate: &alternate}

	n, err := w.Write([]byte("ok\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "ok\n", primary.String())
	assert.Zero(t, alternate.Len())
}
