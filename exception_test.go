package telemetry

import (
	"fmt"
	"strings"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectErrorChain_DetailedAndStd(t *testing.T) {
	inner := smerrors.New("db.Connect").Msg("dial tcp 127.0.0.1:5432: connect: connection refused")
	middle := smerrors.New("db.Open").Err(inner).Msg("failed to connect to database")
	outer := smerrors.New("server.Start").Err(middle).Msg("startup failed")

	chain := collectErrorChain(outer)
	assert.Equal(t, []string{
		"startup failed",
		"failed to connect to database",
		"dial tcp 127.0.0.1:5432: connect: connection refused",
	}, chain.messages)
	assert.Equal(t, "dial tcp 127.0.0.1:5432: connect: connection refused", chain.root())
	assert.Equal(t, "db.Connect", chain.rootOp())

	// a plain wrapping layer contributes its own message and keeps the root
	wrapped := fmt.Errorf("wrap: %w", outer)
	chain2 := collectErrorChain(wrapped)
	require.NotEmpty(t, chain2.messages)
	assert.True(t, strings.HasPrefix(chain2.messages[0], "wrap:"))
	assert.Equal(t, chain.root(), chain2.root())
}

func TestErrorChain_Accessors(t *testing.T) {
	var empty errorChain
	assert.Zero(t, empty.depth())
	assert.Equal(t, "", empty.root())
	assert.Equal(t, "", empty.rootOp())
	assert.Equal(t, "", empty.history())

	c := errorChain{messages: []string{"a", "b"}, ops: []string{"op.A", ""}}
	assert.Equal(t, 2, c.depth())
	assert.Equal(t, "b", c.root())
	assert.Equal(t, "", c.rootOp())
	assert.Equal(t, "a -> b", c.history())
}

func TestExceptionProcessor_AttachesFailureContext(t *testing.T) {
	err := smerrors.New("db.Query").Msg("relation does not exist")
	r := &Record{
		Logger: "app.db",
		Level:  SeverityError,
		Event:  "query failed",
		err:    err,
		stack:  captureStack(),
	}

	out := exceptionProcessor(r)
	require.NotNil(t, out)

	typ, ok := out.field("error_type")
	require.True(t, ok)
	assert.NotEmpty(t, typ)

	msg, ok := out.field("error_message")
	require.True(t, ok)
	assert.Equal(t, "relation does not exist", msg)

	stack, ok := out.field("error_stack")
	require.True(t, ok)
	assert.Contains(t, stack.(string), "goroutine")
}

func TestExceptionProcessor_ChainFields(t *testing.T) {
	inner := smerrors.New("db.Connect").Msg("connection refused")
	outer := smerrors.New("server.Start").Err(inner).Msg("startup failed")

	r := &Record{Logger: "app", Level: SeverityError, Event: "boom", err: outer}
	out := exceptionProcessor(r)
	require.NotNil(t, out)

	chain, ok := out.field("error_chain")
	require.True(t, ok)
	assert.Equal(t, []string{"startup failed", "connection refused"}, chain)

	root, ok := out.field("error_root")
	require.True(t, ok)
	assert.Equal(t, "connection refused", root)

	history, ok := out.field("error_history")
	require.True(t, ok)
	assert.Equal(t, "startup failed -> connection refused", history)

	rootOp, ok := out.field("error_root_op")
	require.True(t, ok)
	assert.Equal(t, "db.Connect", rootOp)
}

func TestExceptionProcessor_NoFailureIsPassThrough(t *testing.T) {
	r := &Record{Logger: "app", Level: SeverityError, Event: "fine actually"}
	out := exceptionProcessor(r)
	require.NotNil(t, out)
	assert.Empty(t, out.Fields)
}

func TestCaptureStack_NonEmpty(t *testing.T) {
	stack := captureStack()
	require.NotEmpty(t, stack)
	assert.Contains(t, string(stack), "captureStack")
}
