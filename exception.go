package telemetry

import (
	stderrs "errors"
	"fmt"
	"runtime/debug"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// captureStack formats the calling goroutine's stack. It must run at the
// call site, before any scheduling point, because the failure context is not
// guaranteed to survive a yield to another goroutine.
func captureStack() []byte {
	return debug.Stack()
}

// exceptionProcessor attaches the captured failure context as structured
// fields: the error's type, message and formatted stack, plus the full cause
// chain. A record without a failure passes through unchanged.
func exceptionProcessor(r *Record) *Record {
	if r.err == nil {
		return r
	}

	r.appendField("error_type", fmt.Sprintf("%T", r.err))
	r.appendField("error_message", r.err.Error())

	chain := collectErrorChain(r.err)
	if chain.depth() > 1 {
		r.appendField("error_chain", chain.messages)
		r.appendField("error_root", chain.root())
		r.appendField("error_history", chain.history())
		r.appendField("error_ops", chain.ops)
		if op := chain.rootOp(); op != emptyString {
			r.appendField("error_root_op", op)
		}
	}

	if len(r.stack) > 0 {
		r.appendField("error_stack", string(r.stack))
	}
	return r
}

// errorChain is the flattened cause chain of a failure, outermost first.
// ops holds the operation identifier of each link, "" for links that are not
// detailed errors.
type errorChain struct {
	messages []string
	ops      []string
}

func (c errorChain) depth() int {
	return len(c.messages)
}

func (c errorChain) root() string {
	if len(c.messages) == 0 {
		return emptyString
	}
	return c.messages[len(c.messages)-1]
}

func (c errorChain) rootOp() string {
	if len(c.ops) == 0 {
		return emptyString
	}
	return c.ops[len(c.ops)-1]
}

func (c errorChain) history() string {
	return strings.Join(c.messages, " -> ")
}

// collectErrorChain flattens err into an errorChain. Detailed errors
// contribute their op and unwrap through Cause; anything else unwraps through
// the stdlib. Depth is capped and a repeated plain message stops the walk,
// guarding against cyclic chains.
func collectErrorChain(err error) errorChain {
	const maxDepth = 50

	var c errorChain
	seen := map[string]bool{}
	for err != nil && c.depth() < maxDepth {
		msg := err.Error()
		op := emptyString
		next := stderrs.Unwrap(err)
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			msg = dErr.Error()
			op = string(dErr.Op())
			next = dErr.Cause()
		} else if seen[msg] {
			break
		}
		seen[msg] = true
		c.messages = append(c.messages, msg)
		c.ops = append(c.ops, op)
		err = next
	}
	return c
}
