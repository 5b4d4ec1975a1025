package tool

import "context"

// Progress is one progress update emitted by a running tool. Percent is
// optional and in [0,100]; tools may omit a final 100% event.
type Progress struct {
	Percent *float64 `json:"percent,omitempty"`
	Message string   `json:"message,omitempty"`
}

// ProgressSink receives progress updates from a running tool. Calls are
// synchronous and fire-and-forget; no delivery guarantee beyond "called
// zero or more times before the invocation returns".
type ProgressSink interface {
	Report(p Progress)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(p Progress)

func (f ProgressFunc) Report(p Progress) { f(p) }

type nopSink struct{}

func (nopSink) Report(Progress) {}

// RunContext is the per-invocation object exposing cancellation and
// progress reporting to a running tool. Created fresh per invocation,
// never shared.
type RunContext struct {
	ctx  context.Context
	sink ProgressSink
}

// NewRunContext builds a run context. Nil arguments fall back to
// context.Background and a discarding sink.
func NewRunContext(ctx context.Context, sink ProgressSink) *RunContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &RunContext{ctx: ctx, sink: sink}
}

// Context returns the cancellation context. Cancellation is cooperative:
// long-running tool bodies check Err at iteration boundaries.
func (rc *RunContext) Context() context.Context {
	return rc.ctx
}

// Err returns a non-nil error once the invocation has been cancelled.
func (rc *RunContext) Err() error {
	return rc.ctx.Err()
}

// Progress reports a percent-and-message update.
func (rc *RunContext) Progress(percent float64, message string) {
	rc.sink.Report(Progress{Percent: &percent, Message: message})
}

// Message reports a message-only update.
func (rc *RunContext) Message(message string) {
	rc.sink.Report(Progress{Message: message})
}
