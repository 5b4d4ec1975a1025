package tool

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Executor resolves tools from a registry and runs them through the
// invocation protocol: resolve, merge+validate options, validate input
// shape, construct a run context, invoke.
type Executor struct {
	reg *Registry
}

// NewExecutor creates an executor over a registry.
func NewExecutor(reg *Registry) *Executor {
	return &Executor{reg: reg}
}

// Execute runs the tool with the given id. The supplied options may be
// partial; missing fields take the tool's declared defaults. On error no
// output is produced: partial output is never valid.
func (e *Executor) Execute(ctx context.Context, id string, input Input, supplied map[string]interface{}, sink ProgressSink) (Output, error) {
	start := time.Now()

	t := e.reg.Get(id)
	if t == nil {
		log.Error().Str("tool", id).Msg("Tool not found")
		return Output{}, ErrNotFound(id)
	}

	opts, err := mergeAndValidate(t, e.reg.schema(id), supplied)
	if err != nil {
		log.Error().Str("tool", id).Err(err).Msg("Option validation failed")
		return Output{}, err
	}

	if err := validateInput(t, input); err != nil {
		log.Error().Str("tool", id).Err(err).Msg("Input validation failed")
		return Output{}, err
	}

	rc := NewRunContext(ctx, sink)

	log.Debug().Str("tool", id).Msg("Executing tool")

	out, err := t.Run(rc, input, opts)
	duration := time.Since(start)
	if err != nil {
		log.Error().Str("tool", id).Dur("duration", duration).Err(err).Msg("Tool execution failed")
		return Output{}, err
	}

	log.Debug().Str("tool", id).Dur("duration", duration).Msg("Tool execution completed")

	return out, nil
}
