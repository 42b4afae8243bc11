// Package telemetry wraps gopkg.in/DataDog/dd-trace-go.v1's tracer with
// the two manual spans this engine has a real start/end duration for: a
// tag-file lifecycle operation, and an outermost cork flush. Tracing is
// opt-in and cheap when off: Start returns a no-op Span so the hot path
// (corking disabled, tracing disabled) never touches the tracer package.
//
// The engine never calls tracer.Start/Stop itself — that is the host
// application's call, matching dd-trace-go's own convention of the
// integrating application owning the global tracer lifecycle.
package telemetry

import "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

// Span is a started unit of work; call Finish exactly once.
type Span struct {
	span    tracer.Span
	enabled bool
}

// Start begins a span named resource under operation when enabled is
// true; otherwise it returns a disabled Span whose Finish is a no-op.
func Start(enabled bool, operation, resource string) Span {
	if !enabled {
		return Span{}
	}
	s := tracer.StartSpan(operation, tracer.ResourceName(resource))
	return Span{span: s, enabled: true}
}

// Tag sets a tag on the span if tracing is enabled.
func (s Span) Tag(key string, value any) {
	if !s.enabled {
		return
	}
	s.span.SetTag(key, value)
}

// Finish completes the span, recording err if non-nil.
func (s Span) Finish(err error) {
	if !s.enabled {
		return
	}
	if err != nil {
		s.span.Finish(tracer.WithError(err))
		return
	}
	s.span.Finish()
}
