// Package tracing wires OpenTelemetry into the service.
//
// Init installs an SDK tracer provider when tracing is enabled and always
// installs the W3C trace context propagator. Middleware opens a server span
// per HTTP request and echoes the trace ID in the X-Trace-Id header; the
// refresh loop opens one span per refresh cycle.
//
//	shutdown := tracing.Init(tracing.Config{Enabled: true, SampleRatio: 1})
//	defer func() { _ = shutdown(context.Background()) }()
package tracing
