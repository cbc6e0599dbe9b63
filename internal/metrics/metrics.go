// Package metrics records conversion outcomes for operators.
//
// The HTTP transport serves a Prometheus recorder; CLI and stdio paths use
// the no-op recorder so conversion code records unconditionally.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Compile-time interface implementation checks.
var (
	_ Recorder = NopRecorder{}
	_ Recorder = (*PromRecorder)(nil)
)

// Recorder defines the observability hook for conversions. The tool label
// names the entry point (an MCP tool name or "cli").
type Recorder interface {
	RecordConversion(tool string, d time.Duration, inputBytes, outputBytes int, err error)
}

// NopRecorder is a Recorder that does nothing.
type NopRecorder struct{}

func (NopRecorder) RecordConversion(string, time.Duration, int, int, error) {}

// NewNopRecorder returns a Recorder that discards all observations.
func NewNopRecorder() Recorder {
	return NopRecorder{}
}

// PromRecorder implements Recorder on a private Prometheus registry, so
// registration never collides with other libraries' default-registry use.
type PromRecorder struct {
	registry    *prom.Registry
	conversions *prom.CounterVec
	duration    *prom.HistogramVec
	inputBytes  prom.Counter
	outputBytes prom.Counter
}

// NewPromRecorder constructs and registers the md2text metrics.
func NewPromRecorder() *PromRecorder {
	r := &PromRecorder{
		registry: prom.NewRegistry(),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "md2text",
			Name:      "conversions_total",
			Help:      "Conversion counts by tool and status",
		}, []string{"tool", "status"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "md2text",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion duration by tool",
			Buckets:   prom.DefBuckets,
		}, []string{"tool"}),
		inputBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: "md2text",
			Name:      "input_bytes_total",
			Help:      "Total markdown bytes accepted for conversion",
		}),
		outputBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: "md2text",
			Name:      "output_bytes_total",
			Help:      "Total plain-text bytes produced",
		}),
	}
	r.registry.MustRegister(r.conversions, r.duration, r.inputBytes, r.outputBytes)
	return r
}

// RecordConversion counts one conversion attempt. Failed conversions carry
// outputBytes 0.
func (r *PromRecorder) RecordConversion(tool string, d time.Duration, inputBytes, outputBytes int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.conversions.WithLabelValues(tool, status).Inc()
	r.duration.WithLabelValues(tool).Observe(d.Seconds())
	r.inputBytes.Add(float64(inputBytes))
	r.outputBytes.Add(float64(outputBytes))
}

// HTTPHandler returns a handler serving the recorder's registry in
// Prometheus exposition format with OpenMetrics negotiation enabled.
func (r *PromRecorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
