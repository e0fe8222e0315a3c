package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	stageResults   *prom.CounterVec
	buildOutcome   *prom.CounterVec
	commandResults *prom.CounterVec
	warnings       prom.Counter
}

// NewPrometheusRecorder constructs and registers the build metrics on reg.
// A nil reg gets a private registry, which is what the one-shot CLI uses.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "uibuilder",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "uibuilder",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "uibuilder",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "uibuilder",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.commandResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "uibuilder",
		Name:      "command_results_total",
		Help:      "Subprocess invocations by command and result",
	}, []string{"command", "result"})
	pr.warnings = prom.NewCounter(prom.CounterOpts{
		Namespace: "uibuilder",
		Name:      "build_warnings_total",
		Help:      "Non-fatal warnings emitted during builds",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.commandResults, pr.warnings)
	return pr
}

// WriteTextfile snapshots the registry for a node_exporter textfile
// collector. prom.WriteToTextfile already writes via a temp file and rename.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncCommandResult(command string, exitCode int) {
	if p == nil || p.commandResults == nil {
		return
	}
	res := "success"
	if exitCode != 0 {
		res = "failure"
	}
	p.commandResults.WithLabelValues(command, res).Inc()
}

func (p *PrometheusRecorder) IncWarning() {
	if p == nil || p.warnings == nil {
		return
	}
	p.warnings.Inc()
}
