// Package metrics counts pipeline outcomes with Prometheus collectors
// registered on an injected registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

const namespace = "forge"

// Outcome labels
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeSuccess  = "success"
)

// Cache lookup labels
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Recorder counts pipeline outcomes
type Recorder interface {
	ScriptGenerated(subject, outcome string)
	ValidationFinding(stage, severity string)
	Transform(subject, outcome string)
	CacheLookup(result string)
}

// PrometheusRecorder backs Recorder with counter vectors
type PrometheusRecorder struct {
	scriptsGenerated   *prometheus.CounterVec
	validationFindings *prometheus.CounterVec
	transforms         *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewRecorder registers the forge counters on reg
func NewRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		return nil, errors.InvalidArgument("registerer is required")
	}

	r := &PrometheusRecorder{
		scriptsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scripts_generated_total",
			Help:      "Scripts produced by the generate flow, by subject and outcome",
		}, []string{"subject", "outcome"}),
		validationFindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_findings_total",
			Help:      "Validator findings by stage and severity",
		}, []string{"stage", "severity"}),
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transforms_total",
			Help:      "Source-to-template transforms by subject and outcome",
		}, []string{"subject", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Script cache lookups by result",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{r.scriptsGenerated, r.validationFindings, r.transforms, r.cacheLookups} {
		if err := reg.Register(c); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to register metrics")
		}
	}

	return r, nil
}

// ScriptGenerated counts a generate outcome
func (r *PrometheusRecorder) ScriptGenerated(subject, outcome string) {
	r.scriptsGenerated.WithLabelValues(subject, outcome).Inc()
}

// ValidationFinding counts one validator finding
func (r *PrometheusRecorder) ValidationFinding(stage, severity string) {
	r.validationFindings.WithLabelValues(stage, severity).Inc()
}

// Transform counts a transform outcome
func (r *PrometheusRecorder) Transform(subject, outcome string) {
	r.transforms.WithLabelValues(subject, outcome).Inc()
}

// CacheLookup counts a cache lookup
func (r *PrometheusRecorder) CacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Noop discards everything
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) ScriptGenerated(string, string)   {}
func (Noop) ValidationFinding(string, string) {}
func (Noop) Transform(string, string)         {}
func (Noop) CacheLookup(string)               {}

// WriteTextfile writes everything gathered by g in the text exposition
// format, for the node exporter's textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to write metrics").WithPath(path)
	}
	return nil
}

// NewRegistry returns a fresh registry carrying forge_build_info for the
// given version
func NewRegistry(version string) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Always 1; the version label carries the build",
		ConstLabels: prometheus.Labels{"version": version},
	}).Set(1)
	return reg
}
