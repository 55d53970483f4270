// Package observability exposes the Prometheus collectors of the mixer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Outcome string

const (
	OutcomeComposed Outcome = "composed"
	OutcomeEmpty    Outcome = "empty"
	OutcomeFailed   Outcome = "failed"
)

type Metrics struct {
	Compositions        *prometheus.CounterVec
	CompositionDuration prometheus.Histogram
	PreferenceTokens    *prometheus.CounterVec
	TextRequests        *prometheus.CounterVec
	ProcessCPU          prometheus.Gauge
	ProcessRSS          prometheus.Gauge
}

// NewMetrics registers every collector on reg. Use a fresh prometheus.NewRegistry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Compositions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poplab_compositions_total",
				Help: "Total number of composition requests by outcome",
			},
			[]string{"outcome"},
		),
		CompositionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "poplab_composition_duration_seconds",
				Help: "Duration of the composition algorithm in seconds",
				// Composition is pure CPU over a small catalog
				Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
			},
		),
		PreferenceTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poplab_preference_tokens_total",
				Help: "Preference tokens seen by the classifier, by bucket",
			},
			[]string{"bucket"},
		),
		TextRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poplab_text_requests_total",
				Help: "Free-text composition requests by detected language",
			},
			[]string{"lang"},
		),
		ProcessCPU: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "poplab_process_cpu_percent",
				Help: "CPU usage of the mixer process, sampled periodically",
			},
		),
		ProcessRSS: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "poplab_process_resident_memory_bytes",
				Help: "Resident memory of the mixer process, sampled periodically",
			},
		),
	}
}

func (m *Metrics) RecordComposition(outcome Outcome, elapsed time.Duration) {
	m.Compositions.WithLabelValues(string(outcome)).Inc()
	m.CompositionDuration.Observe(elapsed.Seconds())
}

// RecordTokens adds the bucket sizes of one request.
func (m *Metrics) RecordTokens(syrups, sodas, addins, dropped int) {
	m.PreferenceTokens.WithLabelValues("syrup").Add(float64(syrups))
	m.PreferenceTokens.WithLabelValues("soda").Add(float64(sodas))
	m.PreferenceTokens.WithLabelValues("addin").Add(float64(addins))
	m.PreferenceTokens.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordText counts a free-text request. lang is an ISO 639-1 code, empty when undetected.
func (m *Metrics) RecordText(lang string) {
	if lang == "" {
		lang = "unknown"
	}
	m.TextRequests.WithLabelValues(lang).Inc()
}

func (m *Metrics) RecordProcess(cpuPercent float64, rssBytes uint64) {
	m.ProcessCPU.Set(cpuPercent)
	m.ProcessRSS.Set(float64(rssBytes))
}
