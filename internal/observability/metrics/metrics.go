// Package metrics exposes Prometheus collectors for classification and chat flows.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Reply outcomes recorded by ObserveReply.
const (
	OutcomeCrisis   = "crisis"
	OutcomeOffTopic = "off_topic"
	OutcomeLLM      = "llm"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
)

// ChatMetrics counts classifier signals and reply outcomes.
type ChatMetrics struct {
	classified *prometheus.CounterVec
	replies    *prometheus.CounterVec
	llmLatency prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zetazen",
			Subsystem: "classifier",
			Name:      "messages_total",
			Help:      "User messages classified, by detected mood and crisis flag",
		}, []string{"mood", "crisis"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zetazen",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Assistant replies by outcome",
		}, []string{"outcome"}),
		llmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zetazen",
			Subsystem: "chat",
			Name:      "llm_latency_seconds",
			Help:      "Latency of generative reply calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.classified, m.replies, m.llmLatency)
	return m
}

func (m *ChatMetrics) ObserveClassification(mood string, crisis bool) {
	if m == nil {
		return
	}
	if mood == "" {
		mood = "none"
	}
	m.classified.WithLabelValues(mood, strconv.FormatBool(crisis)).Inc()
}

func (m *ChatMetrics) ObserveReply(outcome string) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveLLMLatency(seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.Observe(seconds)
}
