// Package metrics exposes reminder and cache activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mikey/id-bot/internal/core"
)

const namespace = "idbot"

// Recorder counts classified messages, reminders and cache expiry
type Recorder struct {
	registry *prometheus.Registry

	messagesClassified *prometheus.CounterVec
	remindersSent      *prometheus.CounterVec
	remindersRetracted prometheus.Counter
	cacheExpired       prometheus.Counter
}

// NewRecorder registers the bot's metrics on a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		messagesClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_classified_total",
			Help:      "Messages from people classified, by identification verdict.",
		}, []string{"verdict"}),
		remindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Reminder replies posted, by identification verdict.",
		}, []string{"verdict"}),
		remindersRetracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_retracted_total",
			Help:      "Reminder replies deleted after an edit or delete of the original message.",
		}),
		cacheExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_entries_expired_total",
			Help:      "Reply cache entries removed for exceeding the maximum stale lifetime.",
		}),
	}
}

// Registry returns the registry the metrics are registered on
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) MessageClassified(verdict core.Verdict) {
	r.messagesClassified.WithLabelValues(string(verdict)).Inc()
}

func (r *Recorder) ReminderSent(verdict core.Verdict) {
	r.remindersSent.WithLabelValues(string(verdict)).Inc()
}

func (r *Recorder) ReminderRetracted() {
	r.remindersRetracted.Inc()
}

// CacheEntriesExpired is passed to the cache expirator as its expiry observer
func (r *Recorder) CacheEntriesExpired(expired int) {
	r.cacheExpired.Add(float64(expired))
}

// TrackCacheSize exposes the number of cached reminders as a gauge read on scrape
func (r *Recorder) TrackCacheSize(size func() int) {
	promauto.With(r.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Reminder replies currently remembered.",
	}, func() float64 {
		return float64(size())
	})
}

var _ core.Metrics = (*Recorder)(nil)
