// Package metrics exposes Prometheus instruments for the clock daemon.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

const (
	metricPrefix = "hydration_clock_"

	// ResultDelivered labels a notification shown by the platform.
	ResultDelivered = "delivered"
	// ResultFailed labels a notification the platform rejected.
	ResultFailed = "failed"
	// ResultDropped labels a notification discarded because the queue was full.
	ResultDropped = "dropped"
)

// Metrics groups the daemon instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	alarmsFired       prometheus.Counter
	remindersEmitted  prometheus.Counter
	notifications     *prometheus.CounterVec
	remindersEnabled  prometheus.Gauge
	alarmsArmed       prometheus.Gauge
	alarmChecksMissed prometheus.Counter
}

// New creates the instruments on a private registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		alarmsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "alarms_fired_total",
			Help: "Total alarms that fired and disarmed",
		}),
		remindersEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "reminders_emitted_total",
			Help: "Total hydration reminders pushed to the notification sink",
		}),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notifications_total",
				Help: "Notifications by delivery result",
			},
			[]string{"result"},
		),
		remindersEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "reminders_enabled",
			Help: "1 while hydration reminders are enabled",
		}),
		alarmsArmed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "alarms_armed",
			Help: "Number of armed alarms",
		}),
		alarmChecksMissed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "alarm_check_gaps_total",
			Help: "Alarm checks that happened more than a minute after the previous one",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.alarmsFired,
		m.remindersEmitted,
		m.notifications,
		m.remindersEnabled,
		m.alarmsArmed,
		m.alarmChecksMissed,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// AlarmFired records a fired alarm.
func (m *Metrics) AlarmFired(domain.Entry) {
	if m == nil {
		return
	}

	m.alarmsFired.Inc()
}

// ReminderEmitted records a reminder push.
func (m *Metrics) ReminderEmitted(string) {
	if m == nil {
		return
	}

	m.remindersEmitted.Inc()
}

// NotificationResult records a delivery outcome.
func (m *Metrics) NotificationResult(result string) {
	if m == nil {
		return
	}

	m.notifications.WithLabelValues(result).Inc()
}

// SetRemindersEnabled mirrors the reminder toggle.
func (m *Metrics) SetRemindersEnabled(enabled bool) {
	if m == nil {
		return
	}

	value := 0.0
	if enabled {
		value = 1
	}

	m.remindersEnabled.Set(value)
}

// SetArmedAlarms mirrors the number of armed alarms in entries.
func (m *Metrics) SetArmedAlarms(entries []domain.Entry) {
	if m == nil {
		return
	}

	armed := 0
	for _, e := range entries {
		if e.Alarm.Armed {
			armed++
		}
	}

	m.alarmsArmed.Set(float64(armed))
}

// AlarmCheckGap records an alarm check that came too late.
func (m *Metrics) AlarmCheckGap() {
	if m == nil {
		return
	}

	m.alarmChecksMissed.Inc()
}
