// Package metrics holds the Prometheus collectors of the API. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	TasksCompleted   prometheus.Counter
	InvitesResolved  *prometheus.CounterVec
	FeatureDenied    *prometheus.CounterVec
	RemindersCreated prometheus.Counter
	EmailsFailed     prometheus.Counter
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		TasksCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_tasks_completed_total",
			Help: "Total number of tasks toggled to completed",
		}),
		InvitesResolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_invites_resolved_total",
			Help: "Invites accepted or declined, by invite type",
		}, []string{"type", "outcome"}),
		FeatureDenied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_feature_denied_total",
			Help: "Requests rejected because the plan lacks a feature",
		}, []string{"feature"}),
		RemindersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_reminders_created_total",
			Help: "Task reminder notifications created by the scheduler",
		}),
		EmailsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_emails_failed_total",
			Help: "Outbound e-mails that could not be delivered",
		}),
	}
}

// RegisterGauge exposes a value computed at scrape time, e.g. connected websocket clients.
func RegisterGauge(reg prometheus.Registerer, name, help string, fn func() float64) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, fn)
}

// Middleware records request durations labelled by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncTaskCompleted() {
	if m == nil {
		return
	}
	m.TasksCompleted.Inc()
}

func (m *Metrics) IncInviteResolved(inviteType, outcome string) {
	if m == nil {
		return
	}
	m.InvitesResolved.WithLabelValues(inviteType, outcome).Inc()
}

func (m *Metrics) IncFeatureDenied(feature string) {
	if m == nil {
		return
	}
	m.FeatureDenied.WithLabelValues(feature).Inc()
}

func (m *Metrics) AddRemindersCreated(n int) {
	if m == nil {
		return
	}
	m.RemindersCreated.Add(float64(n))
}

func (m *Metrics) IncEmailFailed() {
	if m == nil {
		return
	}
	m.EmailsFailed.Inc()
}
