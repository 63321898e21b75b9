package api

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assess_sessions_created_total",
	})
	sessionCreateFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assess_session_create_failures_total",
	})
	sessionDestroyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assess_session_destroy_failures_total",
	})
	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "assess_sessions_active",
	})
)

func init() {
	prometheus.MustRegister(sessionsCreated, sessionCreateFailures, sessionDestroyFailures, activeSessions)
}
