// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LiveSessions tracks the number of sessions currently in the registry.
	LiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_sessions_live",
		Help: "Number of live chat sessions in the registry.",
	})

	// MessagesProcessed counts user turns handled by the dialog engine.
	MessagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_processed_total",
		Help: "Total chat turns processed by the dialog engine.",
	})

	// SessionsEvicted counts sessions removed by the idle sweep.
	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_sessions_evicted_total",
		Help: "Sessions removed by the idle sweep.",
	})

	// VerifyRequests counts recharge API lookups by classified outcome.
	VerifyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verify_requests_total",
		Help: "Recharge API lookups by outcome.",
	}, []string{"outcome"})
)
