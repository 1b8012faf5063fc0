package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_rooms_created_total",
		Help: "Rooms created.",
	})
	RoomsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_rooms_destroyed_total",
		Help: "Rooms explicitly destroyed (TTL expiry not counted).",
	})
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_sent_total",
		Help: "Messages appended to room logs.",
	})
	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_events_published_total",
		Help: "Events published to the broadcast bus.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
