package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FetchCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_fetch_cycles_total",
			Help: "Fetch-map-upsert cycles by result",
		},
		[]string{"result"},
	)

	UpstreamRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reservation_upstream_request_duration_seconds",
			Help:    "Duration of booking queries against the vendor API",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReservationsUpsertedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_upserted_total",
			Help: "Reservation rows written by fetch cycles",
		},
	)

	SyncEventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservation_sync_events_published_total",
			Help: "ReservationSynced events handed to the producer",
		},
	)

	CalendarRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_renders_total",
			Help: "Calendar document requests by result",
		},
		[]string{"result"},
	)
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(FetchCyclesTotal)
	reg.MustRegister(UpstreamRequestDuration)
	reg.MustRegister(ReservationsUpsertedTotal)
	reg.MustRegister(SyncEventsPublishedTotal)
	reg.MustRegister(CalendarRendersTotal)
}
