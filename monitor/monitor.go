// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/whist/event"
)

type Metrics struct {
	OnlinePlayers   prometheus.Gauge
	ActiveTables    prometheus.Gauge
	GamesStarted    prometheus.Counter
	RoundsFinished  prometheus.Counter
	TricksFinished  prometheus.Counter
	CardsPlayed     prometheus.Counter
	BidsMade        prometheus.Counter
	PacketsReceived prometheus.Counter
	RejectedActions *prometheus.CounterVec
	ActionLatency   prometheus.Histogram
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected players",
		}),
		ActiveTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tables",
			Help:      "Number of open tables",
		}),
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Total number of games started",
		}),
		RoundsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_finished_total",
			Help:      "Total number of rounds played to the end",
		}),
		TricksFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tricks_finished_total",
			Help:      "Total number of resolved tricks",
		}),
		CardsPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_played_total",
			Help:      "Total number of cards played",
		}),
		BidsMade: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_made_total",
			Help:      "Total number of bids recorded",
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_received_total",
			Help:      "Total number of packets received",
		}),
		RejectedActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_actions_total",
			Help:      "Player actions refused by the table, by reason",
		}, []string{"reason"}),
		ActionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_latency_seconds",
			Help:      "Player action processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	reg.MustRegister(
		m.OnlinePlayers,
		m.ActiveTables,
		m.GamesStarted,
		m.RoundsFinished,
		m.TricksFinished,
		m.CardsPlayed,
		m.BidsMade,
		m.PacketsReceived,
		m.RejectedActions,
		m.ActionLatency,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	startTime time.Time
}

// NewMonitor registers its metrics with the default prometheus registry.
func NewMonitor(namespace string) *Monitor {
	return newMonitor(namespace, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMonitorWithRegistry registers its metrics with reg, which also serves /metrics.
func NewMonitorWithRegistry(namespace string, reg *prometheus.Registry) *Monitor {
	return newMonitor(namespace, reg, reg)
}

func newMonitor(namespace string, reg prometheus.Registerer, g prometheus.Gatherer) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace, reg),
		gatherer:  g,
		startTime: time.Now(),
	}
}

func (m *Monitor) Metrics() *Metrics { return m.metrics }

// Handler serves the registered metrics.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Monitor) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/uptime", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(time.Since(m.startTime).Round(time.Second).String()))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go srv.ListenAndServe()
	return srv
}

// OnEvent counts game events; a Monitor is attached to every table's event log.
func (m *Monitor) OnEvent(e event.Event) {
	switch e.Type {
	case event.NewGame:
		m.metrics.GamesStarted.Inc()
	case event.CardPlayed:
		m.metrics.CardsPlayed.Inc()
	case event.HandFinished:
		m.metrics.TricksFinished.Inc()
	case event.RoundFinished:
		m.metrics.RoundsFinished.Inc()
	case event.BidMade:
		m.metrics.BidsMade.Inc()
	}
}

func (m *Monitor) IncOnlinePlayers() {
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetActiveTables(count int) {
	m.metrics.ActiveTables.Set(float64(count))
}

func (m *Monitor) IncPacketsReceived() {
	m.metrics.PacketsReceived.Inc()
}

func (m *Monitor) IncRejectedAction(reason string) {
	m.metrics.RejectedActions.WithLabelValues(reason).Inc()
}

func (m *Monitor) ObserveActionLatency(duration time.Duration) {
	m.metrics.ActionLatency.Observe(duration.Seconds())
}
