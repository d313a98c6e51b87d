// Package metrics exposes Prometheus counters for the tick loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// Metrics holds the game collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ticks         prometheus.Counter
	locks         prometheus.Counter
	linesCleared  prometheus.Counter
	resets        prometheus.Counter
	spawns        prometheus.Counter
	intents       *prometheus.CounterVec
	fetchErrors   prometheus.Counter
	publishErrors prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_ticks_total",
			Help: "Total number of ticks run.",
		}),
		locks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_pieces_locked_total",
			Help: "Pieces that locked onto the board.",
		}),
		linesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_lines_cleared_total",
			Help: "Full rows removed from the board.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_board_resets_total",
			Help: "Times the stack overflowed and the board restarted.",
		}),
		spawns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_pieces_spawned_total",
			Help: "Pieces spawned after the previous one locked.",
		}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crowdtris_intents_total",
			Help: "Intents applied, by winning vote.",
		}, []string{"intent"}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_fetch_errors_total",
			Help: "Failed reply fetches.",
		}),
		publishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowdtris_publish_errors_total",
			Help: "Failed board publishes.",
		}),
	}

	m.registry.MustRegister(
		m.ticks, m.locks, m.linesCleared, m.resets, m.spawns,
		m.intents, m.fetchErrors, m.publishErrors,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveTick records the outcome of one tick.
func (m *Metrics) ObserveTick(res tetris.TickResult) {
	m.ticks.Inc()
	m.intents.WithLabelValues(res.Intent.String()).Inc()
	if res.Locked {
		m.locks.Inc()
	}
	if res.Reset {
		m.resets.Inc()
	}
	if res.Spawned {
		m.spawns.Inc()
	}
	m.linesCleared.Add(float64(len(res.Cleared)))
}

// FetchFailed counts a failed reply fetch.
func (m *Metrics) FetchFailed() {
	m.fetchErrors.Inc()
}

// PublishFailed counts a failed publish.
func (m *Metrics) PublishFailed() {
	m.publishErrors.Inc()
}

// Intent returns the counter for one intent label.
func (m *Metrics) Intent(i vote.Intent) prometheus.Counter {
	return m.intents.WithLabelValues(i.String())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
