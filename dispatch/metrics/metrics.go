// Package metrics holds the Prometheus collectors the dispatch engine
// reports its activity to: packets sent and received, retries,
// timeouts, and in-flight waiter counts. Each Metrics value owns its
// own collectors and is safe to register against any registerer; New
// does not register against the default global registry so that
// multiple Engines (as in tests) don't collide on metric names.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of counters and gauges the dispatch engine
// updates as it sends packets, retries, resolves, and times out.
type Metrics struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	PacketsDropped  *prometheus.CounterVec
	Retries         prometheus.Counter
	Timeouts        prometheus.Counter
	InFlight        prometheus.Gauge
}

// New builds a Metrics with its own unregistered collectors.
func New() *Metrics {
	return &Metrics{
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "packets_sent_total",
			Help:      "Number of LIFX LAN protocol packets transmitted, including retries.",
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "packets_received_total",
			Help:      "Number of UDP datagrams read off the engine's socket.",
		}),
		PacketsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "packets_dropped_total",
			Help:      "Number of received datagrams discarded, by reason.",
		}, []string{"reason"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "retries_total",
			Help:      "Number of retransmissions issued across all operations.",
		}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "timeouts_total",
			Help:      "Number of operations that exhausted their retry budget.",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lifx",
			Subsystem: "dispatch",
			Name:      "operations_in_flight",
			Help:      "Number of operations currently awaiting a reply.",
		}),
	}
}

// Collectors returns every collector in m, for bulk registration:
// reg.MustRegister(m.Collectors()...).
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PacketsSent,
		m.PacketsReceived,
		m.PacketsDropped,
		m.Retries,
		m.Timeouts,
		m.InFlight,
	}
}
