package reporter

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ventoux/partita/handler"
)

// Prometheus reports pool events as Prometheus metrics under the
// partita_dispatch namespace:
//
//	partita_dispatch_records_submitted_total{topic}
//	partita_dispatch_records_handled_total{topic, worker}
//	partita_dispatch_workers_running
type Prometheus struct {
	submitted *prometheus.CounterVec
	handled   *prometheus.CounterVec
	workers   prometheus.Gauge

	registerer prometheus.Registerer
}

// NewPrometheus creates a Prometheus reporter. A nil registerer means
// the default one. Call Register before handing the reporter to a
// pool.
func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Prometheus{
		registerer: registerer,
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partita",
			Subsystem: "dispatch",
			Name:      "records_submitted_total",
			Help:      "Total number of records submitted to worker queues.",
		}, []string{"topic"}),
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partita",
			Subsystem: "dispatch",
			Name:      "records_handled_total",
			Help:      "Total number of records picked up by a worker.",
		}, []string{"topic", "worker"}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "partita",
			Subsystem: "dispatch",
			Name:      "workers_running",
			Help:      "Number of pool workers currently running.",
		}),
	}
}

// Register registers the collectors with the registerer given to
// NewPrometheus. Safe to call multiple times.
func (p *Prometheus) Register() error {
	collectors := []prometheus.Collector{p.submitted, p.handled, p.workers}
	for _, c := range collectors {
		if err := p.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return errors.Wrap(err, "failed to register metrics collector")
			}
		}
	}
	return nil
}

// Report implements handler.Reporter.
func (p *Prometheus) Report(e handler.Event) {
	switch e := e.(type) {
	case handler.SubmittingRecord:
		p.submitted.WithLabelValues(e.Topic).Inc()
	case handler.HandlingRecord:
		p.handled.WithLabelValues(e.Topic, strconv.Itoa(e.Worker)).Inc()
	case handler.StartingWorker:
		p.workers.Inc()
	case handler.StoppingWorker:
		p.workers.Dec()
	}
}
