// The reporter package provides ready-made handler.Reporter
// implementations for observing a worker pool: one that writes log
// lines, one that exports Prometheus metrics, and a fan-out for
// combining several reporters.
package reporter

import (
	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/handler"
)

// Log reports pool events as log lines.
type Log struct {
	logger common.StdLogger
}

// NewLog creates a reporter writing one line per event to l.
func NewLog(l common.StdLogger) *Log {
	return &Log{logger: l}
}

// Report implements handler.Reporter.
func (r *Log) Report(e handler.Event) {
	switch e := e.(type) {
	case handler.SubmittingRecord:
		r.logger.Printf("submitting record. topic=%q partition=%d", e.Topic, e.Partition)
	case handler.StartingWorker:
		r.logger.Printf("starting worker. worker=%d", e.Worker)
	case handler.StoppingWorker:
		r.logger.Printf("stopping worker. worker=%d", e.Worker)
	case handler.HandlingRecord:
		r.logger.Printf("handling record. worker=%d topic=%q partition=%d", e.Worker, e.Topic, e.Partition)
	}
}

// Multi returns a reporter that forwards every event to all of rs, in
// order.
func Multi(rs ...handler.Reporter) handler.Reporter {
	return multi(rs)
}

type multi []handler.Reporter

func (m multi) Report(e handler.Event) {
	for _, r := range m {
		r.Report(e)
	}
}
