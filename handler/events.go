package handler

// An Event describes one moment in the life of a record moving
// through a Pool. Events exist for observability only: reporting is
// fire and forget and can never affect processing.
type Event interface {
	event()
}

// SubmittingRecord is reported when a record is about to be placed on
// a worker queue, before any blocking on a full queue happens.
type SubmittingRecord struct {
	Topic     string
	Partition int32
}

// StartingWorker is reported once by every worker as it starts
// consuming its queue.
type StartingWorker struct {
	// Worker is the index of the worker within its pool.
	Worker int
}

// StoppingWorker is reported for every worker when its pool begins
// shutting down.
type StoppingWorker struct {
	Worker int
}

// HandlingRecord is reported by a worker right before it invokes the
// wrapped handler on a record.
type HandlingRecord struct {
	Worker    int
	Topic     string
	Partition int32
}

func (SubmittingRecord) event() {}
func (StartingWorker) event()   {}
func (StoppingWorker) event()   {}
func (HandlingRecord) event()   {}

// A Reporter receives pool events. Implementations must be safe for
// concurrent use and should return promptly, a slow reporter slows
// down dispatch. The reporter package provides ready-made ones.
type Reporter interface {
	Report(Event)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}
