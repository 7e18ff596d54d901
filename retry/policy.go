package retry

import (
	"time"

	"github.com/ventoux/partita/message"
)

// Names of the headers that carry retry state between attempts. They
// are stamped on every record produced to a retry topic.
const (
	// AttemptHeader carries the 1-based number of the retry attempt
	// the record is being delivered for.
	AttemptHeader = "Retry-Attempt"

	// OriginTopicHeader carries the topic the record originally
	// failed on.
	OriginTopicHeader = "Retry-Origin-Topic"

	// BackoffHeader carries the pause to respect before handling the
	// attempt, in time.Duration syntax.
	BackoffHeader = "Retry-Backoff"

	// LastErrorHeader carries the error that failed the previous
	// attempt. It is informational, for operators digging through
	// retry topics.
	LastErrorHeader = "Retry-Last-Error"
)

// An Attempt describes where a record stands in its retry
// progression.
type Attempt struct {
	// Number is the 1-based count of retry deliveries, so a record
	// delivered from the first retry topic carries 1.
	Number int

	// OriginTopic is the topic the record originally failed on.
	OriginTopic string

	// Backoff is the pause to respect before handling this attempt.
	Backoff time.Duration
}

// A Policy decides how failed records progress through retry topics.
// ChainPolicy is the ready-made implementation; custom policies can
// route by topic, stop early for permanent errors, and so on.
//
// Policies must be safe for concurrent use: the router calls them
// from whatever goroutine runs the wrapped handler.
type Policy interface {
	// RetryTopics returns the ordered chain of retry topics serving
	// the given origin topic. An empty result disables retries for
	// it.
	RetryTopics(topic string) []string

	// Attempt recovers the retry attempt a record is being delivered
	// for, or nil when the record is a first delivery.
	Attempt(rec *message.RawRecord) *Attempt

	// RetryRecord builds the record to produce for the attempt
	// following att, given the record that just failed with cause.
	// att is nil when the failure happened on a first delivery.
	// Returning nil means the attempts are exhausted.
	RetryRecord(att *Attempt, rec *message.RawRecord, cause error) *message.RawRecord
}
