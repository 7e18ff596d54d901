package retry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ventoux/partita/message"
)

// Default backoff progression applied by NewChainPolicy.
const (
	DefaultInitialBackoff = 5 * time.Second
	DefaultBackoffFactor  = 2
	DefaultMaxBackoff     = 5 * time.Minute
)

// ChainPolicy retries failed records through a chain of dedicated
// topics named after the origin: a record failing on "invoice" moves
// to "invoice-retry-1", then "invoice-retry-2", and so on until the
// chain is exhausted. The backoff before each attempt grows
// exponentially and travels with the record in its headers, so the
// consumer needs no state of its own to honour it.
//
// The zero value retries nothing. Use NewChainPolicy for the default
// backoff progression.
type ChainPolicy struct {
	// Attempts is the length of the chain.
	Attempts int

	// InitialBackoff is the pause before the first retry attempt.
	InitialBackoff time.Duration

	// BackoffFactor multiplies the backoff for each further attempt.
	BackoffFactor float64

	// MaxBackoff caps the backoff growth.
	MaxBackoff time.Duration
}

// NewChainPolicy returns a policy retrying n times, pausing 5s before
// the first attempt and doubling the pause for each further one, up
// to 5m.
func NewChainPolicy(n int) *ChainPolicy {
	return &ChainPolicy{
		Attempts:       n,
		InitialBackoff: DefaultInitialBackoff,
		BackoffFactor:  DefaultBackoffFactor,
		MaxBackoff:     DefaultMaxBackoff,
	}
}

// RetryTopics returns the retry chain for topic, "t-retry-1" through
// "t-retry-n" for a topic named "t".
func (p *ChainPolicy) RetryTopics(topic string) []string {
	if p.Attempts <= 0 {
		return nil
	}
	topics := make([]string, p.Attempts)
	for i := range topics {
		topics[i] = fmt.Sprintf("%s-retry-%d", topic, i+1)
	}
	return topics
}

// Attempt recovers the attempt stamped by RetryRecord. Records
// without a parseable attempt header count as first deliveries.
func (p *ChainPolicy) Attempt(rec *message.RawRecord) *Attempt {
	raw, ok := rec.HeaderValue(AttemptHeader)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 1 {
		return nil
	}

	att := Attempt{Number: n, OriginTopic: originOf(rec.Topic)}
	if origin, ok := rec.HeaderValue(OriginTopicHeader); ok && len(origin) > 0 {
		att.OriginTopic = string(origin)
	}
	if backoff, ok := rec.HeaderValue(BackoffHeader); ok {
		if d, err := time.ParseDuration(string(backoff)); err == nil && d > 0 {
			att.Backoff = d
		}
	}
	return &att
}

// RetryRecord builds the record for the attempt following att, or nil
// once the chain is exhausted. The failed record's key, value and
// headers carry over; the retry headers are replaced with the new
// attempt's state, including the cause for operators.
func (p *ChainPolicy) RetryRecord(att *Attempt, rec *message.RawRecord, cause error) *message.RawRecord {
	next := 1
	origin := rec.Topic
	if att != nil {
		next = att.Number + 1
		origin = att.OriginTopic
	}
	if next > p.Attempts {
		return nil
	}
	backoff := p.backoff(next)

	headers := make([]message.Header, 0, len(rec.Headers)+4)
	for _, h := range rec.Headers {
		switch h.Key {
		case AttemptHeader, OriginTopicHeader, BackoffHeader, LastErrorHeader:
			continue
		}
		headers = append(headers, h)
	}
	headers = append(headers,
		message.Header{Key: AttemptHeader, Value: []byte(strconv.Itoa(next))},
		message.Header{Key: OriginTopicHeader, Value: []byte(origin)},
		message.Header{Key: BackoffHeader, Value: []byte(backoff.String())},
		message.Header{Key: LastErrorHeader, Value: []byte(cause.Error())},
	)

	return &message.RawRecord{
		Topic:   fmt.Sprintf("%s-retry-%d", origin, next),
		Key:     rec.Key,
		Value:   rec.Value,
		Headers: headers,
	}
}

// backoff returns the pause before the nth attempt.
func (p *ChainPolicy) backoff(n int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < n; i++ {
		d = time.Duration(float64(d) * p.BackoffFactor)
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// originOf strips the retry suffix off a retry topic name, so the
// origin of "invoice-retry-2" is "invoice". It backs up the origin
// header for records that lost it.
func originOf(topic string) string {
	i := strings.LastIndex(topic, "-retry-")
	if i < 0 {
		return topic
	}
	if _, err := strconv.Atoi(topic[i+len("-retry-"):]); err != nil {
		return topic
	}
	return topic[:i]
}
