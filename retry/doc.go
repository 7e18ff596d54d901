/*
The retry package moves failed records through dedicated retry topics
instead of blocking the partition they arrived on.

A handler wrapped with Wrap keeps its usual behaviour for records it
handles successfully. When it fails, the record is produced to the
next topic of its retry chain together with headers recording the
attempt number, the origin topic, the backoff to respect and the
error that sent it there. Because the wrapped handler also claims the
retry topics, the record comes back on a later delivery, waits out
its backoff and gets handled again. Once the chain is exhausted the
error surfaces to the caller, which typically parks the record in a
dead letter topic or stops the consumer.

ChainPolicy implements the conventional chain layout: the retry
topics of "invoice" are "invoice-retry-1", "invoice-retry-2" and so
on, with an exponentially growing backoff per attempt.

	h = retry.Wrap(h, retry.NewChainPolicy(3), producer)

Custom Policy implementations can route by topic or give up early on
permanent errors.
*/
package retry
