package natsadapter

import (
	"log/slog"
	"sync"
	"time"

	"github.com/kumbhsarthi/sarthi/internal/pkg/metrics"
)

const (
	queueCapacity  = 256
	maxAttempts    = 5
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

type queuedMsg struct {
	subject string
	data    []byte
}

// retryQueue upgrades fire-and-forget publishing to bounded at-most-N-tries
// delivery. Messages are dropped (and counted) when the queue is full or all
// attempts fail; the caller is never blocked on relay availability.
type retryQueue struct {
	publish func(subject string, data []byte) error
	msgs    chan queuedMsg
	done    chan struct{}
	wg      sync.WaitGroup
}

func newRetryQueue(publish func(subject string, data []byte) error) *retryQueue {
	return &retryQueue{
		publish: publish,
		msgs:    make(chan queuedMsg, queueCapacity),
		done:    make(chan struct{}),
	}
}

func (q *retryQueue) start() {
	q.wg.Add(1)
	go q.run()
}

func (q *retryQueue) stop() {
	close(q.done)
	q.wg.Wait()
}

// enqueue hands a message to the worker. A full queue drops the message.
func (q *retryQueue) enqueue(subject string, data []byte) {
	select {
	case q.msgs <- queuedMsg{subject: subject, data: data}:
	default:
		metrics.RelayDrops.Inc()
		slog.Warn("relay queue full, dropping event", "subject", subject)
	}
}

func (q *retryQueue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case m := <-q.msgs:
			q.deliver(m)
		}
	}
}

func (q *retryQueue) deliver(m queuedMsg) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := q.publish(m.subject, m.data)
		if err == nil {
			metrics.RelayPublishes.Inc()
			return
		}
		if attempt >= maxAttempts {
			metrics.RelayDrops.Inc()
			slog.Warn("relay publish abandoned", "subject", m.subject, "attempts", attempt, "error", err)
			return
		}
		metrics.RelayRetries.Inc()

		select {
		case <-q.done:
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
