package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultQueueDepth   = 256
	defaultStoreTimeout = 5 * time.Second
)

// Dispatcher decouples the request path from sink I/O: Publish enqueues and
// returns immediately, a single worker drains the queue. When the queue is
// full the record is dropped and counted; the caller is never delayed and
// never sees an error.
type Dispatcher struct {
	sink    Sink
	log     zerolog.Logger
	queue   chan Record
	done    chan struct{}
	timeout time.Duration
}

// NewDispatcher starts the worker. depth <= 0 selects the package default.
func NewDispatcher(sink Sink, log zerolog.Logger, depth int) *Dispatcher {
	if depth <= 0 {
		depth = defaultQueueDepth
	}
	d := &Dispatcher{
		sink:    sink,
		log:     log,
		queue:   make(chan Record, depth),
		done:    make(chan struct{}),
		timeout: defaultStoreTimeout,
	}
	go d.run()
	return d
}

// Publish enqueues a record without blocking.
func (d *Dispatcher) Publish(rec Record) {
	select {
	case d.queue <- rec:
	default:
		dropsTotal.Inc()
		d.log.Warn().Msg("audit queue full, record dropped")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for rec := range d.queue {
		d.store(rec)
	}
}

// store isolates one delivery so a sink panic cannot kill the worker.
func (d *Dispatcher) store(rec Record) {
	defer func() {
		if r := recover(); r != nil {
			failuresTotal.Inc()
			d.log.Error().Interface("panic", r).Msg("audit sink panicked")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.sink.Store(ctx, rec); err != nil {
		failuresTotal.Inc()
		d.log.Error().Err(err).Str("key", rec.ObjectKey()).Msg("audit write failed")
		return
	}
	writesTotal.Inc()
}

// Close stops accepting records and waits for the queue to drain.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
