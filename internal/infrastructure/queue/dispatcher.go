package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fkedem/portfolio-backend/internal/api/metrics"
	"github.com/fkedem/portfolio-backend/internal/core/domain"
	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher persists audit events asynchronously through a fixed set of
// workers, sharded by event kind so entries of the same kind are written in
// the order they were recorded. Record never blocks the request path beyond
// channel capacity; events arriving at a full worker channel are dropped
// with a log line rather than stalling a handler.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until their channel is
// closed, not until ctx is done: cancellation signals shutdown, and Close
// must still be able to drain queued events after it.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.AuditRecorder.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.Kind)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("kind", event.Kind).
			Str("action", event.Action).
			Msg("audit queue full, event dropped")
	}
}

// Close stops accepting events and waits for the workers to drain.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps an event kind deterministically to a worker index.
func (d *Dispatcher) shardIndex(kind string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(kind))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	// Writes run on a context detached from ctx's cancellation so that events
	// still queued when shutdown begins are drained, not abandoned. Each
	// write carries its own timeout instead.
	base := context.WithoutCancel(ctx)
	for event := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		writeCtx, cancel := context.WithTimeout(base, writeTimeout)
		err := d.repo.Insert(writeCtx, &event)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("kind", event.Kind).
				Str("action", event.Action).
				Int("worker_id", id).
				Msg("audit event write failed")
		}
	}
}
