package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/api/metrics"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	processTimeout = 10 * time.Second
)

// Dispatcher routes lead activities to a fixed set of workers using consistent
// hashing on the lead id, so the timeline of one lead is written in order.
type Dispatcher struct {
	workers   []chan domain.Activity
	processor ports.ActivityProcessor
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.ActivityProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Activity, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) Wait() { d.wg.Wait() }

// Record hands an activity to the worker owning its lead. It never blocks the
// request: when the worker queue is full the activity is dropped and counted.
func (d *Dispatcher) Record(a domain.Activity) {
	idx := d.shardIndex(a.LeadID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivitiesQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesDroppedTotal.Inc()
		d.log.Warn().
			Str("lead_id", a.LeadID).
			Str("type", string(a.Type)).
			Int("worker_id", idx).
			Msg("activity queue full, dropping")
	}
}

// shardIndex maps a lead id deterministically to a worker index.
func (d *Dispatcher) shardIndex(leadID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(leadID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case a := <-ch:
			metrics.ActivitiesQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(context.Background(), id, a)
		}
	}
}

// drain flushes what is already queued so a graceful shutdown loses nothing.
func (d *Dispatcher) drain(id int, ch <-chan domain.Activity) {
	for {
		select {
		case a := <-ch:
			d.process(context.Background(), id, a)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(parent context.Context, id int, a domain.Activity) {
	ctx, cancel := context.WithTimeout(parent, processTimeout)
	defer cancel()

	start := time.Now()
	err := d.processor.Process(ctx, a)
	result := "ok"
	if err != nil {
		result = "error"
		metrics.ActivitiesErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("lead_id", a.LeadID).
			Int("worker_id", id).
			Msg("activity processing failed")
	} else {
		metrics.ActivitiesRecordedTotal.WithLabelValues(string(a.Type)).Inc()
	}
	metrics.ActivityProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
