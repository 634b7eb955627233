package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"

	"github.com/rs/zerolog/log"
)

const DefaultQueueSize = 256

var (
	ErrQueueFull   = errors.New("receipt queue is full")
	ErrQueueClosed = errors.New("receipt queue is closed")
)

// ReceiptJob asks for a receipt to be rendered and, when Email is set,
// mailed to the customer.
type ReceiptJob struct {
	Tx       settlement.Transaction
	Email    string
	Attempts int
}

// ProcessFunc handles one job. A returned error sends the job to the
// dead letter queue.
type ProcessFunc func(ctx context.Context, job ReceiptJob) error

// Dispatcher is an in-process job queue drained by a fixed pool of
// goroutines. Enqueue never blocks the checkout path.
type Dispatcher struct {
	jobs    chan ReceiptJob
	process ProcessFunc
	dlq     *DeadLetterQueue

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(size int, process ProcessFunc, dlq *DeadLetterQueue) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{jobs: make(chan ReceiptJob, size), process: process, dlq: dlq}
}

// EnqueueReceipt satisfies service.ReceiptQueue.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, tx settlement.Transaction, email string) error {
	return d.Enqueue(ctx, ReceiptJob{Tx: tx, Email: email})
}

func (d *Dispatcher) Enqueue(ctx context.Context, job ReceiptJob) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Len is the number of queued, unprocessed jobs.
func (d *Dispatcher) Len() int { return len(d.jobs) }

// Start launches numWorkers goroutines. They exit when ctx is cancelled
// or the queue is closed and drained.
func (d *Dispatcher) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		d.wg.Add(1)
		go d.run(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Int("queue_size", cap(d.jobs)).Msg("worker pool started")
}

func (d *Dispatcher) run(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("worker shutting down")
			return
		case job, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handle(ctx, job)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, job ReceiptJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("transaction_id", job.Tx.ID).Msg("receipt job panicked")
			d.deadLetter(job, "panic")
		}
	}()
	if err := d.process(ctx, job); err != nil {
		d.deadLetter(job, err.Error())
	}
}

func (d *Dispatcher) deadLetter(job ReceiptJob, reason string) {
	job.Attempts++
	if d.dlq == nil {
		log.Error().Str("transaction_id", job.Tx.ID).Str("reason", reason).Msg("receipt job dropped")
		return
	}
	d.dlq.Push(job, reason)
}

// Shutdown stops accepting jobs and waits for the queue to drain or ctx
// to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
