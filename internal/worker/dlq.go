package worker

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultDLQCapacity = 1000

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	Job      ReceiptJob `json:"-"`
	TxID     string     `json:"transaction_id"`
	Reason   string     `json:"reason"`
	FailedAt time.Time  `json:"failed_at"`
	Attempts int        `json:"attempts"`
}

// DeadLetterQueue keeps failed receipt jobs for retry and inspection.
// When full, the oldest entry is evicted.
type DeadLetterQueue struct {
	mu       sync.Mutex
	entries  []DLQEntry
	capacity int
	now      func() time.Time
}

func NewDeadLetterQueue(capacity int) *DeadLetterQueue {
	if capacity <= 0 {
		capacity = DefaultDLQCapacity
	}
	return &DeadLetterQueue{capacity: capacity, now: time.Now}
}

func (q *DeadLetterQueue) Push(job ReceiptJob, reason string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) >= q.capacity {
		evicted := q.entries[0]
		q.entries = q.entries[1:]
		log.Error().Str("transaction_id", evicted.TxID).Msg("dlq: evicted oldest entry")
	}
	q.entries = append(q.entries, DLQEntry{
		Job:      job,
		TxID:     job.Tx.ID,
		Reason:   reason,
		FailedAt: q.now().UTC(),
		Attempts: job.Attempts,
	})
	log.Warn().Str("transaction_id", job.Tx.ID).Str("reason", reason).Int("attempts", job.Attempts).
		Msg("dlq: receipt job moved to dead letter queue")
}

// Take removes and returns the entries for which keep reports true.
func (q *DeadLetterQueue) Take(keep func(DLQEntry) bool) []DLQEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	var taken []DLQEntry
	rest := q.entries[:0]
	for _, e := range q.entries {
		if keep(e) {
			taken = append(taken, e)
		} else {
			rest = append(rest, e)
		}
	}
	q.entries = rest
	return taken
}

func (q *DeadLetterQueue) Entries() []DLQEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]DLQEntry(nil), q.entries...)
}

func (q *DeadLetterQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
