package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mes-labs/receipt-extractor/internal/common"
	"github.com/mes-labs/receipt-extractor/internal/engine"
)

// Recognizer turns an image file into OCR lines. *ocr.Recognizer satisfies it.
type Recognizer interface {
	RecognizeFile(ctx context.Context, path string) ([]engine.Line, error)
}

// RecognizerQueue funnels recognition requests through a fixed worker pool.
// Tesseract is memory-hungry and not reentrant-friendly, so the default is a
// single worker: concurrent callers block in line instead of racing the
// engine binary.
type RecognizerQueue struct {
	rec     Recognizer
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type job struct {
	id   uuid.UUID
	path string
	ctx  context.Context
	done chan jobResult
}

type jobResult struct {
	lines []engine.Line
	err   error
}

type Option func(*RecognizerQueue)

func WithWorkers(n int) Option {
	return func(q *RecognizerQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *RecognizerQueue) {
		if n > 0 {
			q.ch = make(chan job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *RecognizerQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewRecognizerQueue(rec Recognizer, logger *slog.Logger, opts ...Option) *RecognizerQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &RecognizerQueue{
		rec:     rec,
		logger:  logger,
		workers: 1,
		timeout: time.Minute,
		ch:      make(chan job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *RecognizerQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("ocr worker started", "worker_id", workerID)

				for j := range q.ch {
					if err := j.ctx.Err(); err != nil {
						// Caller gave up while the job sat in the queue.
						j.done <- jobResult{err: err}
						continue
					}
					ctx, cancel := context.WithTimeout(j.ctx, q.timeout)
					start := time.Now()
					lines, err := q.rec.RecognizeFile(ctx, j.path)
					cancel()

					if err != nil {
						q.logger.Error("recognition failed", "worker_id", workerID, "job_id", j.id, "error", err)
					} else {
						q.logger.Info("recognition complete", "worker_id", workerID, "job_id", j.id,
							"lines", len(lines), "duration_ms", time.Since(start).Milliseconds())
					}
					j.done <- jobResult{lines: lines, err: err}
				}

				q.logger.Info("ocr worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Recognize enqueues path and blocks until a worker has processed it or ctx
// is done.
func (q *RecognizerQueue) Recognize(ctx context.Context, path string) ([]engine.Line, error) {
	j := job{
		id:   uuid.New(),
		path: path,
		ctx:  ctx,
		done: make(chan jobResult, 1),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, common.NewAppError("QUEUE_CLOSED", "recognizer queue is shutting down", common.ErrUnavailable)
	}
	// The lock is held across the send: Shutdown takes it before closing the
	// channel, so a parked sender can never hit a closed channel.
	select {
	case q.ch <- j:
		q.mu.Unlock()
	case <-ctx.Done():
		q.mu.Unlock()
		return nil, ctx.Err()
	}

	select {
	case res := <-j.done:
		return res.lines, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *RecognizerQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("queue shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
