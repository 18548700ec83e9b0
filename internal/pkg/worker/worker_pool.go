package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/metrics"
	"commentguard/internal/pkg/processor"
	"commentguard/internal/pkg/queue"
	"commentguard/internal/pkg/reporter"
)

// Manages a pool of workers that analyze queued comment batches in
// parallel. Each worker owns nothing mutable; the processor call is pure
// per batch, so no coordination beyond the queue is needed.
type WorkerPool struct {
	numWorkers int
	queue      *queue.Queue
	processor  *processor.CommentProcessor
	reporter   *reporter.BulkReporter
	wg         sync.WaitGroup
}

// Creates a new worker pool with the specified number of workers.
func NewWorkerPool(numWorkers int, queue *queue.Queue, processor *processor.CommentProcessor, reporter *reporter.BulkReporter) *WorkerPool {
	return &WorkerPool{
		numWorkers: numWorkers,
		queue:      queue,
		processor:  processor,
		reporter:   reporter,
	}
}

// Launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	logger.Log.Info("Starting worker pool", zap.Int("workers", wp.numWorkers))

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.runWorker(ctx, i)
	}
}

// Blocks until all workers have finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// The main loop for each worker goroutine.
func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	defer wp.wg.Done()

	logger.Log.Info("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Worker received stop signal", zap.Int("worker_id", id))
			return
		default:
			batch, err := wp.queue.Remove()
			if err != nil {
				// Queue is empty, wait a bit before trying again
				time.Sleep(200 * time.Millisecond)
				continue
			}

			report := wp.processor.ProcessComments(batch.Comments)
			report.VideoID = batch.VideoID

			metrics.BatchesProcessed.Inc()
			logger.Log.Debug("Processed batch",
				zap.Int("worker_id", id),
				zap.String("video_id", batch.VideoID),
				zap.Int("total_comments", report.TotalComments),
				zap.Int("suspicious_count", report.SuspiciousCount))

			wp.reporter.AddReport(&report)
		}
	}
}
