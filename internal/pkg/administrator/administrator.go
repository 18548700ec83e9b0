package administrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"commentguard/internal/pkg/config"
	deduper "commentguard/internal/pkg/deduplicator"
	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/models"
	"commentguard/internal/pkg/processor"
	"commentguard/internal/pkg/processor/languagedetector"
	"commentguard/internal/pkg/queue"
	"commentguard/internal/pkg/reporter"
	"commentguard/internal/pkg/worker"
)

// Administrator owns the whole analysis pipeline: the batch queue, the
// comment processor, the worker pool, and the report sink.
type Administrator interface {
	EnqueueBatch(ctx context.Context, batch models.CommentBatch) error
	StartProcessing(ctx context.Context) error
	StartService(port string)
	Stop()
	QueueDepth() int
	WorkerCount() int
	StartTime() time.Time
}

// Implementation of the Administrator interface
type administrator struct {
	reporter   *reporter.BulkReporter
	queue      *queue.Queue
	processor  *processor.CommentProcessor
	workerPool *worker.WorkerPool
	startTime  time.Time
	numWorkers int
}

// Creates a new Administrator from config. The analyzer tunables were
// already validated by config.LoadConfig.
func New(cfg *config.Config) Administrator {
	batchQueue, err := queue.CreateQueue(cfg.QueueCapacity)
	if err != nil {
		logger.Log.Fatal("Failed to create queue", zap.Error(err))
	}

	bulkReporter := reporter.NewBulkReporter(
		cfg.BulkThreshold,
		cfg.ReportSinkURL,
		cfg.IndexName,
		cfg.FlushInterval,
		cfg.MaxRetries,
	)

	proc := processor.NewCommentProcessor()
	proc.SimilarityThreshold = cfg.SimilarityThreshold
	proc.MinDuplicateCount = cfg.MinDuplicateCount

	if cfg.DetectLanguages {
		proc.WithLanguageDetector(languagedetector.New())
	}

	if cfg.RedisEnabled {
		store, err := deduper.NewRedisDeduper(cfg)
		if err != nil {
			logger.Log.Fatal("Failed to create known-spam store", zap.Error(err))
		}
		proc.WithKnownSpamStore(store)
	} else {
		proc.WithKnownSpamStore(deduper.NewDeduper())
	}

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := worker.NewWorkerPool(numWorkers, batchQueue, proc, bulkReporter)

	return &administrator{
		reporter:   bulkReporter,
		queue:      batchQueue,
		processor:  proc,
		workerPool: wp,
		startTime:  time.Now(),
		numWorkers: numWorkers,
	}
}

// Enqueues one comment batch for analysis. Returns quickly so the
// comment-retrieval layer can move on.
func (admin *administrator) EnqueueBatch(ctx context.Context, batch models.CommentBatch) error {
	return admin.queue.Insert(batch)
}

// Starts the worker pool with the provided context.
func (admin *administrator) StartProcessing(ctx context.Context) error {
	admin.workerPool.Start(ctx)
	return nil
}

// Starts the HTTP ingest service at the given port.
func (admin *administrator) StartService(port string) {
	logger.Log.Info("Starting HTTP ingestion service", zap.String("port", port))
	startIngestHTTP(admin, port)
}

// Stops the pipeline gracefully: stop accepting batches, let the workers
// drain, then flush the report sink.
func (admin *administrator) Stop() {
	logger.Log.Info("Beginning shutdown sequence")

	admin.queue.Close()

	logger.Log.Info("Waiting for worker pool to finish processing existing batches")
	admin.workerPool.Wait()

	logger.Log.Info("Worker pool shutdown complete, stopping bulk reporter")
	admin.reporter.Stop()

	logger.Log.Info("Administrator stopped gracefully")
}

// Returns the current queue depth for health checks.
func (admin *administrator) QueueDepth() int {
	return admin.queue.Length()
}

// Returns the number of workers for health checks.
func (admin *administrator) WorkerCount() int {
	return admin.numWorkers
}

// Returns when the service was started for health checks.
func (admin *administrator) StartTime() time.Time {
	return admin.startTime
}
