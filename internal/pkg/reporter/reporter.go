package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"commentguard/internal/pkg/circuitbreaker"
	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/metrics"
	"commentguard/internal/pkg/models"
)

// Buffers analysis reports until a threshold is reached or the flush
// interval elapses, then ships them in bulk as NDJSON. The sink speaks
// the Elasticsearch _bulk wire format, so reports land in a searchable
// index without a client library in between.
type BulkReporter struct {
	mutex        sync.Mutex
	buffer       []*models.ProcessingReport
	threshold    int
	flushChannel chan struct{}
	sinkURL      string
	indexName    string
	maxRetries   int

	breaker *circuitbreaker.CircuitBreaker
	limiter *rate.Limiter

	done     chan struct{}
	stopOnce sync.Once
	sends    sync.WaitGroup
}

// Creates a new BulkReporter and starts its flush loop.
func NewBulkReporter(threshold int, sinkURL, indexName string, flushIntervalSeconds, maxRetries int) *BulkReporter {
	reporter := &BulkReporter{
		buffer:       make([]*models.ProcessingReport, 0, threshold),
		threshold:    threshold,
		flushChannel: make(chan struct{}, 1),
		sinkURL:      sinkURL,
		indexName:    indexName,
		maxRetries:   maxRetries,
		breaker:      circuitbreaker.NewCircuitBreaker("report-sink", 5, 30*time.Second),
		// Rate limit to 5 bulk requests per second with a burst of 10
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		done:    make(chan struct{}),
	}
	go reporter.run(time.Duration(flushIntervalSeconds) * time.Second)
	return reporter
}

// Flush loop: flushes when signaled by the threshold or when the
// interval ticker fires.
func (r *BulkReporter) run(flushInterval time.Duration) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.flushChannel:
			r.flush()
		case <-ticker.C:
			r.flush()
		case <-r.done:
			return
		}
	}
}

// Adds a report to the buffer and signals a flush once the threshold is
// reached.
func (r *BulkReporter) AddReport(report *models.ProcessingReport) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.buffer = append(r.buffer, report)
	if len(r.buffer) >= r.threshold {
		select {
		case r.flushChannel <- struct{}{}:
		default:
			// flush already signaled
		}
	}
}

// Drains the buffer and flushes whatever is pending, then stops the
// flush loop and waits for in-flight sends.
func (r *BulkReporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.flush()
		r.sends.Wait()
	})
}

// Builds the NDJSON payload from the buffered reports and hands it to an
// asynchronous sender.
func (r *BulkReporter) flush() {
	r.mutex.Lock()
	if len(r.buffer) == 0 {
		r.mutex.Unlock()
		return
	}
	reports := r.buffer
	r.buffer = make([]*models.ProcessingReport, 0, r.threshold)
	r.mutex.Unlock()

	var payload bytes.Buffer
	for _, report := range reports {
		meta := map[string]map[string]string{
			"index": {"_index": r.indexName},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			logger.Log.Error("Failed to marshal meta line", zap.Error(err))
			continue
		}
		payload.Write(metaLine)
		payload.WriteByte('\n')

		reportLine, err := json.Marshal(report)
		if err != nil {
			logger.Log.Error("Failed to marshal report", zap.Error(err))
			continue
		}
		payload.Write(reportLine)
		payload.WriteByte('\n')
	}

	logger.Log.Info("Flushing reports to sink", zap.Int("count", len(reports)))

	r.sends.Add(1)
	go func() {
		defer r.sends.Done()
		r.sendBulkRequest(payload.Bytes(), len(reports))
	}()
}

// Sends the bulk payload, retrying with linear backoff up to maxRetries
// additional attempts. The rate limiter and circuit breaker sit in front
// of every attempt.
func (r *BulkReporter) sendBulkRequest(payload []byte, reportCount int) {
	attempts := r.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := r.limiter.Wait(context.Background()); err != nil {
			logger.Log.Error("Rate limiter wait failed", zap.Error(err))
			return
		}

		err := r.breaker.Execute(func() error {
			return r.postBulk(payload)
		})
		if err == nil {
			metrics.BulkFlushes.Inc()
			metrics.ReportsShipped.Add(float64(reportCount))
			logger.Log.Info("Bulk report shipping successful",
				zap.Int("reports", reportCount),
				zap.Int("attempt", attempt))
			return
		}

		metrics.BulkFailures.Inc()
		logger.Log.Warn("Bulk report shipping failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < attempts {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}

	logger.Log.Error("Giving up on bulk payload after retries",
		zap.Int("attempts", attempts),
		zap.Int("reports", reportCount))
}

func (r *BulkReporter) postBulk(payload []byte) error {
	request, err := http.NewRequestWithContext(context.Background(), http.MethodPost, r.sinkURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-ndjson")

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sink returned status %d", response.StatusCode)
	}
	return nil
}
