package reporter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/models"
)

func init() {
	// Ensure that the logger is not nil during tests.
	logger.Log = zap.NewNop()
}

// Verifies that when the threshold is met, the BulkReporter flushes
// reports to the (simulated) sink endpoint as NDJSON.
func TestBulkReporterFlushSuccess(t *testing.T) {
	// Create a channel to capture the request payload.
	payloadCh := make(chan []byte, 1)

	// Create a test server that always returns a 200 OK.
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Failed to read request body: %v", err)
		}
		payloadCh <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	// Threshold of 2 reports and a long flush interval, so the flush is
	// triggered by the threshold alone.
	threshold := 2
	flushIntervalSeconds := 60
	maxRetries := 0
	indexName := "test_reports"
	reporter := NewBulkReporter(threshold, testServer.URL, indexName, flushIntervalSeconds, maxRetries)
	defer reporter.Stop()

	report1 := &models.ProcessingReport{VideoID: "video-1", TotalComments: 10, SuspiciousCount: 2}
	report2 := &models.ProcessingReport{VideoID: "video-2", TotalComments: 5, SuspiciousCount: 0}

	reporter.AddReport(report1)
	reporter.AddReport(report2)

	// Wait for the flush to occur.
	select {
	case payload := <-payloadCh:
		// The NDJSON payload has a meta line and a report line per report.
		scanner := bufio.NewScanner(bytes.NewReader(payload))
		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		expectedLines := threshold * 2
		if len(lines) != expectedLines {
			t.Fatalf("Expected %d NDJSON lines (2 per report), got %d", expectedLines, len(lines))
		}

		var meta map[string]map[string]string
		if err := json.Unmarshal([]byte(lines[0]), &meta); err != nil {
			t.Errorf("Failed to unmarshal meta line: %v", err)
		}
		if meta["index"]["_index"] != indexName {
			t.Errorf("Expected _index to be %q, got %q", indexName, meta["index"]["_index"])
		}

		var shipped models.ProcessingReport
		if err := json.Unmarshal([]byte(lines[1]), &shipped); err != nil {
			t.Errorf("Failed to unmarshal report line: %v", err)
		}
		if shipped.VideoID != "video-1" || shipped.TotalComments != 10 {
			t.Errorf("Unexpected first report in payload: %+v", shipped)
		}
	case <-time.After(3 * time.Second):
		t.Error("Timed out waiting for flush payload")
	}
}

// Verifies that the retry mechanism is exercised when the simulated sink
// returns error codes.
func TestBulkReporterRetry(t *testing.T) {
	var attemptCount int32 // use atomic counter

	// Return HTTP 500 for the first two attempts, then HTTP 200.
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&attemptCount, 1)
		if count < 3 {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer testServer.Close()

	// Threshold of 1 so that flush is triggered immediately.
	threshold := 1
	flushIntervalSeconds := 60
	maxRetries := 3
	reporter := NewBulkReporter(threshold, testServer.URL, "retry_reports", flushIntervalSeconds, maxRetries)
	defer reporter.Stop()

	reporter.AddReport(&models.ProcessingReport{VideoID: "retry-video", TotalComments: 1})

	// Wait enough time for the retries to complete.
	time.Sleep(5 * time.Second)

	if atomic.LoadInt32(&attemptCount) < 3 {
		t.Errorf("Expected at least 3 attempts, got %d", attemptCount)
	}
}

// Stop flushes whatever is still buffered below the threshold.
func TestBulkReporterStopFlushesRemainder(t *testing.T) {
	payloadCh := make(chan []byte, 1)

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		payloadCh <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	reporter := NewBulkReporter(10, testServer.URL, "final_reports", 60, 0)
	reporter.AddReport(&models.ProcessingReport{VideoID: "last-video", TotalComments: 3})

	reporter.Stop()

	select {
	case payload := <-payloadCh:
		if !bytes.Contains(payload, []byte("last-video")) {
			t.Errorf("Expected the final flush to carry the buffered report, got %s", payload)
		}
	case <-time.After(3 * time.Second):
		t.Error("Timed out waiting for the final flush")
	}
}
