package administrator

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"commentguard/internal/pkg/logger"
	"commentguard/internal/pkg/models"
	"commentguard/internal/pkg/queue"
)

// Starts the HTTP ingestion service: POST /comments accepts a JSON
// comment batch, /health reports pipeline status, /metrics serves
// Prometheus.
func startIngestHTTP(admin *administrator, port string) {
	http.HandleFunc("/comments", func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			http.Error(writer, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var batch models.CommentBatch
		if err := json.NewDecoder(request.Body).Decode(&batch); err != nil {
			http.Error(writer, "invalid JSON payload", http.StatusBadRequest)
			logger.Log.Warn("Failed to decode comment batch", zap.Error(err))
			return
		}

		if err := admin.EnqueueBatch(request.Context(), batch); err != nil {
			status := http.StatusInternalServerError
			if err == queue.ErrQueueFull {
				status = http.StatusServiceUnavailable
			}
			http.Error(writer, "failed to enqueue comment batch", status)
			logger.Log.Error("Failed to enqueue comment batch",
				zap.String("video_id", batch.VideoID),
				zap.Error(err))
			return
		}

		writer.WriteHeader(http.StatusAccepted)
		writer.Write([]byte("Comment batch enqueued"))
	})

	// /metrics endpoint for Prometheus
	http.Handle("/metrics", promhttp.Handler())

	// /health endpoint
	http.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {
		health := struct {
			Status     string    `json:"status"`
			QueueDepth int       `json:"queue_depth"`
			Workers    int       `json:"workers"`
			Uptime     string    `json:"uptime"`
			StartTime  time.Time `json:"start_time"`
		}{
			Status:     "OK",
			QueueDepth: admin.QueueDepth(),
			Workers:    admin.WorkerCount(),
			Uptime:     time.Since(admin.StartTime()).String(),
			StartTime:  admin.StartTime(),
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(health)
	})

	logger.Log.Info("HTTP ingestion service listening", zap.String("address", ":"+port))

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Log.Fatal("Failed to start ingestion service", zap.Error(err))
	}
}
