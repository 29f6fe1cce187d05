package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/models"
	"gorm.io/gorm"
)

const (
	telemetryBatchSize = 50
	telemetryMaxQueue  = 1000
)

// TelemetryService buffers browser-reported errors and performance samples
// and flushes them to the store in batches, on a timer or when a batch
// fills. The queue is bounded: under sustained store failure new entries
// are dropped instead of growing without limit.
type TelemetryService struct {
	db     *gorm.DB
	mu     sync.Mutex
	errors []models.ClientErrorLog
	perf   []models.PerformanceLog
	ticker *time.Ticker
	done   chan struct{}
	idle   chan struct{}
}

func NewTelemetryService(db *gorm.DB) *TelemetryService {
	s := &TelemetryService{
		db:     db,
		errors: make([]models.ClientErrorLog, 0, telemetryBatchSize),
		perf:   make([]models.PerformanceLog, 0, telemetryBatchSize),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
		idle:   make(chan struct{}),
	}
	go s.flushLoop()
	return s
}

func (s *TelemetryService) flushLoop() {
	defer close(s.idle)
	for {
		select {
		case <-s.ticker.C:
			s.Flush()
		case <-s.done:
			s.Flush()
			return
		}
	}
}

// Stop flushes whatever is queued and ends the background loop. It does
// not return until the final flush has been written, so the store can be
// closed right after.
func (s *TelemetryService) Stop() {
	s.ticker.Stop()
	close(s.done)
	<-s.idle
}

// RecordErrors queues client error entries and reports how many were
// accepted.
func (s *TelemetryService) RecordErrors(entries []dto.ClientErrorEntry) int {
	rows := make([]models.ClientErrorLog, 0, len(entries))
	for _, e := range entries {
		if e.Message == "" {
			continue
		}
		row := models.ClientErrorLog{
			ID:             uuid.New(),
			Message:        e.Message,
			Stack:          e.Stack,
			ComponentStack: e.ComponentStack,
			Timestamp:      parseClientTime(e.Timestamp),
			UserAgent:      e.UserAgent,
			URL:            e.URL,
			ErrorType:      e.ErrorType,
			Severity:       e.Severity,
		}
		if e.UserID != "" {
			userID := e.UserID
			row.UserID = &userID
		}
		rows = append(rows, row)
	}

	s.mu.Lock()
	accepted := 0
	for _, row := range rows {
		if len(s.errors) >= telemetryMaxQueue {
			break
		}
		s.errors = append(s.errors, row)
		accepted++
	}
	needFlush := len(s.errors) >= telemetryBatchSize
	s.mu.Unlock()

	if needFlush {
		go s.Flush()
	}
	return accepted
}

// RecordMetrics queues performance samples.
func (s *TelemetryService) RecordMetrics(entries []dto.PerformanceEntry) int {
	s.mu.Lock()
	accepted := 0
	for _, e := range entries {
		if e.Metric == "" {
			continue
		}
		if len(s.perf) >= telemetryMaxQueue {
			break
		}
		s.perf = append(s.perf, models.PerformanceLog{
			ID:        uuid.New(),
			Metric:    e.Metric,
			Value:     e.Value,
			URL:       e.URL,
			UserAgent: e.UserAgent,
			Timestamp: parseClientTime(e.Timestamp),
		})
		accepted++
	}
	needFlush := len(s.perf) >= telemetryBatchSize
	s.mu.Unlock()

	if needFlush {
		go s.Flush()
	}
	return accepted
}

// Flush writes all queued rows to the store.
func (s *TelemetryService) Flush() {
	s.mu.Lock()
	errorBatch := s.errors
	perfBatch := s.perf
	s.errors = make([]models.ClientErrorLog, 0, telemetryBatchSize)
	s.perf = make([]models.PerformanceLog, 0, telemetryBatchSize)
	s.mu.Unlock()

	if len(errorBatch) > 0 {
		if err := s.db.CreateInBatches(errorBatch, telemetryBatchSize).Error; err != nil {
			slog.Error("failed to flush client error logs", "error", err, "count", len(errorBatch))
		}
	}
	if len(perfBatch) > 0 {
		if err := s.db.CreateInBatches(perfBatch, telemetryBatchSize).Error; err != nil {
			slog.Error("failed to flush performance logs", "error", err, "count", len(perfBatch))
		}
	}
}

func parseClientTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now().UTC()
}
