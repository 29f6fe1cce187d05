package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	dbLogBatchSize = 50
	// Records beyond this are dropped rather than letting a slow store
	// back up request handling.
	dbLogMaxBuffer = 500
)

// DBHandler is an slog.Handler that batches ERROR+ records into the
// system_logs table. The buffer is bounded; flushing happens on a timer or
// when a batch fills up.
type DBHandler struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.SystemLog
	ticker *time.Ticker
	done   chan struct{}
	idle   chan struct{}
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	h := &DBHandler{
		db:     db,
		buffer: make([]models.SystemLog, 0, dbLogBatchSize),
		ticker: time.NewTicker(5 * time.Second),
		done:   make(chan struct{}),
		idle:   make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	defer close(h.idle)
	for {
		select {
		case <-h.ticker.C:
			h.flush()
		case <-h.done:
			h.flush()
			return
		}
	}
}

func (h *DBHandler) flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.buffer
	h.buffer = make([]models.SystemLog, 0, dbLogBatchSize)
	h.mu.Unlock()

	if err := h.db.CreateInBatches(batch, dbLogBatchSize).Error; err != nil {
		slog.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes the remaining buffer and blocks until the write is done,
// so stopping before the DB closes cannot lose the last batch.
func (h *DBHandler) Stop() {
	h.ticker.Stop()
	close(h.done)
	<-h.idle
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "trace_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	if len(h.buffer) >= dbLogMaxBuffer {
		h.mu.Unlock()
		return nil
	}
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= dbLogBatchSize
	h.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}
