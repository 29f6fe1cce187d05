package services

import (
	"testing"
	"time"

	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRecordErrorsFlushesToStore(t *testing.T) {
	db := newTestDB(t)
	service := NewTelemetryService(db)
	defer service.Stop()

	accepted := service.RecordErrors([]dto.ClientErrorEntry{
		{
			Message:   "TypeError: cannot read properties of undefined",
			Stack:     "at Dashboard.render",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			UserAgent: "Mozilla/5.0",
			URL:       "https://app.mycarebay.com/dashboard",
			UserID:    "u-123",
			ErrorType: "react",
			Severity:  "high",
		},
		{
			Message:   "Failed to fetch",
			ErrorType: "network",
			Severity:  "medium",
		},
	})
	require.Equal(t, 2, accepted)

	service.Flush()

	var rows []models.ClientErrorLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)

	byMessage := make(map[string]models.ClientErrorLog)
	for _, r := range rows {
		byMessage[r.Message] = r
	}
	react := byMessage["TypeError: cannot read properties of undefined"]
	require.Equal(t, "react", react.ErrorType)
	require.Equal(t, "high", react.Severity)
	require.NotNil(t, react.UserID)
	require.Equal(t, "u-123", *react.UserID)

	network := byMessage["Failed to fetch"]
	require.Nil(t, network.UserID)
	// Unparseable timestamps fall back to ingestion time.
	require.False(t, network.Timestamp.IsZero())
}

func TestRecordErrorsSkipsEmptyMessages(t *testing.T) {
	db := newTestDB(t)
	service := NewTelemetryService(db)
	defer service.Stop()

	accepted := service.RecordErrors([]dto.ClientErrorEntry{
		{Message: ""},
		{Message: "real error"},
	})
	require.Equal(t, 1, accepted)
}

func TestRecordMetricsFlushesToStore(t *testing.T) {
	db := newTestDB(t)
	service := NewTelemetryService(db)
	defer service.Stop()

	accepted := service.RecordMetrics([]dto.PerformanceEntry{
		{Metric: "first_contentful_paint", Value: 1234.5, URL: "https://app.mycarebay.com/"},
		{Metric: "", Value: 1},
	})
	require.Equal(t, 1, accepted)

	service.Flush()

	var rows []models.PerformanceLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "first_contentful_paint", rows[0].Metric)
	require.InDelta(t, 1234.5, rows[0].Value, 0.0001)
}

func TestRecordErrorsQueueIsBounded(t *testing.T) {
	db := newTestDB(t)
	service := NewTelemetryService(db)
	defer service.Stop()

	entries := make([]dto.ClientErrorEntry, telemetryMaxQueue+10)
	for i := range entries {
		entries[i] = dto.ClientErrorEntry{Message: "overflow entry"}
	}

	// The queue lock is held for the whole batch, so overflow entries are
	// rejected deterministically.
	accepted := service.RecordErrors(entries)
	require.Equal(t, telemetryMaxQueue, accepted)
}

func TestStopWritesQueuedEntriesBeforeReturning(t *testing.T) {
	db := newTestDB(t)
	service := NewTelemetryService(db)

	service.RecordErrors([]dto.ClientErrorEntry{{Message: "shutdown straggler"}})
	service.RecordMetrics([]dto.PerformanceEntry{{Metric: "time_to_interactive", Value: 2100}})

	// Stop blocks until the final flush has been written, so the rows must
	// be visible immediately after it returns.
	service.Stop()

	var errCount, perfCount int64
	require.NoError(t, db.Model(&models.ClientErrorLog{}).Count(&errCount).Error)
	require.NoError(t, db.Model(&models.PerformanceLog{}).Count(&perfCount).Error)
	require.EqualValues(t, 1, errCount)
	require.EqualValues(t, 1, perfCount)
}
