package logging

import (
	"log/slog"
	"time"

	"github.com/mycarebay/carebay-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes log rows older than 30
// days, covering both server and client telemetry tables.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -30)
				for _, model := range []interface{}{
					&models.SystemLog{},
					&models.ClientErrorLog{},
					&models.PerformanceLog{},
				} {
					result := db.Where("timestamp < ?", cutoff).Delete(model)
					if result.Error != nil {
						slog.Error("log cleanup failed", "error", result.Error)
					} else if result.RowsAffected > 0 {
						slog.Info("log cleanup completed", "deleted", result.RowsAffected)
					}
				}
			case <-done:
				return
			}
		}
	}()
}
