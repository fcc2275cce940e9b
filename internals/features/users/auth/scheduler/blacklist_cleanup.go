// file: internals/features/users/auth/scheduler/blacklist_cleanup.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	blacklistModel "akademiku_backend/internals/features/users/auth/model"
)

const cleanupInterval = time.Hour

// StartBlacklistCleanup menghapus row blacklist yang sudah lewat masa
// berlakunya. Dipanggil sekali dari main, jalan di goroutine sendiri.
func StartBlacklistCleanup(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			res := db.Unscoped().
				Where("expired_at < ?", time.Now()).
				Delete(&blacklistModel.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[Scheduler] cleanup blacklist gagal: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("[Scheduler] %d token kedaluwarsa dihapus dari blacklist", res.RowsAffected)
			}
		}
	}()
}
