package models

import "time"

// SavedJob links a user to a bookmarked job. The composite unique index
// guarantees at most one row per (user, job) pair.
type SavedJob struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_saved_user_job"`
	JobID   uint      `gorm:"not null;uniqueIndex:idx_saved_user_job"`
	SavedAt time.Time `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Job  Job  `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
