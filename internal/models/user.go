package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	PreferredRole     string
	PreferredLocation string
	EmailAlerts       bool `gorm:"not null;default:false"`

	// Relationships
	SavedJobs []SavedJob `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
