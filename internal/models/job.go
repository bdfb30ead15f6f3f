package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job is one normalized listing ingested from the aggregator. Rows are
// append-only: repeated searches insert new rows, existing rows are never
// updated or deleted.
type Job struct {
	gorm.Model

	Source   string `gorm:"not null"`
	Title    string `gorm:"not null"`
	Company  string
	Location string
	JobType  string `gorm:"index"`
	Salary   string
	Posted   string
	Summary  string         `gorm:"type:text"`
	Benefits datatypes.JSON `gorm:"type:jsonb"`
	Link     string
}
