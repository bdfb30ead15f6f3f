package store

import (
	"fmt"

	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/models"
	"gorm.io/gorm"
)

// DefaultSearchLimit caps how many recent jobs a search returns.
const DefaultSearchLimit = 20

// JobStore persists normalized job rows. Rows are append-only.
type JobStore struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewJobStore(db *gorm.DB, logger *logger.Logger) *JobStore {
	return &JobStore{db: db, logger: logger}
}

// Ingest appends each job as a new row. A failed insert is logged and
// skipped, it does not abort the rest of the batch. Returns the number of
// rows actually inserted.
func (s *JobStore) Ingest(jobs []models.Job) int {
	inserted := 0

	for i := range jobs {
		if err := s.db.Create(&jobs[i]).Error; err != nil {
			s.logger.Error("failed to insert job",
				"title", jobs[i].Title,
				"error", err.Error())
			continue
		}
		inserted++
	}

	return inserted
}

// Search returns the most recently ingested jobs, newest first, optionally
// filtered by a substring match on job type. The read path is deliberately
// global: it returns the latest rows in the shared table regardless of which
// search triggered their ingestion.
func (s *JobStore) Search(jobTypeFilter string, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := s.db.Order("id DESC").Limit(limit)

	if jobTypeFilter != "" {
		query = query.Where("job_type LIKE ?", "%"+jobTypeFilter+"%")
	}

	var jobs []models.Job

	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	return jobs, nil
}
