package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jobdeck-dev/jobdeck/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedJobStore is the ledger of user job bookmarks.
type SavedJobStore struct {
	db *gorm.DB
}

func NewSavedJobStore(db *gorm.DB) *SavedJobStore {
	return &SavedJobStore{db: db}
}

// SavedJobDetail is a saved-jobs row joined with its job details.
type SavedJobDetail struct {
	ID       uint
	Source   string
	Title    string
	Company  string
	Location string
	JobType  string
	Salary   string
	Posted   string
	Summary  string
	Benefits datatypes.JSON
	Link     string
	SavedAt  time.Time
}

// Save bookmarks a job for a user. Idempotent: if the pair already exists no
// row is written and Save reports saved=false.
func (s *SavedJobStore) Save(userID, jobID uint) (bool, error) {
	var existing models.SavedJob

	err := s.db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&existing).Error

	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check saved job: %w", err)
	}

	savedJob := models.SavedJob{
		UserID:  userID,
		JobID:   jobID,
		SavedAt: time.Now(),
	}

	if err := s.db.Create(&savedJob).Error; err != nil {
		return false, fmt.Errorf("failed to save job: %w", err)
	}

	return true, nil
}

// Unsave removes the bookmark if present. Removing a pair that does not
// exist is a no-op.
func (s *SavedJobStore) Unsave(userID, jobID uint) error {
	err := s.db.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{}).Error

	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}

	return nil
}

// ListSaved returns all jobs saved by the user, most recently saved first.
func (s *SavedJobStore) ListSaved(userID uint) ([]SavedJobDetail, error) {
	var rows []SavedJobDetail

	err := s.db.Table("jobs").
		Select("jobs.id, jobs.source, jobs.title, jobs.company, jobs.location, jobs.job_type, jobs.salary, jobs.posted, jobs.summary, jobs.benefits, jobs.link, saved_jobs.saved_at").
		Joins("JOIN saved_jobs ON saved_jobs.job_id = jobs.id").
		Where("saved_jobs.user_id = ?", userID).
		Order("saved_jobs.saved_at DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	return rows, nil
}

// Count returns how many jobs the user has saved.
func (s *SavedJobStore) Count(userID uint) (int64, error) {
	var count int64

	err := s.db.Model(&models.SavedJob{}).Where("user_id = ?", userID).Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count saved jobs: %w", err)
	}

	return count, nil
}
