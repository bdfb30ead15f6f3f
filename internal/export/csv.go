package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobdeck-dev/jobdeck/internal/models"
)

var header = []string{
	"Source", "Job Title", "Company", "Location", "Job Type",
	"Salary", "Posted", "Job Summary", "Benefits", "Job Link",
}

// CSVWriter regenerates the flat export file from an ingested batch. The
// file is overwritten whole on every write; it is an independent side
// artifact of ingestion, not kept transactionally consistent with the
// jobs table.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Write(jobs []models.Job) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(w.path)

	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, job := range jobs {
		record := []string{
			job.Source, job.Title, job.Company, job.Location, job.JobType,
			job.Salary, job.Posted, job.Summary, benefitsCell(job.Benefits), job.Link,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	return nil
}

func benefitsCell(raw []byte) string {
	var benefits []string

	if err := json.Unmarshal(raw, &benefits); err != nil {
		return string(raw)
	}

	return strings.Join(benefits, "; ")
}
