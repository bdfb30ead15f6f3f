package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck-dev/jobdeck/internal/export"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/models"
	"github.com/jobdeck-dev/jobdeck/internal/store"
	"github.com/jobdeck-dev/jobdeck/internal/types"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

// Fetcher retrieves normalized job listings from the external aggregator.
type Fetcher interface {
	FetchJobs(ctx context.Context, role, location string) ([]models.Job, error)
}

type JobsHandler struct {
	fetcher  Fetcher
	jobs     *store.JobStore
	saved    *store.SavedJobStore
	exporter *export.CSVWriter
	logger   *logger.Logger
}

func NewJobsHandler(fetcher Fetcher, jobs *store.JobStore, saved *store.SavedJobStore, exporter *export.CSVWriter, logger *logger.Logger) *JobsHandler {
	return &JobsHandler{
		fetcher:  fetcher,
		jobs:     jobs,
		saved:    saved,
		exporter: exporter,
		logger:   logger,
	}
}

type SearchRequest struct {
	JobRole  string `json:"job_role"`
	Location string `json:"location"`
	JobType  string `json:"job_type"`
}

// Search triggers one live aggregator fetch, ingests whatever came back and
// returns the most recent rows from the shared jobs table. An aggregator
// failure degrades to an empty fetch with an advisory message, it is never a
// hard error for the request.
func (h *JobsHandler) Search(ctx *gin.Context) {
	var req SearchRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role := strings.TrimSpace(req.JobRole)
	location := strings.TrimSpace(req.Location)
	jobTypeFilter := strings.TrimSpace(req.JobType)

	if role == "" || location == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please enter both role and location"})
		return
	}

	var message string

	fetched, err := h.fetcher.FetchJobs(ctx.Request.Context(), role, location)

	if err != nil {
		h.logger.Warn("aggregator fetch failed",
			"role", role,
			"location", location,
			"error", err.Error())
		fetched = nil
	}

	if len(fetched) > 0 {
		inserted := h.jobs.Ingest(fetched)

		h.logger.Info("ingested jobs",
			"fetched", len(fetched),
			"inserted", inserted)

		// The export file is an independent side artifact of ingestion;
		// a failed write does not fail the search.
		if err := h.exporter.Write(fetched); err != nil {
			h.logger.Error("failed to write export file", "error", err.Error())
		}
	}

	results, err := h.jobs.Search(jobTypeFilter, store.DefaultSearchLimit)

	if err != nil {
		h.logger.Error("failed to search jobs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jobs"})
		return
	}

	if len(results) == 0 {
		if jobTypeFilter != "" {
			message = fmt.Sprintf("No %s jobs found for %q in %q", jobTypeFilter, role, location)
		} else {
			message = fmt.Sprintf("No jobs found for %q in %q", role, location)
		}
	}

	responses := make([]types.JobResponse, 0, len(results))
	for _, job := range results {
		responses = append(responses, toJobResponse(job))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"jobs":            responses,
		"role":            role,
		"location":        location,
		"job_type_filter": jobTypeFilter,
		"message":         message,
	})
}

func (h *JobsHandler) SaveJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := parseJobID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	saved, err := h.saved.Save(userID, jobID)

	if err != nil {
		h.logger.Error("failed to save job", "job_id", jobID, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job"})
		return
	}

	if !saved {
		ctx.JSON(http.StatusOK, gin.H{"message": "Job already saved"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Job saved successfully"})
}

func (h *JobsHandler) UnsaveJob(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	jobID, err := parseJobID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	if err := h.saved.Unsave(userID, jobID); err != nil {
		h.logger.Error("failed to unsave job", "job_id", jobID, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove saved job"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Job removed from saved list"})
}

func (h *JobsHandler) ListSaved(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rows, err := h.saved.ListSaved(userID)

	if err != nil {
		h.logger.Error("failed to list saved jobs", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve saved jobs"})
		return
	}

	responses := make([]types.SavedJobResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, types.SavedJobResponse{
			JobResponse: types.JobResponse{
				ID:       row.ID,
				Source:   row.Source,
				Title:    row.Title,
				Company:  row.Company,
				Location: row.Location,
				JobType:  row.JobType,
				Salary:   row.Salary,
				Posted:   row.Posted,
				Summary:  row.Summary,
				Benefits: decodeBenefits(row.Benefits),
				Link:     row.Link,
			},
			SavedAt: row.SavedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"saved_jobs": responses})
}

func parseJobID(ctx *gin.Context) (uint, error) {
	jobID, err := strconv.ParseUint(ctx.Param("job_id"), 10, 64)

	if err != nil {
		return 0, err
	}

	return uint(jobID), nil
}

func toJobResponse(job models.Job) types.JobResponse {
	return types.JobResponse{
		ID:       job.ID,
		Source:   job.Source,
		Title:    job.Title,
		Company:  job.Company,
		Location: job.Location,
		JobType:  job.JobType,
		Salary:   job.Salary,
		Posted:   job.Posted,
		Summary:  job.Summary,
		Benefits: decodeBenefits(job.Benefits),
		Link:     job.Link,
	}
}

func decodeBenefits(raw []byte) []string {
	var benefits []string

	if err := json.Unmarshal(raw, &benefits); err != nil {
		return nil
	}

	return benefits
}
