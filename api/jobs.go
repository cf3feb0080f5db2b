package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
	"github.com/microcosm-cc/bluemonday"
)

// sanitizer strips unsafe markup from user-supplied listing text.
var sanitizer = bluemonday.UGCPolicy()

type JobsHandler struct {
	jobRepo     repository.JobRepo
	companyRepo repository.CompanyRepo
}

func NewJobsHandler(jr repository.JobRepo, cr repository.CompanyRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr, companyRepo: cr}
}

type jobRequest struct {
	Title            string        `json:"title" validate:"required,max=100"`
	Description      string        `json:"description" validate:"required"`
	Location         string        `json:"location" validate:"required"`
	Type             string        `json:"type"`
	ExperienceLevel  string        `json:"experienceLevel"`
	Salary           models.Salary `json:"salary"`
	Skills           []string      `json:"skills"`
	Requirements     []string      `json:"requirements"`
	Responsibilities []string      `json:"responsibilities"`
	Benefits         []string      `json:"benefits"`
	Remote           bool          `json:"remote"`
	Status           string        `json:"status"`
	Deadline         *int64        `json:"deadline,omitempty"`
}

func (req *jobRequest) toJob(companyID int64) (*models.Job, error) {
	if req.Type == "" {
		req.Type = "Full-time"
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = "Mid Level"
	}
	if req.Status == "" {
		req.Status = models.JobStatusActive
	}
	if req.Salary.Currency == "" {
		req.Salary.Currency = "USD"
	}

	if !slices.Contains(models.JobTypes, req.Type) {
		return nil, apperr.E(apperr.InvalidState, "Invalid job type")
	}
	if !slices.Contains(models.ExperienceLevels, req.ExperienceLevel) {
		return nil, apperr.E(apperr.InvalidState, "Invalid experience level")
	}
	switch req.Status {
	case models.JobStatusActive, models.JobStatusClosed, models.JobStatusDraft:
	default:
		return nil, apperr.E(apperr.InvalidState, "Invalid job status")
	}

	return &models.Job{
		CompanyID:        companyID,
		Title:            strings.TrimSpace(req.Title),
		Description:      sanitizer.Sanitize(req.Description),
		Location:         strings.TrimSpace(req.Location),
		Type:             req.Type,
		ExperienceLevel:  req.ExperienceLevel,
		Salary:           req.Salary,
		Skills:           req.Skills,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Remote:           req.Remote,
		Status:           req.Status,
		Deadline:         req.Deadline,
	}, nil
}

// CreateJob posts a new listing owned by the authenticated company.
func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Missing required job fields", http.StatusBadRequest)
		return
	}

	job, err := req.toJob(cid)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.jobRepo.CreateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	job.ID = id

	writeJSON(w, map[string]any{"message": "Job posted successfully", "job": job}, http.StatusCreated)
}

// UpdateJob replaces a listing's mutable fields. Ownership is immutable; a
// listing owned by another company is reported as not found.
func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing == nil || existing.CompanyID != cid {
		writeError(w, apperr.E(apperr.NotFound, "Job not found"))
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Missing required job fields", http.StatusBadRequest)
		return
	}

	job, err := req.toJob(cid)
	if err != nil {
		writeError(w, err)
		return
	}
	job.ID = jobID

	if err := h.jobRepo.UpdateJob(ctx, job); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Job updated successfully", "job": updated}, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing == nil || existing.CompanyID != cid {
		writeError(w, apperr.E(apperr.NotFound, "Job not found"))
		return
	}

	if err := h.jobRepo.DeleteJob(ctx, jobID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Job deleted successfully"}, http.StatusOK)
}

func (h *JobsHandler) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}

	jobs, err := h.jobRepo.ListJobsByCompany(r.Context(), cid)
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, map[string]any{"jobs": jobs}, http.StatusOK)
}

// SearchJobs filters active listings for job seekers.
func (h *JobsHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := 10
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	search := repository.JobSearch{
		Query:           q.Get("query"),
		Location:        q.Get("location"),
		ExperienceLevel: q.Get("experienceLevel"),
		Remote:          q.Get("remote") == "true",
		SortBy:          q.Get("sortBy"),
		Limit:           limit,
		Offset:          (page - 1) * limit,
	}
	if types, found := q["jobType"]; found {
		search.Types = types
	}
	if v, err := strconv.ParseInt(q.Get("salaryMin"), 10, 64); err == nil && v > 0 {
		search.SalaryMin = v
	}
	if v, err := strconv.ParseInt(q.Get("salaryMax"), 10, 64); err == nil && v > 0 {
		search.SalaryMax = v
	}
	if cutoff := postedWithinCutoff(q.Get("postedWithin")); cutoff > 0 {
		search.PostedAfter = cutoff
	}

	jobs, total, err := h.jobRepo.SearchJobs(r.Context(), search)
	if err != nil {
		writeError(w, err)
		return
	}
	attachCompanies(r, h.companyRepo, jobs)
	if jobs == nil {
		jobs = []models.Job{}
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	writeJSON(w, map[string]any{
		"jobs": jobs,
		"pagination": map[string]any{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	}, http.StatusOK)
}

// GetJob returns a listing with its company summary and bumps the view
// counter at the storage boundary.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	job, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeError(w, apperr.E(apperr.NotFound, "Job not found"))
		return
	}

	if err := h.jobRepo.IncrementViews(ctx, jobID); err != nil {
		writeError(w, err)
		return
	}
	job.ViewsCount++

	if c, err := h.companyRepo.GetCompanyByID(ctx, job.CompanyID); err == nil && c != nil {
		job.Company = &models.CompanySummary{ID: c.ID, CompanyName: c.CompanyName, Logo: c.Logo, Location: c.Location, Industry: c.Industry}
	}

	writeJSON(w, map[string]any{"job": job}, http.StatusOK)
}

// attachCompanies resolves company summaries for a page of listings.
func attachCompanies(r *http.Request, companies repository.CompanyRepo, jobs []models.Job) {
	cache := map[int64]*models.CompanySummary{}
	for i := range jobs {
		summary, ok := cache[jobs[i].CompanyID]
		if !ok {
			if c, err := companies.GetCompanyByID(r.Context(), jobs[i].CompanyID); err == nil && c != nil {
				summary = &models.CompanySummary{ID: c.ID, CompanyName: c.CompanyName, Logo: c.Logo, Location: c.Location}
			}
			cache[jobs[i].CompanyID] = summary
		}
		jobs[i].Company = summary
	}
}

func postedWithinCutoff(window string) int64 {
	var d time.Duration
	switch window {
	case "24 hours":
		d = 24 * time.Hour
	case "7 days":
		d = 7 * 24 * time.Hour
	case "30 days":
		d = 30 * 24 * time.Hour
	default:
		return 0
	}
	return time.Now().UTC().Add(-d).UnixMilli()
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
