package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/internal/match"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
)

type SeekerHandler struct {
	seekerRepo  repository.JobSeekerRepo
	jobRepo     repository.JobRepo
	savedRepo   repository.SavedJobRepo
	appRepo     repository.ApplicationRepo
	companyRepo repository.CompanyRepo
}

func NewSeekerHandler(sr repository.JobSeekerRepo, jr repository.JobRepo, sv repository.SavedJobRepo, ar repository.ApplicationRepo, cr repository.CompanyRepo) *SeekerHandler {
	return &SeekerHandler{seekerRepo: sr, jobRepo: jr, savedRepo: sv, appRepo: ar, companyRepo: cr}
}

func (h *SeekerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	seeker, err := h.seekerRepo.GetJobSeekerByID(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	if seeker == nil {
		writeError(w, apperr.E(apperr.NotFound, "Profile not found"))
		return
	}

	writeJSON(w, map[string]any{"profile": seeker}, http.StatusOK)
}

type profileUpdateRequest struct {
	FullName *string   `json:"fullName"`
	Phone    *string   `json:"phone"`
	Location *string   `json:"location"`
	Bio      *string   `json:"bio"`
	Skills   *[]string `json:"skills"`
}

// UpdateProfile applies a partial update: only fields present in the request
// change.
func (h *SeekerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	seeker, err := h.seekerRepo.GetJobSeekerByID(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}
	if seeker == nil {
		writeError(w, apperr.E(apperr.NotFound, "Profile not found"))
		return
	}

	if req.FullName != nil {
		seeker.FullName = *req.FullName
	}
	if req.Phone != nil {
		seeker.Phone = *req.Phone
	}
	if req.Location != nil {
		seeker.Location = *req.Location
	}
	if req.Bio != nil {
		seeker.Bio = *req.Bio
	}
	if req.Skills != nil {
		seeker.Skills = *req.Skills
	}

	if err := h.seekerRepo.UpdateJobSeeker(ctx, seeker); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Profile updated successfully", "profile": seeker}, http.StatusOK)
}

// Recommendations scores active listings against the seeker's profile. A
// seeker with an empty profile still receives results at the default match.
func (h *SeekerHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	seeker, err := h.seekerRepo.GetJobSeekerByID(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}
	if seeker == nil {
		writeError(w, apperr.E(apperr.NotFound, "Profile not found"))
		return
	}

	active, err := h.jobRepo.ListActiveJobs(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	attachCompanies(r, h.companyRepo, active)

	scored := match.Recommend(seeker, active)
	if scored == nil {
		scored = []match.ScoredJob{}
	}

	writeJSON(w, map[string]any{"jobs": scored}, http.StatusOK)
}

func (h *SeekerHandler) SaveJob(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}
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

	if err := h.savedRepo.SaveJob(ctx, sid, jobID); err != nil {
		writeError(w, err)
		return
	}

	ids, err := h.savedRepo.ListSavedJobIDs(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Job saved successfully", "savedJobs": ids}, http.StatusOK)
}

// UnsaveJob removes a bookmark; removing a job that was never saved is not
// an error.
func (h *SeekerHandler) UnsaveJob(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if err := h.savedRepo.UnsaveJob(ctx, sid, jobID); err != nil {
		writeError(w, err)
		return
	}

	ids, err := h.savedRepo.ListSavedJobIDs(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Job removed from saved jobs", "savedJobs": ids}, http.StatusOK)
}

func (h *SeekerHandler) SavedJobs(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	jobs, err := h.savedRepo.ListSavedJobs(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	attachCompanies(r, h.companyRepo, jobs)
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, map[string]any{"savedJobs": jobs}, http.StatusOK)
}

type dashboardStats struct {
	TotalApplications     int64 `json:"totalApplications"`
	PendingApplications   int64 `json:"pendingApplications"`
	InterviewApplications int64 `json:"interviewApplications"`
	AcceptedApplications  int64 `json:"acceptedApplications"`
	SavedJobsCount        int64 `json:"savedJobsCount"`
	ProfileCompletion     int   `json:"profileCompletion"`
	RecentApplications    int64 `json:"recentApplications"`
}

// Stats aggregates the seeker's dashboard numbers.
func (h *SeekerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	seeker, err := h.seekerRepo.GetJobSeekerByID(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}
	if seeker == nil {
		writeError(w, apperr.E(apperr.NotFound, "Profile not found"))
		return
	}

	var stats dashboardStats
	if stats.TotalApplications, err = h.appRepo.CountByJobSeeker(ctx, sid, ""); err != nil {
		writeError(w, err)
		return
	}
	if stats.PendingApplications, err = h.appRepo.CountByJobSeeker(ctx, sid, models.AppStatusPending); err != nil {
		writeError(w, err)
		return
	}
	if stats.InterviewApplications, err = h.appRepo.CountByJobSeeker(ctx, sid, models.AppStatusInterview); err != nil {
		writeError(w, err)
		return
	}
	if stats.AcceptedApplications, err = h.appRepo.CountByJobSeeker(ctx, sid, models.AppStatusAccepted); err != nil {
		writeError(w, err)
		return
	}
	if stats.SavedJobsCount, err = h.savedRepo.CountSavedJobs(ctx, sid); err != nil {
		writeError(w, err)
		return
	}

	sevenDaysAgo := time.Now().UTC().Add(-7 * 24 * time.Hour).UnixMilli()
	if stats.RecentApplications, err = h.appRepo.CountRecentByJobSeeker(ctx, sid, sevenDaysAgo); err != nil {
		writeError(w, err)
		return
	}

	stats.ProfileCompletion = profileCompletion(seeker)

	writeJSON(w, map[string]any{"stats": stats}, http.StatusOK)
}

// profileCompletion reports the share of tracked profile fields filled in.
func profileCompletion(s *models.JobSeeker) int {
	checks := []bool{
		s.FullName != "",
		s.Phone != "",
		s.Location != "",
		s.Bio != "",
		len(s.Skills) > 0,
		s.Resume != nil && len(s.Resume.Experience) > 0,
		s.Resume != nil && len(s.Resume.Education) > 0,
		s.Resume != nil && s.Resume.PersonalInfo.FullName != "",
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(float64(filled)/float64(len(checks))*100 + 0.5)
}
