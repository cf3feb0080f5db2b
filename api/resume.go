package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/internal/resume"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
)

// ResumeHandler serves the job seeker's structured resume document and its
// per-section entry operations.
type ResumeHandler struct {
	seekerRepo repository.JobSeekerRepo
}

func NewResumeHandler(sr repository.JobSeekerRepo) *ResumeHandler {
	return &ResumeHandler{seekerRepo: sr}
}

// load fetches the seeker and their resume, handing out the default empty
// structure when no resume exists yet.
func (h *ResumeHandler) load(w http.ResponseWriter, r *http.Request) (int64, *models.Resume, bool) {
	sid, ok := seekerID(w, r)
	if !ok {
		return 0, nil, false
	}

	seeker, err := h.seekerRepo.GetJobSeekerByID(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return 0, nil, false
	}
	if seeker == nil {
		writeError(w, apperr.E(apperr.NotFound, "Profile not found"))
		return 0, nil, false
	}

	doc := seeker.Resume
	if doc == nil {
		doc = resume.Default(seeker)
	}
	return sid, doc, true
}

func (h *ResumeHandler) save(w http.ResponseWriter, r *http.Request, sid int64, doc *models.Resume) bool {
	if err := h.seekerRepo.UpdateResume(r.Context(), sid, doc); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{"resume": doc}, http.StatusOK)
}

// Put replaces the whole resume document after validating it against the
// resume schema.
func (h *ResumeHandler) Put(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := resume.Validate(r.Context(), body); err != nil {
		writeError(w, err)
		return
	}

	var doc models.Resume
	if err := json.Unmarshal(body, &doc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !h.save(w, r, sid, &doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Resume updated successfully", "resume": &doc}, http.StatusOK)
}

// Export returns the resume document with an export timestamp.
func (h *ResumeHandler) Export(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"resume":     doc,
		"exportedAt": time.Now().UTC().UnixMilli(),
	}, http.StatusOK)
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

func (h *ResumeHandler) PutSkills(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var req skillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Skills == nil {
		req.Skills = []string{}
	}
	doc.Skills = req.Skills

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Skills updated successfully", "skills": doc.Skills}, http.StatusOK)
}

func entryID(r *http.Request) string {
	return mux.Vars(r)["entryId"]
}

func (h *ResumeHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Experience
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	entry = resume.AddExperience(doc, entry)

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Experience added successfully", "experience": entry}, http.StatusCreated)
}

func (h *ResumeHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Experience
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := resume.UpdateExperience(doc, entryID(r), entry); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Experience updated successfully"}, http.StatusOK)
}

func (h *ResumeHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	resume.DeleteExperience(doc, entryID(r))

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Experience deleted successfully"}, http.StatusOK)
}

func (h *ResumeHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Education
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	entry = resume.AddEducation(doc, entry)

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Education added successfully", "education": entry}, http.StatusCreated)
}

func (h *ResumeHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Education
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := resume.UpdateEducation(doc, entryID(r), entry); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Education updated successfully"}, http.StatusOK)
}

func (h *ResumeHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	resume.DeleteEducation(doc, entryID(r))

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Education deleted successfully"}, http.StatusOK)
}

func (h *ResumeHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Project
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	entry = resume.AddProject(doc, entry)

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Project added successfully", "project": entry}, http.StatusCreated)
}

func (h *ResumeHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Project
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := resume.UpdateProject(doc, entryID(r), entry); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Project updated successfully"}, http.StatusOK)
}

func (h *ResumeHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	resume.DeleteProject(doc, entryID(r))

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Project deleted successfully"}, http.StatusOK)
}

func (h *ResumeHandler) AddCertification(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Certification
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	entry = resume.AddCertification(doc, entry)

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Certification added successfully", "certification": entry}, http.StatusCreated)
}

func (h *ResumeHandler) UpdateCertification(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}

	var entry models.Certification
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := resume.UpdateCertification(doc, entryID(r), entry); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Certification updated successfully"}, http.StatusOK)
}

func (h *ResumeHandler) DeleteCertification(w http.ResponseWriter, r *http.Request) {
	sid, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	resume.DeleteCertification(doc, entryID(r))

	if !h.save(w, r, sid, doc) {
		return
	}
	writeJSON(w, map[string]any{"message": "Certification deleted successfully"}, http.StatusOK)
}
