package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/joblinkhq/joblink/internal/applications"
)

type ApplicationsHandler struct {
	manager *applications.Manager
}

func NewApplicationsHandler(m *applications.Manager) *ApplicationsHandler {
	return &ApplicationsHandler{manager: m}
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter"`
}

// Apply submits an application to a listing on behalf of the authenticated
// job seeker.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	var req applyRequest
	// cover letter is optional; an empty body is fine, a malformed one is not
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.manager.Apply(r.Context(), sid, jobID, req.CoverLetter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Application submitted successfully", "application": app}, http.StatusCreated)
}

// ListMine returns the seeker's applications, optionally filtered by status.
func (h *ApplicationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}

	apps, err := h.manager.List(r.Context(), sid, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"applications": apps}, http.StatusOK)
}

func (h *ApplicationsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}
	appID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	app, err := h.manager.Get(r.Context(), sid, appID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"application": app}, http.StatusOK)
}

func (h *ApplicationsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	sid, ok := seekerID(w, r)
	if !ok {
		return
	}
	appID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	if err := h.manager.Withdraw(r.Context(), sid, appID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Application withdrawn successfully"}, http.StatusOK)
}

// ListForJob returns the applications received on one of the company's
// listings.
func (h *ApplicationsHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	apps, err := h.manager.ListForJob(r.Context(), cid, jobID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"applications": apps}, http.StatusOK)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus moves an application to a new status and appends the change
// to its history.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}
	appID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid application id", http.StatusBadRequest)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	app, err := h.manager.UpdateStatus(r.Context(), cid, appID, req.Status, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Application status updated", "application": app}, http.StatusOK)
}
