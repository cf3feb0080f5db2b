package api

import (
	"encoding/json"
	"net/http"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type CompanyHandler struct {
	companyRepo repository.CompanyRepo
}

func NewCompanyHandler(cr repository.CompanyRepo) *CompanyHandler {
	return &CompanyHandler{companyRepo: cr}
}

type companyUpdateRequest struct {
	CompanyName    *string `json:"companyName"`
	Location       *string `json:"location"`
	Description    *string `json:"description"`
	Industry       *string `json:"industry"`
	TotalEmployees *string `json:"totalEmployees"`
	Logo           *string `json:"logo"`

	// Password changes must prove knowledge of the current one.
	Password        *string `json:"password"`
	CurrentPassword string  `json:"currentPassword"`
}

// UpdateProfile applies a partial update to the authenticated company's
// profile. The email is immutable; a password change requires the current
// password.
func (h *CompanyHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	cid, ok := companyID(w, r)
	if !ok {
		return
	}

	var req companyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	company, err := h.companyRepo.GetCompanyByID(ctx, cid)
	if err != nil {
		writeError(w, err)
		return
	}
	if company == nil {
		writeError(w, apperr.E(apperr.NotFound, "Company not found"))
		return
	}

	if req.Password != nil {
		if req.CurrentPassword == "" {
			writeError(w, apperr.E(apperr.InvalidState, "Current password is required to update password"))
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(req.CurrentPassword)) != nil {
			writeError(w, apperr.E(apperr.InvalidState, "Current password is incorrect"))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Error hashing password", http.StatusInternalServerError)
			return
		}
		company.PasswordHash = string(hash)
	}

	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.TotalEmployees != nil {
		company.TotalEmployees = *req.TotalEmployees
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}

	if err := h.companyRepo.UpdateCompany(ctx, company); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"message": "Company profile updated successfully", "company": company}, http.StatusOK)
}
