package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type AuthHandler struct {
	seekerRepo    repository.JobSeekerRepo
	companyRepo   repository.CompanyRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(sr repository.JobSeekerRepo, cr repository.CompanyRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{seekerRepo: sr, companyRepo: cr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerJobSeekerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerCompanyRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	CompanyName    string `json:"companyName" validate:"required"`
	Location       string `json:"location" validate:"required"`
	Description    string `json:"description" validate:"required"`
	Industry       string `json:"industry" validate:"required"`
	TotalEmployees string `json:"totalEmployees" validate:"required"`
	Logo           string `json:"logo"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authUser struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	AccountKind string `json:"userType"`
	CompanyName string `json:"companyName,omitempty"`
}

type authResponse struct {
	Message     string   `json:"message"`
	Token       string   `json:"token"`
	AccountKind string   `json:"userType"`
	User        authUser `json:"user"`
}

func (h *AuthHandler) signToken(accountID int64, kind string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id":   accountID,
		"account_kind": kind,
		"exp":          time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) RegisterJobSeeker(w http.ResponseWriter, r *http.Request) {
	var req registerJobSeekerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Please provide email and password", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	seeker := models.JobSeeker{
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	id, err := h.seekerRepo.CreateJobSeeker(ctx, &seeker)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenStr, err := h.signToken(id, models.KindJobSeeker)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{
		Message:     "Job Seeker registered successfully",
		Token:       tokenStr,
		AccountKind: models.KindJobSeeker,
		User:        authUser{ID: id, Email: req.Email, AccountKind: models.KindJobSeeker},
	}, http.StatusCreated)
}

func (h *AuthHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "All required fields must be provided", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	company := models.Company{
		Email:          req.Email,
		PasswordHash:   string(hash),
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		Description:    req.Description,
		Industry:       req.Industry,
		TotalEmployees: req.TotalEmployees,
		Logo:           req.Logo,
	}
	id, err := h.companyRepo.CreateCompany(ctx, &company)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenStr, err := h.signToken(id, models.KindCompany)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{
		Message:     "Company registered successfully",
		Token:       tokenStr,
		AccountKind: models.KindCompany,
		User:        authUser{ID: id, Email: req.Email, AccountKind: models.KindCompany, CompanyName: req.CompanyName},
	}, http.StatusCreated)
}

// Login resolves the email against the company collection first, then the
// job seeker collection. The same email may exist in both; the company
// account wins (preserved from the original account semantics).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Please provide both email and password", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var (
		id   int64
		hash string
		kind string
		name string
	)
	if c, err := h.companyRepo.GetCompanyByEmail(ctx, req.Email); err == nil && c != nil {
		id, hash, kind, name = c.ID, c.PasswordHash, models.KindCompany, c.CompanyName
	} else if s, err := h.seekerRepo.GetJobSeekerByEmail(ctx, req.Email); err == nil && s != nil {
		id, hash, kind = s.ID, s.PasswordHash, models.KindJobSeeker
	} else {
		writeError(w, apperr.E(apperr.Unauthorized, "Invalid email or password"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeError(w, apperr.E(apperr.Unauthorized, "Invalid email or password"))
		return
	}

	tokenStr, err := h.signToken(id, kind)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{
		Message:     "Login successful",
		Token:       tokenStr,
		AccountKind: kind,
		User:        authUser{ID: id, Email: req.Email, AccountKind: kind, CompanyName: name},
	}, http.StatusOK)
}

// Me returns the authenticated account's profile without the credential hash.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
		return
	}
	kind, _ := accountKind(r)

	ctx := r.Context()

	switch kind {
	case models.KindJobSeeker:
		s, err := h.seekerRepo.GetJobSeekerByID(ctx, id)
		if err != nil {
			writeError(w, err)
			return
		}
		if s == nil {
			writeError(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		writeJSON(w, map[string]any{"user": s, "userType": kind}, http.StatusOK)
	case models.KindCompany:
		c, err := h.companyRepo.GetCompanyByID(ctx, id)
		if err != nil {
			writeError(w, err)
			return
		}
		if c == nil {
			writeError(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		writeJSON(w, map[string]any{"user": c, "userType": kind}, http.StatusOK)
	default:
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
	}
}
