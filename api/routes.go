package api

import (
	"github.com/gorilla/mux"

	"github.com/joblinkhq/joblink/internal/applications"
	"github.com/joblinkhq/joblink/internal/config"
	"github.com/joblinkhq/joblink/internal/db"
	"github.com/joblinkhq/joblink/internal/repository/sqlite"
	"github.com/joblinkhq/joblink/pkg/models"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo, repo)
	seekerHandler := NewSeekerHandler(repo, repo, repo, repo, repo)
	companyHandler := NewCompanyHandler(repo)
	resumeHandler := NewResumeHandler(repo)
	appsHandler := NewApplicationsHandler(applications.NewManager(repo, repo, repo, repo))

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/register/jobseeker", authHandler.RegisterJobSeeker).Methods("POST")
	r.HandleFunc("/v1/auth/register/company", authHandler.RegisterCompany).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	apiV1.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Job-seeker endpoints
	seekerV1 := apiV1.PathPrefix("/jobseeker").Subrouter()
	seekerV1.Use(RequireKind(models.KindJobSeeker))

	seekerV1.HandleFunc("/profile", seekerHandler.GetProfile).Methods("GET")
	seekerV1.HandleFunc("/profile", seekerHandler.UpdateProfile).Methods("PUT")
	seekerV1.HandleFunc("/stats", seekerHandler.Stats).Methods("GET")
	seekerV1.HandleFunc("/recommendations", seekerHandler.Recommendations).Methods("GET")
	seekerV1.HandleFunc("/jobs/{id}/save", seekerHandler.SaveJob).Methods("POST")
	seekerV1.HandleFunc("/jobs/{id}/save", seekerHandler.UnsaveJob).Methods("DELETE")
	seekerV1.HandleFunc("/saved-jobs", seekerHandler.SavedJobs).Methods("GET")

	// Resume endpoints
	resumeV1 := apiV1.PathPrefix("/resume").Subrouter()
	resumeV1.Use(RequireKind(models.KindJobSeeker))

	resumeV1.HandleFunc("", resumeHandler.Get).Methods("GET")
	resumeV1.HandleFunc("", resumeHandler.Put).Methods("PUT")
	resumeV1.HandleFunc("/export", resumeHandler.Export).Methods("GET")
	resumeV1.HandleFunc("/skills", resumeHandler.PutSkills).Methods("PUT")
	resumeV1.HandleFunc("/experience", resumeHandler.AddExperience).Methods("POST")
	resumeV1.HandleFunc("/experience/{entryId}", resumeHandler.UpdateExperience).Methods("PUT")
	resumeV1.HandleFunc("/experience/{entryId}", resumeHandler.DeleteExperience).Methods("DELETE")
	resumeV1.HandleFunc("/education", resumeHandler.AddEducation).Methods("POST")
	resumeV1.HandleFunc("/education/{entryId}", resumeHandler.UpdateEducation).Methods("PUT")
	resumeV1.HandleFunc("/education/{entryId}", resumeHandler.DeleteEducation).Methods("DELETE")
	resumeV1.HandleFunc("/projects", resumeHandler.AddProject).Methods("POST")
	resumeV1.HandleFunc("/projects/{entryId}", resumeHandler.UpdateProject).Methods("PUT")
	resumeV1.HandleFunc("/projects/{entryId}", resumeHandler.DeleteProject).Methods("DELETE")
	resumeV1.HandleFunc("/certifications", resumeHandler.AddCertification).Methods("POST")
	resumeV1.HandleFunc("/certifications/{entryId}", resumeHandler.UpdateCertification).Methods("PUT")
	resumeV1.HandleFunc("/certifications/{entryId}", resumeHandler.DeleteCertification).Methods("DELETE")

	// Job search and detail (job seeker)
	jobsV1 := apiV1.PathPrefix("/jobs").Subrouter()
	jobsV1.Use(RequireKind(models.KindJobSeeker))

	jobsV1.HandleFunc("/search", jobsHandler.SearchJobs).Methods("GET")
	jobsV1.HandleFunc("/{id}", jobsHandler.GetJob).Methods("GET")

	// Applications (job seeker)
	appsV1 := apiV1.PathPrefix("/applications").Subrouter()
	appsV1.Use(RequireKind(models.KindJobSeeker))

	appsV1.HandleFunc("", appsHandler.ListMine).Methods("GET")
	appsV1.HandleFunc("/jobs/{id}", appsHandler.Apply).Methods("POST")
	appsV1.HandleFunc("/{id}", appsHandler.GetMine).Methods("GET")
	appsV1.HandleFunc("/{id}", appsHandler.Withdraw).Methods("DELETE")

	// Company endpoints
	companyV1 := apiV1.PathPrefix("/company").Subrouter()
	companyV1.Use(RequireKind(models.KindCompany))

	companyV1.HandleFunc("/profile", companyHandler.UpdateProfile).Methods("PUT")
	companyV1.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	companyV1.HandleFunc("/jobs", jobsHandler.ListMyJobs).Methods("GET")
	companyV1.HandleFunc("/jobs/{id}", jobsHandler.UpdateJob).Methods("PUT")
	companyV1.HandleFunc("/jobs/{id}", jobsHandler.DeleteJob).Methods("DELETE")
	companyV1.HandleFunc("/jobs/{id}/applications", appsHandler.ListForJob).Methods("GET")
	companyV1.HandleFunc("/applications/{id}/status", appsHandler.UpdateStatus).Methods("PUT")

	return r
}
