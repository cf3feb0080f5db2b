package repository

import (
	"context"

	"github.com/joblinkhq/joblink/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type JobSeekerRepo interface {
	CreateJobSeeker(ctx context.Context, s *models.JobSeeker) (int64, error)
	GetJobSeekerByID(ctx context.Context, id int64) (*models.JobSeeker, error)
	GetJobSeekerByEmail(ctx context.Context, email string) (*models.JobSeeker, error)
	UpdateJobSeeker(ctx context.Context, s *models.JobSeeker) error
	UpdateResume(ctx context.Context, jobSeekerID int64, r *models.Resume) error
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
}

// JobSearch captures the filters for the seeker-facing search endpoint.
// Zero values mean "not filtered".
type JobSearch struct {
	Query           string
	Location        string
	Types           []string
	ExperienceLevel string
	Remote          bool
	SalaryMin       int64
	SalaryMax       int64
	PostedAfter     int64
	SortBy          string
	Limit           int
	Offset          int
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error)
	// ListActiveJobs returns active listings most recently posted first.
	ListActiveJobs(ctx context.Context) ([]models.Job, error)
	SearchJobs(ctx context.Context, q JobSearch) ([]models.Job, int64, error)
	// IncrementViews bumps the view counter at the storage boundary.
	IncrementViews(ctx context.Context, id int64) error
	// AdjustApplicationsCount applies an atomic delta to the application
	// counter, clamped at zero.
	AdjustApplicationsCount(ctx context.Context, id int64, delta int64) error
}

type ApplicationRepo interface {
	// CreateApplication persists a new application. A duplicate
	// (jobSeeker, job) pair fails with a Conflict error backed by the
	// storage uniqueness constraint.
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	// ListByJobSeeker returns the seeker's applications most recently
	// applied first, optionally narrowed to one status.
	ListByJobSeeker(ctx context.Context, jobSeekerID int64, status string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.Application, error)
	// UpdateApplication writes status, history, notes and the refreshed
	// updated stamp in a single statement.
	UpdateApplication(ctx context.Context, a *models.Application) error
	DeleteApplication(ctx context.Context, id int64) error
	CountByJobSeeker(ctx context.Context, jobSeekerID int64, status string) (int64, error)
	CountRecentByJobSeeker(ctx context.Context, jobSeekerID int64, since int64) (int64, error)
}

type SavedJobRepo interface {
	// SaveJob bookmarks a listing; a duplicate save fails with Conflict.
	SaveJob(ctx context.Context, jobSeekerID, jobID int64) error
	UnsaveJob(ctx context.Context, jobSeekerID, jobID int64) error
	ListSavedJobIDs(ctx context.Context, jobSeekerID int64) ([]int64, error)
	ListSavedJobs(ctx context.Context, jobSeekerID int64) ([]models.Job, error)
	CountSavedJobs(ctx context.Context, jobSeekerID int64) (int64, error)
}
