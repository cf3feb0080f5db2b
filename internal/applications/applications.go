// Package applications is the application lifecycle manager: it enforces the
// apply preconditions, the withdraw rules, the status-history append, and
// keeps the per-job application counter symmetric with creation/withdrawal.
package applications

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/internal/resume"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
)

type Manager struct {
	apps      repository.ApplicationRepo
	jobs      repository.JobRepo
	seekers   repository.JobSeekerRepo
	companies repository.CompanyRepo
	now       func() int64
}

func NewManager(ar repository.ApplicationRepo, jr repository.JobRepo, sr repository.JobSeekerRepo, cr repository.CompanyRepo) *Manager {
	return &Manager{apps: ar, jobs: jr, seekers: sr, companies: cr, now: nowMillis}
}

// Apply creates a new application for (seeker, job).
//
// Preconditions: the job exists and is active, and the seeker has no prior
// application for it. The duplicate check is left to the storage uniqueness
// constraint, which resolves concurrent double-submits to exactly one winner;
// the loser surfaces as a Conflict, not a server fault.
func (m *Manager) Apply(ctx context.Context, jobSeekerID, jobID int64, coverLetter string) (*models.Application, error) {
	job, err := m.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job == nil {
		return nil, apperr.E(apperr.NotFound, "Job not found")
	}
	if job.Status != models.JobStatusActive {
		return nil, apperr.E(apperr.InvalidState, "This job is no longer accepting applications")
	}

	seeker, err := m.seekers.GetJobSeekerByID(ctx, jobSeekerID)
	if err != nil {
		return nil, fmt.Errorf("get job seeker: %w", err)
	}
	if seeker == nil {
		return nil, apperr.E(apperr.NotFound, "Profile not found")
	}

	ts := m.now()
	app := &models.Application{
		JobSeekerID: jobSeekerID,
		JobID:       jobID,
		CompanyID:   job.CompanyID,
		Status:      models.AppStatusPending,
		CoverLetter: coverLetter,
		// Owned deep copy; later edits to the live resume must not
		// reach the snapshot.
		ResumeSnapshot: resume.Clone(seeker.Resume),
		StatusHistory:  []models.StatusChange{{Status: models.AppStatusPending, UpdatedAt: ts}},
		AppliedDate:    ts,
	}

	id, err := m.apps.CreateApplication(ctx, app)
	if err != nil {
		return nil, err
	}
	app.ID = id

	if err := m.jobs.AdjustApplicationsCount(ctx, jobID, 1); err != nil {
		// The creation must not be reported as successful if the
		// counter increment fails.
		if delErr := m.apps.DeleteApplication(ctx, id); delErr != nil {
			return nil, fmt.Errorf("increment applications count: %w (cleanup failed: %v)", err, delErr)
		}
		return nil, fmt.Errorf("increment applications count: %w", err)
	}
	job.ApplicationsCount++

	app.Job = job
	if err := m.resolveCompany(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Withdraw permanently deletes an application and decrements the job's
// counter. Allowed only while the status is pending or reviewing; once an
// employer has engaged past initial screening, withdrawal is blocked.
func (m *Manager) Withdraw(ctx context.Context, jobSeekerID, applicationID int64) error {
	app, err := m.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("get application: %w", err)
	}
	if app == nil || app.JobSeekerID != jobSeekerID {
		return apperr.E(apperr.NotFound, "Application not found")
	}

	if app.Status != models.AppStatusPending && app.Status != models.AppStatusReviewing {
		return apperr.E(apperr.InvalidState, "Cannot withdraw application in current status")
	}

	if err := m.apps.DeleteApplication(ctx, applicationID); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if err := m.jobs.AdjustApplicationsCount(ctx, app.JobID, -1); err != nil {
		return fmt.Errorf("decrement applications count: %w", err)
	}

	return nil
}

// Summary is the display projection of a seeker's application.
type Summary struct {
	ID          int64  `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	AppliedDate int64  `json:"appliedDate"`
	UpdatedAt   int64  `json:"updatedAt"`
	CoverLetter string `json:"coverLetter"`
}

// List returns the seeker's applications, newest first, optionally narrowed
// to one status ("all" and "" mean no filter). Dangling job or company
// references degrade to placeholder text instead of failing the listing.
func (m *Manager) List(ctx context.Context, jobSeekerID int64, status string) ([]Summary, error) {
	apps, err := m.apps.ListByJobSeeker(ctx, jobSeekerID, status)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]Summary, 0, len(apps))
	for _, a := range apps {
		s := Summary{
			ID:          a.ID,
			JobTitle:    "Position Unavailable",
			Company:     "Company Unavailable",
			Location:    "Location not specified",
			Status:      a.Status,
			AppliedDate: a.AppliedDate,
			UpdatedAt:   a.Updated,
			CoverLetter: a.CoverLetter,
		}

		if job, err := m.jobs.GetJob(ctx, a.JobID); err == nil && job != nil {
			s.JobTitle = job.Title
			if job.Location != "" {
				s.Location = job.Location
			}
		}
		if c, err := m.companies.GetCompanyByID(ctx, a.CompanyID); err == nil && c != nil {
			s.Company = c.CompanyName
		}

		out = append(out, s)
	}

	return out, nil
}

// Get returns one of the seeker's applications with job and company resolved.
func (m *Manager) Get(ctx context.Context, jobSeekerID, applicationID int64) (*models.Application, error) {
	app, err := m.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil || app.JobSeekerID != jobSeekerID {
		return nil, apperr.E(apperr.NotFound, "Application not found")
	}

	if job, err := m.jobs.GetJob(ctx, app.JobID); err == nil && job != nil {
		app.Job = job
	}
	if err := m.resolveCompany(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// ListForJob returns the applications submitted to one of the company's own
// listings, newest first.
func (m *Manager) ListForJob(ctx context.Context, companyID, jobID int64) ([]models.Application, error) {
	job, err := m.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job == nil || job.CompanyID != companyID {
		return nil, apperr.E(apperr.NotFound, "Job not found")
	}

	apps, err := m.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}

// UpdateStatus sets a new status on an application owned by the company.
// There is no transition state machine beyond the status enum: any status may
// follow any other. The history entry and the refreshed updated stamp are
// written in the same persistence step as the status itself.
func (m *Manager) UpdateStatus(ctx context.Context, companyID, applicationID int64, status, notes string) (*models.Application, error) {
	if !slices.Contains(models.ApplicationStatuses, status) {
		return nil, apperr.E(apperr.InvalidState, "Invalid application status")
	}

	app, err := m.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil || app.CompanyID != companyID {
		return nil, apperr.E(apperr.NotFound, "Application not found")
	}

	app.Status = status
	app.StatusHistory = append(app.StatusHistory, models.StatusChange{Status: status, UpdatedAt: m.now(), Notes: notes})
	if notes != "" {
		app.Notes = notes
	}

	if err := m.apps.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	return app, nil
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func (m *Manager) resolveCompany(ctx context.Context, app *models.Application) error {
	c, err := m.companies.GetCompanyByID(ctx, app.CompanyID)
	if err != nil {
		return fmt.Errorf("get company: %w", err)
	}
	if c != nil {
		app.Company = &models.CompanySummary{ID: c.ID, CompanyName: c.CompanyName, Logo: c.Logo, Location: c.Location, Industry: c.Industry}
	}
	return nil
}
