package mock

import (
	"context"
	"sort"

	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository"
)

// Test helpers and in-memory fakes for the repository interfaces.
type Mocks struct {
	Seekers   *JobSeekerRepo
	Companies *CompanyRepo
	Jobs      *JobRepo
	Apps      *ApplicationRepo
	Saved     *SavedJobRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Seekers:   &JobSeekerRepo{byID: map[int64]*models.JobSeeker{}},
		Companies: &CompanyRepo{byID: map[int64]*models.Company{}},
		Jobs:      &JobRepo{byID: map[int64]*models.Job{}},
		Apps:      &ApplicationRepo{byID: map[int64]*models.Application{}},
		Saved:     &SavedJobRepo{},
	}
}

type JobSeekerRepo struct {
	byID   map[int64]*models.JobSeeker
	nextID int64

	CreateErr error
	GetErr    error
	UpdateErr error
}

var _ repository.JobSeekerRepo = (*JobSeekerRepo)(nil)

func (m *JobSeekerRepo) CreateJobSeeker(ctx context.Context, s *models.JobSeeker) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.Email == s.Email {
			return 0, apperr.E(apperr.Conflict, "Email already registered as Job Seeker")
		}
	}
	m.nextID++
	cp := *s
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *JobSeekerRepo) GetJobSeekerByID(ctx context.Context, id int64) (*models.JobSeeker, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if s, ok := m.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *JobSeekerRepo) GetJobSeekerByEmail(ctx context.Context, email string) (*models.JobSeeker, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.byID {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *JobSeekerRepo) UpdateJobSeeker(ctx context.Context, s *models.JobSeeker) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *s
	m.byID[cp.ID] = &cp
	return nil
}

func (m *JobSeekerRepo) UpdateResume(ctx context.Context, jobSeekerID int64, r *models.Resume) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	s, ok := m.byID[jobSeekerID]
	if !ok {
		return apperr.E(apperr.NotFound, "Job seeker not found")
	}
	s.Resume = r
	return nil
}

type CompanyRepo struct {
	byID   map[int64]*models.Company
	nextID int64

	CreateErr error
	GetErr    error
	UpdateErr error
}

var _ repository.CompanyRepo = (*CompanyRepo)(nil)

func (m *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.Email == c.Email {
			return 0, apperr.E(apperr.Conflict, "Company with this email already exists")
		}
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *CompanyRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *CompanyRepo) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, c := range m.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *CompanyRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *c
	m.byID[cp.ID] = &cp
	return nil
}

type JobRepo struct {
	byID   map[int64]*models.Job
	nextID int64

	CreateErr error
	GetErr    error
	UpdateErr error
	AdjustErr error
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	cp := *j
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if j, ok := m.byID[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *j
	m.byID[cp.ID] = &cp
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *JobRepo) ListJobsByCompany(ctx context.Context, companyID int64) ([]models.Job, error) {
	var out []models.Job
	for _, j := range m.byID {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	sortJobsByPostedDesc(out)
	return out, nil
}

func (m *JobRepo) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var out []models.Job
	for _, j := range m.byID {
		if j.Status == models.JobStatusActive {
			out = append(out, *j)
		}
	}
	sortJobsByPostedDesc(out)
	return out, nil
}

// SearchJobs applies only the active-status rule; tests exercising filter
// combinations run against the real SQLite repository.
func (m *JobRepo) SearchJobs(ctx context.Context, q repository.JobSearch) ([]models.Job, int64, error) {
	out, err := m.ListActiveJobs(ctx)
	if err != nil {
		return nil, 0, err
	}
	return out, int64(len(out)), nil
}

func (m *JobRepo) IncrementViews(ctx context.Context, id int64) error {
	if j, ok := m.byID[id]; ok {
		j.ViewsCount++
	}
	return nil
}

func (m *JobRepo) AdjustApplicationsCount(ctx context.Context, id int64, delta int64) error {
	if m.AdjustErr != nil {
		return m.AdjustErr
	}
	if j, ok := m.byID[id]; ok {
		j.ApplicationsCount += delta
		if j.ApplicationsCount < 0 {
			j.ApplicationsCount = 0
		}
	}
	return nil
}

func sortJobsByPostedDesc(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].PostedDate > jobs[k].PostedDate
	})
}

type ApplicationRepo struct {
	byID   map[int64]*models.Application
	nextID int64

	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.JobSeekerID == a.JobSeekerID && existing.JobID == a.JobID {
			return 0, apperr.E(apperr.Conflict, "You have already applied to this job")
		}
	}
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *ApplicationRepo) ListByJobSeeker(ctx context.Context, jobSeekerID int64, status string) ([]models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var out []models.Application
	for _, a := range m.byID {
		if a.JobSeekerID != jobSeekerID {
			continue
		}
		if status != "" && status != "all" && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].AppliedDate > out[k].AppliedDate
	})
	return out, nil
}

func (m *ApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var out []models.Application
	for _, a := range m.byID {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].AppliedDate > out[k].AppliedDate
	})
	return out, nil
}

func (m *ApplicationRepo) UpdateApplication(ctx context.Context, a *models.Application) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *a
	m.byID[cp.ID] = &cp
	return nil
}

func (m *ApplicationRepo) DeleteApplication(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.byID, id)
	return nil
}

func (m *ApplicationRepo) CountByJobSeeker(ctx context.Context, jobSeekerID int64, status string) (int64, error) {
	apps, err := m.ListByJobSeeker(ctx, jobSeekerID, status)
	if err != nil {
		return 0, err
	}
	return int64(len(apps)), nil
}

func (m *ApplicationRepo) CountRecentByJobSeeker(ctx context.Context, jobSeekerID int64, since int64) (int64, error) {
	var n int64
	for _, a := range m.byID {
		if a.JobSeekerID == jobSeekerID && a.AppliedDate >= since {
			n++
		}
	}
	return n, nil
}

type savedKey struct {
	seeker int64
	job    int64
}

type SavedJobRepo struct {
	saved []savedKey

	SaveErr error
	ListErr error

	// ResolveJobs supplies the listings returned by ListSavedJobs.
	ResolveJobs func(ids []int64) []models.Job
}

var _ repository.SavedJobRepo = (*SavedJobRepo)(nil)

func (m *SavedJobRepo) SaveJob(ctx context.Context, jobSeekerID, jobID int64) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for _, k := range m.saved {
		if k.seeker == jobSeekerID && k.job == jobID {
			return apperr.E(apperr.Conflict, "Job already saved")
		}
	}
	m.saved = append(m.saved, savedKey{seeker: jobSeekerID, job: jobID})
	return nil
}

func (m *SavedJobRepo) UnsaveJob(ctx context.Context, jobSeekerID, jobID int64) error {
	out := m.saved[:0]
	for _, k := range m.saved {
		if k.seeker != jobSeekerID || k.job != jobID {
			out = append(out, k)
		}
	}
	m.saved = out
	return nil
}

func (m *SavedJobRepo) ListSavedJobIDs(ctx context.Context, jobSeekerID int64) ([]int64, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var ids []int64
	for _, k := range m.saved {
		if k.seeker == jobSeekerID {
			ids = append(ids, k.job)
		}
	}
	return ids, nil
}

func (m *SavedJobRepo) ListSavedJobs(ctx context.Context, jobSeekerID int64) ([]models.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids, err := m.ListSavedJobIDs(ctx, jobSeekerID)
	if err != nil {
		return nil, err
	}
	if m.ResolveJobs == nil {
		return nil, nil
	}
	return m.ResolveJobs(ids), nil
}

func (m *SavedJobRepo) CountSavedJobs(ctx context.Context, jobSeekerID int64) (int64, error) {
	ids, err := m.ListSavedJobIDs(ctx, jobSeekerID)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
