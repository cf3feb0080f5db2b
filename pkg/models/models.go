package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Account kinds carried in JWT claims and used for role gating.
const (
	KindJobSeeker = "jobseeker"
	KindCompany   = "company"
)

// Job lifecycle statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// JobTypes is the fixed enumeration of employment types.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Freelance"}

// ExperienceLevels is the fixed enumeration of seniority bands.
var ExperienceLevels = []string{"Entry Level", "Mid Level", "Senior Level", "Lead", "Executive"}

// Application statuses. Any status may be set to any other status by an
// authorized caller; there is no transition state machine beyond the enum.
const (
	AppStatusPending   = "pending"
	AppStatusReviewing = "reviewing"
	AppStatusInterview = "interview"
	AppStatusAccepted  = "accepted"
	AppStatusRejected  = "rejected"
)

// ApplicationStatuses lists the valid values for Application.Status.
var ApplicationStatuses = []string{
	AppStatusPending, AppStatusReviewing, AppStatusInterview, AppStatusAccepted, AppStatusRejected,
}

type JobSeeker struct {
	ID           int64    `json:"id" db:"id"`
	Email        string   `json:"email" db:"email" validate:"required,email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	FullName     string   `json:"fullName" db:"full_name"`
	Phone        string   `json:"phone" db:"phone"`
	Location     string   `json:"location" db:"location"`
	Bio          string   `json:"bio" db:"bio"`
	Skills       []string `json:"skills" db:"skills"`
	Resume       *Resume  `json:"resume,omitempty" db:"resume"`
	Created      int64    `json:"created" db:"created"`
	Updated      int64    `json:"updated" db:"updated"`
}

type Company struct {
	ID             int64  `json:"id" db:"id"`
	Email          string `json:"email" db:"email" validate:"required,email"`
	PasswordHash   string `json:"-" db:"password_hash"`
	CompanyName    string `json:"companyName" db:"company_name" validate:"required"`
	Location       string `json:"location" db:"location" validate:"required"`
	Description    string `json:"description" db:"description" validate:"required"`
	Industry       string `json:"industry" db:"industry" validate:"required"`
	TotalEmployees string `json:"totalEmployees" db:"total_employees" validate:"required"`
	Logo           string `json:"logo" db:"logo"`
	Created        int64  `json:"created" db:"created"`
	Updated        int64  `json:"updated" db:"updated"`
}

type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Job struct {
	ID                int64    `json:"id" db:"id"`
	CompanyID         int64    `json:"companyId" db:"company_id"`
	Title             string   `json:"title" db:"title" validate:"required,max=100"`
	Description       string   `json:"description" db:"description" validate:"required"`
	Location          string   `json:"location" db:"location" validate:"required"`
	Type              string   `json:"type" db:"type"`
	ExperienceLevel   string   `json:"experienceLevel" db:"experience_level"`
	Salary            Salary   `json:"salary" db:"salary"`
	Skills            []string `json:"skills" db:"skills"`
	Requirements      []string `json:"requirements" db:"requirements"`
	Responsibilities  []string `json:"responsibilities" db:"responsibilities"`
	Benefits          []string `json:"benefits" db:"benefits"`
	Remote            bool     `json:"remote" db:"remote"`
	Status            string   `json:"status" db:"status"`
	ApplicationsCount int64    `json:"applicationsCount" db:"applications_count"`
	ViewsCount        int64    `json:"viewsCount" db:"views_count"`
	PostedDate        int64    `json:"postedDate" db:"posted_date"`
	Deadline          *int64   `json:"deadline,omitempty" db:"deadline"`
	Updated           int64    `json:"updated" db:"updated"`

	// Resolved company summary; populated on reads, never persisted here.
	Company *CompanySummary `json:"company,omitempty" db:"-"`
}

// CompanySummary is the subset of the company profile attached to job and
// application reads for display.
type CompanySummary struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
	Logo        string `json:"logo,omitempty"`
	Location    string `json:"location,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

type StatusChange struct {
	Status    string `json:"status"`
	UpdatedAt int64  `json:"updatedAt"`
	Notes     string `json:"notes,omitempty"`
}

type Application struct {
	ID             int64          `json:"id" db:"id"`
	JobSeekerID    int64          `json:"jobSeekerId" db:"job_seeker_id"`
	JobID          int64          `json:"jobId" db:"job_id"`
	CompanyID      int64          `json:"companyId" db:"company_id"`
	Status         string         `json:"status" db:"status"`
	CoverLetter    string         `json:"coverLetter" db:"cover_letter"`
	ResumeSnapshot *Resume        `json:"resumeSnapshot,omitempty" db:"resume_snapshot"`
	StatusHistory  []StatusChange `json:"statusHistory" db:"status_history"`
	Notes          string         `json:"notes,omitempty" db:"notes"`
	AppliedDate    int64          `json:"appliedDate" db:"applied_date"`
	Updated        int64          `json:"updatedAt" db:"updated"`

	// Resolved references for display; populated on reads.
	Job     *Job            `json:"job,omitempty" db:"-"`
	Company *CompanySummary `json:"company,omitempty" db:"-"`
}

// Resume is the structured resume document owned by a job seeker. It is
// stored as a single JSON document and snapshotted by value at apply time.
type Resume struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []string        `json:"languages"`
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GPA       string `json:"gpa,omitempty"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// SavedJob links a job seeker to a bookmarked listing.
type SavedJob struct {
	JobSeekerID int64 `json:"jobSeekerId" db:"job_seeker_id"`
	JobID       int64 `json:"jobId" db:"job_id"`
	Created     int64 `json:"created" db:"created"`
}
