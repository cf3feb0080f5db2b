// Package resume holds the operations on a job seeker's structured resume
// document: section entry management with generated identifiers, value-copy
// snapshots, and schema validation of full-document replacements.
package resume

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

// Default returns the empty resume structure handed out when a seeker has
// not built a resume yet, prefilled from the profile.
func Default(s *models.JobSeeker) *models.Resume {
	r := &models.Resume{
		Experience:     []models.Experience{},
		Education:      []models.Education{},
		Skills:         []string{},
		Certifications: []models.Certification{},
		Projects:       []models.Project{},
		Languages:      []string{},
	}
	if s != nil {
		r.PersonalInfo = models.PersonalInfo{
			FullName: s.FullName,
			Email:    s.Email,
			Phone:    s.Phone,
			Location: s.Location,
		}
	}
	return r
}

// Clone returns an owned deep copy of the document. Snapshots taken at apply
// time use this so later edits to the live resume never reach the snapshot.
func Clone(r *models.Resume) *models.Resume {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		// Resume is a plain data struct; marshal cannot fail in practice.
		panic(fmt.Sprintf("clone resume: %v", err))
	}
	var out models.Resume
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("clone resume: %v", err))
	}
	return &out
}

func newID() string {
	return uuid.NewString()
}

func AddExperience(r *models.Resume, e models.Experience) models.Experience {
	if e.ID == "" {
		e.ID = newID()
	}
	r.Experience = append(r.Experience, e)
	return e
}

func UpdateExperience(r *models.Resume, id string, e models.Experience) error {
	for i := range r.Experience {
		if r.Experience[i].ID == id {
			e.ID = id
			r.Experience[i] = e
			return nil
		}
	}
	return apperr.E(apperr.NotFound, "Experience not found")
}

func DeleteExperience(r *models.Resume, id string) {
	out := r.Experience[:0]
	for _, e := range r.Experience {
		if e.ID != id {
			out = append(out, e)
		}
	}
	r.Experience = out
}

func AddEducation(r *models.Resume, e models.Education) models.Education {
	if e.ID == "" {
		e.ID = newID()
	}
	r.Education = append(r.Education, e)
	return e
}

func UpdateEducation(r *models.Resume, id string, e models.Education) error {
	for i := range r.Education {
		if r.Education[i].ID == id {
			e.ID = id
			r.Education[i] = e
			return nil
		}
	}
	return apperr.E(apperr.NotFound, "Education not found")
}

func DeleteEducation(r *models.Resume, id string) {
	out := r.Education[:0]
	for _, e := range r.Education {
		if e.ID != id {
			out = append(out, e)
		}
	}
	r.Education = out
}

func AddProject(r *models.Resume, p models.Project) models.Project {
	if p.ID == "" {
		p.ID = newID()
	}
	r.Projects = append(r.Projects, p)
	return p
}

func UpdateProject(r *models.Resume, id string, p models.Project) error {
	for i := range r.Projects {
		if r.Projects[i].ID == id {
			p.ID = id
			r.Projects[i] = p
			return nil
		}
	}
	return apperr.E(apperr.NotFound, "Project not found")
}

func DeleteProject(r *models.Resume, id string) {
	out := r.Projects[:0]
	for _, p := range r.Projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	r.Projects = out
}

func AddCertification(r *models.Resume, c models.Certification) models.Certification {
	if c.ID == "" {
		c.ID = newID()
	}
	r.Certifications = append(r.Certifications, c)
	return c
}

func UpdateCertification(r *models.Resume, id string, c models.Certification) error {
	for i := range r.Certifications {
		if r.Certifications[i].ID == id {
			c.ID = id
			r.Certifications[i] = c
			return nil
		}
	}
	return apperr.E(apperr.NotFound, "Certification not found")
}

func DeleteCertification(r *models.Resume, id string) {
	out := r.Certifications[:0]
	for _, c := range r.Certifications {
		if c.ID != id {
			out = append(out, c)
		}
	}
	r.Certifications = out
}
