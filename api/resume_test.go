package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joblinkhq/joblink/api"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository/mock"
)

func seedResumeHandler(t *testing.T) (*api.ResumeHandler, *mock.Mocks, int64) {
	t.Helper()
	m := mock.NewMocks()
	sid, err := m.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{
		Email: "alice@example.com", FullName: "Alice", Location: "Lisbon",
	})
	if err != nil {
		t.Fatalf("seed seeker: %v", err)
	}
	return api.NewResumeHandler(m.Seekers), m, sid
}

func TestGetResume_DefaultsFromProfile(t *testing.T) {
	h, _, sid := seedResumeHandler(t)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/v1/resume", nil), sid, models.KindJobSeeker)
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var res struct {
		Resume models.Resume `json:"resume"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// a seeker without a stored resume gets one prefilled from the profile
	if res.Resume.PersonalInfo.FullName != "Alice" || res.Resume.PersonalInfo.Email != "alice@example.com" {
		t.Fatalf("personalInfo = %+v", res.Resume.PersonalInfo)
	}
	if res.Resume.Experience == nil || res.Resume.Skills == nil {
		t.Fatalf("sections must be non-nil: %+v", res.Resume)
	}
}

func TestPutResume(t *testing.T) {
	h, m, sid := seedResumeHandler(t)

	t.Run("Valid", func(t *testing.T) {
		doc := map[string]any{
			"personalInfo": map[string]any{"fullName": "Alice A.", "email": "alice@example.com"},
			"experience":   []any{},
			"education":    []any{},
			"skills":       []string{"Go"},
		}
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume", jsonBody(t, doc)), sid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		h.Put(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}

		stored, _ := m.Seekers.GetJobSeekerByID(context.Background(), sid)
		if stored.Resume == nil || stored.Resume.PersonalInfo.FullName != "Alice A." {
			t.Fatalf("resume not persisted: %+v", stored.Resume)
		}
	})

	t.Run("SchemaViolation", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume", jsonBody(t, `{"skills": "not-an-array"}`)), sid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		h.Put(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", w.Code)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume", jsonBody(t, "{not json")), sid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		h.Put(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", w.Code)
		}
	})
}

func TestPutSkills(t *testing.T) {
	h, m, sid := seedResumeHandler(t)

	req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume/skills", jsonBody(t, map[string]any{"skills": []string{"Go", "SQL"}})), sid, models.KindJobSeeker)
	w := httptest.NewRecorder()
	h.PutSkills(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	stored, _ := m.Seekers.GetJobSeekerByID(context.Background(), sid)
	if stored.Resume == nil || len(stored.Resume.Skills) != 2 {
		t.Fatalf("skills not persisted: %+v", stored.Resume)
	}

	// null skills clear the list instead of erroring
	req = authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume/skills", jsonBody(t, map[string]any{"skills": nil})), sid, models.KindJobSeeker)
	w = httptest.NewRecorder()
	h.PutSkills(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	stored, _ = m.Seekers.GetJobSeekerByID(context.Background(), sid)
	if len(stored.Resume.Skills) != 0 {
		t.Fatalf("skills = %v after clear", stored.Resume.Skills)
	}
}

func TestExperienceEntries(t *testing.T) {
	h, m, sid := seedResumeHandler(t)

	var entryID string

	t.Run("Add", func(t *testing.T) {
		body := map[string]any{"title": "Engineer", "company": "Acme", "startDate": "2020-01-01", "endDate": "2023-01-01"}
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/v1/resume/experience", jsonBody(t, body)), sid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		h.AddExperience(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
		}
		var res struct {
			Experience models.Experience `json:"experience"`
		}
		if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Experience.ID == "" {
			t.Fatalf("entry id not generated")
		}
		entryID = res.Experience.ID
	})

	t.Run("Update", func(t *testing.T) {
		body := map[string]any{"title": "Senior Engineer", "company": "Acme", "startDate": "2020-01-01", "endDate": "2023-01-01"}
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume/experience/"+entryID, jsonBody(t, body)), sid, models.KindJobSeeker)
		req = withVars(req, map[string]string{"entryId": entryID})
		w := httptest.NewRecorder()
		h.UpdateExperience(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}

		stored, _ := m.Seekers.GetJobSeekerByID(context.Background(), sid)
		if len(stored.Resume.Experience) != 1 || stored.Resume.Experience[0].Title != "Senior Engineer" {
			t.Fatalf("experience = %+v", stored.Resume.Experience)
		}
	})

	t.Run("Update_UnknownEntry", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/resume/experience/nope", jsonBody(t, map[string]any{"title": "x"})), sid, models.KindJobSeeker)
		req = withVars(req, map[string]string{"entryId": "nope"})
		w := httptest.NewRecorder()
		h.UpdateExperience(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", w.Code)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodDelete, "/v1/resume/experience/"+entryID, nil), sid, models.KindJobSeeker)
		req = withVars(req, map[string]string{"entryId": entryID})
		w := httptest.NewRecorder()
		h.DeleteExperience(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", w.Code)
		}

		stored, _ := m.Seekers.GetJobSeekerByID(context.Background(), sid)
		if len(stored.Resume.Experience) != 0 {
			t.Fatalf("experience = %+v after delete", stored.Resume.Experience)
		}
	})
}

func TestEducationAndProjectEntries(t *testing.T) {
	h, m, sid := seedResumeHandler(t)
	ctx := context.Background()

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/v1/resume/education", jsonBody(t, map[string]any{"school": "IST", "degree": "BSc", "field": "CS"})), sid, models.KindJobSeeker)
	w := httptest.NewRecorder()
	h.AddEducation(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("add education: expected 201 got %d", w.Code)
	}

	req = authedRequest(httptest.NewRequest(http.MethodPost, "/v1/resume/projects", jsonBody(t, map[string]any{"name": "joblink", "description": "job board", "technologies": []string{"Go"}})), sid, models.KindJobSeeker)
	w = httptest.NewRecorder()
	h.AddProject(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("add project: expected 201 got %d", w.Code)
	}

	req = authedRequest(httptest.NewRequest(http.MethodPost, "/v1/resume/certifications", jsonBody(t, map[string]any{"name": "CKA", "issuer": "CNCF", "date": "2024-05"})), sid, models.KindJobSeeker)
	w = httptest.NewRecorder()
	h.AddCertification(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("add certification: expected 201 got %d", w.Code)
	}

	stored, _ := m.Seekers.GetJobSeekerByID(ctx, sid)
	if len(stored.Resume.Education) != 1 || len(stored.Resume.Projects) != 1 || len(stored.Resume.Certifications) != 1 {
		t.Fatalf("sections = edu:%d proj:%d cert:%d",
			len(stored.Resume.Education), len(stored.Resume.Projects), len(stored.Resume.Certifications))
	}
}

func TestExportResume(t *testing.T) {
	h, _, sid := seedResumeHandler(t)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/v1/resume/export", nil), sid, models.KindJobSeeker)
	w := httptest.NewRecorder()
	h.Export(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var res struct {
		Resume     models.Resume `json:"resume"`
		ExportedAt int64         `json:"exportedAt"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ExportedAt == 0 {
		t.Fatalf("exportedAt missing")
	}
}
