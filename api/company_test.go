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
	"golang.org/x/crypto/bcrypt"
)

func seedCompanyHandler(t *testing.T) (*api.CompanyHandler, *mock.Mocks, int64) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	m := mock.NewMocks()
	cid, err := m.Companies.CreateCompany(context.Background(), &models.Company{
		Email: "hr@acme.example", PasswordHash: string(hash),
		CompanyName: "Acme", Location: "Lisbon", Industry: "Software",
	})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return api.NewCompanyHandler(m.Companies), m, cid
}

func TestUpdateCompanyProfile(t *testing.T) {
	put := func(t *testing.T, h *api.CompanyHandler, cid int64, body any) *httptest.ResponseRecorder {
		t.Helper()
		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/company/profile", jsonBody(t, body)), cid, models.KindCompany)
		w := httptest.NewRecorder()
		h.UpdateProfile(w, req)
		return w
	}

	t.Run("PartialUpdate", func(t *testing.T) {
		h, m, cid := seedCompanyHandler(t)

		w := put(t, h, cid, map[string]any{"description": "We build widgets", "logo": "https://acme.example/logo.png"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}
		var res struct {
			Company models.Company `json:"company"`
		}
		if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.Company.Description != "We build widgets" {
			t.Fatalf("description = %q", res.Company.Description)
		}
		// absent fields survive untouched
		if res.Company.CompanyName != "Acme" || res.Company.Location != "Lisbon" {
			t.Fatalf("untouched fields changed: %+v", res.Company)
		}

		stored, _ := m.Companies.GetCompanyByID(context.Background(), cid)
		if stored.Logo != "https://acme.example/logo.png" {
			t.Fatalf("logo not persisted: %q", stored.Logo)
		}
	})

	t.Run("EmailIsImmutable", func(t *testing.T) {
		h, m, cid := seedCompanyHandler(t)

		w := put(t, h, cid, map[string]any{"email": "new@acme.example", "industry": "Hardware"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", w.Code)
		}
		stored, _ := m.Companies.GetCompanyByID(context.Background(), cid)
		if stored.Email != "hr@acme.example" {
			t.Fatalf("email changed to %q", stored.Email)
		}
		if stored.Industry != "Hardware" {
			t.Fatalf("industry = %q", stored.Industry)
		}
	})

	t.Run("PasswordChange", func(t *testing.T) {
		h, m, cid := seedCompanyHandler(t)

		w := put(t, h, cid, map[string]any{"password": "n3wpass", "currentPassword": "hunter2"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}
		stored, _ := m.Companies.GetCompanyByID(context.Background(), cid)
		if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("n3wpass")) != nil {
			t.Fatalf("new password does not verify")
		}
	})

	t.Run("PasswordChange_MissingCurrent", func(t *testing.T) {
		h, m, cid := seedCompanyHandler(t)

		w := put(t, h, cid, map[string]any{"password": "n3wpass"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", w.Code)
		}
		stored, _ := m.Companies.GetCompanyByID(context.Background(), cid)
		if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")) != nil {
			t.Fatalf("password changed without the current one")
		}
	})

	t.Run("PasswordChange_WrongCurrent", func(t *testing.T) {
		h, _, cid := seedCompanyHandler(t)

		w := put(t, h, cid, map[string]any{"password": "n3wpass", "currentPassword": "wrong"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", w.Code)
		}
	})

	t.Run("WrongKind", func(t *testing.T) {
		h, _, cid := seedCompanyHandler(t)

		req := authedRequest(httptest.NewRequest(http.MethodPut, "/v1/company/profile", jsonBody(t, map[string]any{"industry": "x"})), cid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		h.UpdateProfile(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", w.Code)
		}
	})
}
