package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joblinkhq/joblink/api"
	"github.com/joblinkhq/joblink/pkg/models"
	"github.com/joblinkhq/joblink/pkg/repository/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "testsecret"

// authedRequest tags a request with an authenticated account, the way the
// JWT middleware does for real traffic.
func authedRequest(r *http.Request, accountID int64, kind string) *http.Request {
	ctx := context.WithValue(r.Context(), api.CtxAccountID, accountID)
	ctx = context.WithValue(ctx, api.CtxAccountKind, kind)
	return r.WithContext(ctx)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func TestAuthHandlers(t *testing.T) {
	tokenDur := 1 * time.Hour

	companyBody := map[string]string{
		"email": "hr@acme.example", "password": "s3cret",
		"companyName": "Acme", "location": "Lisbon",
		"description": "Widgets", "industry": "Manufacturing", "totalEmployees": "51-200",
	}

	tests := []struct {
		name       string
		route      string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, b []byte)
	}{
		{
			name:       "RegisterJobSeeker_InvalidJSON",
			route:      "jobseeker",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RegisterJobSeeker_MissingPassword",
			route:      "jobseeker",
			body:       map[string]string{"email": "alice@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RegisterJobSeeker_ShortPassword",
			route:      "jobseeker",
			body:       map[string]string{"email": "alice@example.com", "password": "abc"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RegisterJobSeeker_BadEmail",
			route:      "jobseeker",
			body:       map[string]string{"email": "not-an-email", "password": "s3cret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RegisterJobSeeker_Success",
			route:      "jobseeker",
			body:       map[string]string{"email": "alice@example.com", "password": "s3cret"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					Token string `json:"token"`
					User  struct {
						ID       int64  `json:"id"`
						UserType string `json:"userType"`
					} `json:"user"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if ar.Token == "" {
					t.Fatalf("empty token")
				}
				if ar.User.UserType != models.KindJobSeeker {
					t.Fatalf("userType = %q", ar.User.UserType)
				}
				tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(testSecret), nil })
				if err != nil {
					t.Fatalf("parse token: %v", err)
				}
				claims := tok.Claims.(jwt.MapClaims)
				if claims["account_kind"] != models.KindJobSeeker {
					t.Fatalf("account_kind claim = %v", claims["account_kind"])
				}
				if int64(claims["account_id"].(float64)) != ar.User.ID {
					t.Fatalf("account_id claim %v != user id %d", claims["account_id"], ar.User.ID)
				}
			},
		},
		{
			name:  "RegisterJobSeeker_DuplicateEmail",
			route: "jobseeker",
			body:  map[string]string{"email": "dup@example.com", "password": "s3cret"},
			prepare: func(m *mock.Mocks) {
				_, _ = m.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{Email: "dup@example.com"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "RegisterCompany_MissingName",
			route:      "company",
			body:       map[string]string{"email": "hr@acme.example", "password": "s3cret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RegisterCompany_Success",
			route:      "company",
			body:       companyBody,
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					Token string `json:"token"`
					User  struct {
						CompanyName string `json:"companyName"`
					} `json:"user"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if ar.Token == "" {
					t.Fatalf("empty token")
				}
				if ar.User.CompanyName != "Acme" {
					t.Fatalf("companyName = %q", ar.User.CompanyName)
				}
			},
		},
		{
			name:  "RegisterCompany_DuplicateEmail",
			route: "company",
			body:  companyBody,
			prepare: func(m *mock.Mocks) {
				_, _ = m.Companies.CreateCompany(context.Background(), &models.Company{Email: "hr@acme.example", CompanyName: "Old Acme"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Login_MissingPassword",
			route:      "login",
			body:       map[string]string{"email": "alice@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Login_UnknownEmail",
			route:      "login",
			body:       map[string]string{"email": "ghost@example.com", "password": "whatever"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "Login_WrongPassword",
			route: "login",
			body:  map[string]string{"email": "bob@example.com", "password": "wrongpw"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("rightpw"), bcrypt.DefaultCost)
				_, _ = m.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{Email: "bob@example.com", PasswordHash: string(hash)})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "Login_JobSeeker_Success",
			route: "login",
			body:  map[string]string{"email": "bob@example.com", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
				_, _ = m.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{Email: "bob@example.com", PasswordHash: string(hash)})
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					UserType string `json:"userType"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if ar.UserType != models.KindJobSeeker {
					t.Fatalf("userType = %q", ar.UserType)
				}
			},
		},
		{
			// the same email registered as both kinds resolves to the company
			name:  "Login_CompanyWinsOverSeeker",
			route: "login",
			body:  map[string]string{"email": "both@example.com", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
				_, _ = m.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{Email: "both@example.com", PasswordHash: string(hash)})
				_, _ = m.Companies.CreateCompany(context.Background(), &models.Company{Email: "both@example.com", PasswordHash: string(hash), CompanyName: "Both Inc"})
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var ar struct {
					UserType string `json:"userType"`
					User     struct {
						CompanyName string `json:"companyName"`
					} `json:"user"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if ar.UserType != models.KindCompany {
					t.Fatalf("userType = %q, want company", ar.UserType)
				}
				if ar.User.CompanyName != "Both Inc" {
					t.Fatalf("companyName = %q", ar.User.CompanyName)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := api.NewAuthHandler(mocks.Seekers, mocks.Companies, testSecret, tokenDur)

			req := httptest.NewRequest(http.MethodPost, "/v1/auth/"+tt.route, jsonBody(t, tt.body))
			w := httptest.NewRecorder()

			switch tt.route {
			case "jobseeker":
				handler.RegisterJobSeeker(w, req)
			case "company":
				handler.RegisterCompany(w, req)
			case "login":
				handler.Login(w, req)
			default:
				t.Fatalf("unknown route %s", tt.route)
			}

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, data)
			}
		})
	}
}

func TestMe(t *testing.T) {
	mocks := mock.NewMocks()
	sid, _ := mocks.Seekers.CreateJobSeeker(context.Background(), &models.JobSeeker{Email: "alice@example.com", FullName: "Alice"})
	cid, _ := mocks.Companies.CreateCompany(context.Background(), &models.Company{Email: "hr@acme.example", CompanyName: "Acme"})
	handler := api.NewAuthHandler(mocks.Seekers, mocks.Companies, testSecret, time.Hour)

	t.Run("JobSeeker", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), sid, models.KindJobSeeker)
		w := httptest.NewRecorder()
		handler.Me(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", w.Code)
		}
		var body struct {
			UserType string `json:"userType"`
			User     struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.UserType != models.KindJobSeeker || body.User.Email != "alice@example.com" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("Company", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), cid, models.KindCompany)
		w := httptest.NewRecorder()
		handler.Me(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", w.Code)
		}
		var body struct {
			User struct {
				CompanyName string `json:"companyName"`
			} `json:"user"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.User.CompanyName != "Acme" {
			t.Fatalf("companyName = %q", body.User.CompanyName)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		w := httptest.NewRecorder()
		handler.Me(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", w.Code)
		}
	})

	t.Run("GoneAccount", func(t *testing.T) {
		req := authedRequest(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), 999, models.KindJobSeeker)
		w := httptest.NewRecorder()
		handler.Me(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", w.Code)
		}
	})
}
