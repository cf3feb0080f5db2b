package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/joblinkhq/joblink/internal/apperr"
	"github.com/joblinkhq/joblink/pkg/models"
)

type ctxKey string

const (
	CtxAccountID   ctxKey = "account_id"
	CtxAccountKind ctxKey = "account_kind"
)

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// JWTAuthMiddlewareWithSecret verifies the bearer token and tags the request
// context with the account identity and kind. Every handler behind it may
// assume an authenticated principal.
func JWTAuthMiddlewareWithSecret(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			var tokenString string
			if _, err := fmt.Sscanf(authHeader, "Bearer %s", &tokenString); err != nil {
				// If scanning fails, log and treat as invalid header
				logger.Error("failed to parse Authorization header", slog.Any("err", err))
			}

			if tokenString == "" {
				http.Error(w, "Invalid Authorization header", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			if v, found := claims["account_id"]; found {
				if id, ok := v.(float64); ok {
					ctx = context.WithValue(ctx, CtxAccountID, int64(id))
				}
			}
			if v, found := claims["account_kind"]; found {
				if kind, ok := v.(string); ok {
					ctx = context.WithValue(ctx, CtxAccountKind, kind)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireKind gates a subrouter to one account kind. It runs after the JWT
// middleware; the business layer below assumes role checks already passed.
func RequireKind(kind string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := accountKind(r)
			if !ok || got != kind {
				writeError(w, apperr.E(apperr.Unauthorized, fmt.Sprintf("Account kind '%s' is not authorized to access this route", got)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func accountID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(CtxAccountID).(int64)
	return id, ok && id > 0
}

func accountKind(r *http.Request) (string, bool) {
	kind, ok := r.Context().Value(CtxAccountKind).(string)
	return kind, ok
}

// seekerID extracts the authenticated job seeker, writing a 401 on failure.
func seekerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
		return 0, false
	}
	if kind, _ := accountKind(r); kind != models.KindJobSeeker {
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
		return 0, false
	}
	return id, true
}

// companyID extracts the authenticated company, writing a 401 on failure.
func companyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := accountID(r)
	if !ok {
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
		return 0, false
	}
	if kind, _ := accountKind(r); kind != models.KindCompany {
		writeError(w, apperr.E(apperr.Unauthorized, "Not authorized"))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps typed business errors onto HTTP statuses; anything else is
// an opaque server fault.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Server error"

	if kind, ok := apperr.KindOf(err); ok {
		msg = err.Error()
		switch kind {
		case apperr.NotFound:
			status = http.StatusNotFound
		case apperr.InvalidState:
			status = http.StatusBadRequest
		case apperr.Conflict:
			status = http.StatusConflict
		case apperr.Unauthorized:
			status = http.StatusUnauthorized
		}
	} else {
		logger.Error("server fault", slog.Any("err", err))
	}

	writeJSON(w, errorResponse{Message: msg}, status)
}
