package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/identity"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/repository"

	"github.com/google/uuid"
)

type contextKey string

const (
	memberContextKey contextKey = "member"
	tokenContextKey  contextKey = "token"
)

// MemberFromContext returns the authenticated member placed by Authenticate.
func MemberFromContext(ctx context.Context) (*domain.Member, bool) {
	m, ok := ctx.Value(memberContextKey).(*domain.Member)
	return m, ok
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// Middleware bundles the cross-cutting request handling.
type Middleware struct {
	identity   identity.Store
	memberRepo repository.MemberRepository
	corsOrigin string
}

func NewMiddleware(ids identity.Store, memberRepo repository.MemberRepository, corsOrigin string) *Middleware {
	return &Middleware{
		identity:   ids,
		memberRepo: memberRepo,
		corsOrigin: corsOrigin,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging attaches a request id and logs every request with its outcome.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.WithRequest(requestID).Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Recovery converts panics into a generic 500 so no request escapes the
// JSON error contract.
func (m *Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Unhandled panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS allows the configured frontend origin.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Stripe-Signature")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate requires a bearer token the identity store can resolve to a
// member. 401 covers both a missing and an unresolvable token.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		uid, err := m.identity.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		member, err := m.memberRepo.GetByIdentityID(r.Context(), uid)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), memberContextKey, member)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin runs after Authenticate; a valid token without the admin
// role is a 403, distinct from the 401 of a bad token.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		member, ok := MemberFromContext(r.Context())
		if !ok || member.Role != domain.MemberRoleAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
