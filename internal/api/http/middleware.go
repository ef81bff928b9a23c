package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"staybook-backend/internal/config"
	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

type authContextKey struct{}

// RoleLoader resolves the roles currently active for a user.
type RoleLoader interface {
	ActiveRoles(ctx context.Context, userID int32) ([]domain.Role, error)
}

// requestID tags every request with an id, reusing the caller's when present,
// and attaches a logger carrying it to the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := logger.WithContext(r.Context(), logger.Get().With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.HTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// authenticator enforces the security level configured for the matched route.
type authenticator struct {
	tokenManager security.TokenManager
	roles        RoleLoader
}

func (a *authenticator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityAdmin
		if route := mux.CurrentRoute(r); route != nil {
			level = config.GetSecurityLevel(route.GetName())
		}
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeError(w, r, domain.NewUnauthenticatedError("authorization token is not provided"))
			return
		}
		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			writeError(w, r, domain.NewUnauthenticatedError("invalid token"))
			return
		}

		// Roles come from the store so deactivations apply before the token expires.
		roles, err := a.roles.ActiveRoles(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		auth := domain.AuthContext{SubjectID: claims.UserID, Roles: roles}
		if level == config.SecurityAdmin && !auth.IsAdmin() {
			writeError(w, r, domain.NewForbiddenError("admin role required"))
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey{}, auth)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("user_id", claims.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func authFrom(r *http.Request) domain.AuthContext {
	auth, _ := r.Context().Value(authContextKey{}).(domain.AuthContext)
	return auth
}
