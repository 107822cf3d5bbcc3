package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/growcoach/jobboard/internal/auth"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "user_id"
	CtxUserType ctxKey = "user_type"
	ctxClaims   ctxKey = "claims"
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
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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
				writeError(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}

	return strings.TrimSpace(authHeader[len(prefix):])
}

// AuthMiddleware validates the bearer token and consults the revocation
// registry before any handler runs. A revoked token is rejected even if it
// has not yet expired.
func AuthMiddleware(issuer *auth.Issuer, registry *auth.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				writeError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Parse(tokenString)
			if err != nil {
				writeError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			revoked, err := registry.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("revocation check failed", slog.Any("err", err))
				writeError(w, "Database error", http.StatusInternalServerError)
				return
			}
			if revoked {
				writeError(w, "Token has been revoked", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, withSession(r, claims))
		})
	}
}

// OptionalAuthMiddleware resolves the session when a valid, unrevoked token
// is present but lets unauthenticated requests through.
func OptionalAuthMiddleware(issuer *auth.Issuer, registry *auth.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Parse(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			revoked, err := registry.IsRevoked(r.Context(), claims.ID)
			if err != nil || revoked {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, withSession(r, claims))
		})
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role
// claim. Must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userType, _ := r.Context().Value(CtxUserType).(string)
		if userType != "admin" {
			writeError(w, "You don't have permission", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func withSession(r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), ctxClaims, claims)
	if id, err := claims.UserID(); err == nil {
		ctx = context.WithValue(ctx, CtxUserID, id)
	}
	if claims.UserType != "" {
		ctx = context.WithValue(ctx, CtxUserType, claims.UserType)
	}

	return r.WithContext(ctx)
}

// requestUserID returns the authenticated principal id, or false when the
// request carries no session.
func requestUserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(CtxUserID).(int64)
	return id, ok
}

func requestClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(ctxClaims).(*auth.Claims)
	return claims
}
