package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader is the HTTP header carrying the admin API key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyAuth guards admin endpoints with a pre-shared key. The
// configured value is a bcrypt hash, never the plaintext key.
type AdminKeyAuth struct {
	keyHash []byte
	logger  *zap.Logger
	onAuth  func(success bool)
}

// NewAdminKeyAuth creates an admin key guard. An empty hash disables
// the admin surface entirely.
func NewAdminKeyAuth(keyHash string, logger *zap.Logger) *AdminKeyAuth {
	return &AdminKeyAuth{
		keyHash: []byte(keyHash),
		logger:  logger,
	}
}

// OnAuth registers a callback invoked after each authentication attempt.
func (a *AdminKeyAuth) OnAuth(fn func(success bool)) {
	a.onAuth = fn
}

// Enabled reports whether an admin key hash is configured.
func (a *AdminKeyAuth) Enabled() bool {
	return len(a.keyHash) > 0
}

// Middleware returns the HTTP middleware handler.
func (a *AdminKeyAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			// No key configured: admin endpoints do not exist
			http.NotFound(w, r)
			return
		}

		key := r.Header.Get(AdminKeyHeader)
		if key == "" {
			a.reject(w, r)
			return
		}

		if err := bcrypt.CompareHashAndPassword(a.keyHash, []byte(key)); err != nil {
			a.reject(w, r)
			return
		}

		if a.onAuth != nil {
			a.onAuth(true)
		}
		next.ServeHTTP(w, r)
	})
}

func (a *AdminKeyAuth) reject(w http.ResponseWriter, r *http.Request) {
	a.logger.Warn("admin auth failed",
		zap.String("ip", getClientIP(r)),
		zap.String("path", r.URL.Path),
	)
	if a.onAuth != nil {
		a.onAuth(false)
	}
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
