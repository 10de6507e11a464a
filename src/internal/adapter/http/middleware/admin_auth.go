package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/bank-backoffice/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth guards administrative endpoints (the batch yield run) with HTTP
// basic auth. The key is stored server-side only as a bcrypt hash.
func AdminAuth(adminUser, adminKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminUser == "" || adminKeyHash == "" {
				logger.Error("admin auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			user, key, ok := r.BasicAuth()
			if !ok || !secureEqual(user, adminUser) || bcrypt.CompareHashAndPassword([]byte(adminKeyHash), []byte(key)) != nil {
				logger.Info("admin auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
