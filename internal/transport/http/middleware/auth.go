package middleware

import (
	"context"
	"net/http"
	"strings"

	"ptotracker/internal/domain/auth"
)

type ctxKeyType string

const ctxKeyManager ctxKeyType = "manager"

// Auth parses a bearer token when present and stores the manager context.
// Route handlers decide whether an anonymous request is acceptable.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyManager, auth.ManagerContext{
				ManagerID: claims.ManagerID,
				Username:  claims.Username,
				FullName:  claims.FullName,
				Role:      claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetManager(ctx context.Context) (auth.ManagerContext, bool) {
	manager, ok := ctx.Value(ctxKeyManager).(auth.ManagerContext)
	return manager, ok
}
