package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"example.com/susan-shop/app/internal/infra/security"
)

type ctxKey struct{}

var (
	ctxSessionKey      = ctxKey{}
	errUnauthenticated = errors.New("unauthenticated")
)

func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		session, err := a.sessionSvc.Parse(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSession(ctx context.Context) *security.Session {
	if s, ok := ctx.Value(ctxSessionKey).(*security.Session); ok {
		return s
	}
	return nil
}
