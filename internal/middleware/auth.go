package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-daily/internal/config"
)

type CtxKey int

const (
	CtxDevClaims CtxKey = iota
)

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="dev"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// DevAuth lets a request through only with a valid developer bearer token.
func DevAuth(j *config.JWT, log logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}
			claims, err := j.ParseDevClaims(token)
			if err != nil {
				log.WithError(err).Warn("rejected developer token")
				unauthorized(w, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), CtxDevClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func DevClaims(ctx context.Context) (*config.DevClaims, bool) {
	claims, ok := ctx.Value(CtxDevClaims).(*config.DevClaims)
	return claims, ok
}
