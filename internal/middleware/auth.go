package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// ClaimUserID is the JWT claim holding the authenticated reviewer id.
const ClaimUserID = "user_id"

type contextKey struct{}

var userIDKey = contextKey{}

// Auth rejects requests without a valid bearer token signed with secret and
// stores the reviewer id on the request context.
func Auth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				unauthorized(w, "Missing bearer token")
				return
			}

			id, err := parseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func parseToken(secret []byte, raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	// JSON numbers decode as float64
	id, ok := claims[ClaimUserID].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("token has no %s claim", ClaimUserID)
	}
	return int64(id), nil
}

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated reviewer id, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
