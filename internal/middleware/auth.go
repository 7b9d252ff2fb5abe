package middleware

import (
	"context"
	"net/http"
	"reward_wheel/internal/config"
	"reward_wheel/pkg/resp"
	"reward_wheel/pkg/token"
	"strings"
)

type contextKey string

const accountIDKey = contextKey("accountID")

// Auth - проверяет Bearer JWT и кладет ID аккаунта в контекст запроса
func Auth(jwtCfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := token.VerifyToken(tokenStr, jwtCfg.AccessTokenSecretKey())
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			accountID, err := token.AccountID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
		})
	}
}

func WithAccountID(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountIDFromContext - ID аккаунта, установленный Auth
func AccountIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(accountIDKey).(int)
	return id, ok && id > 0
}
