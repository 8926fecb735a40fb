package transport

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	redisrepo "github.com/groundtrade/inventory/repository/redis"
	utilsContext "github.com/groundtrade/inventory/utils/context"
	"github.com/groundtrade/inventory/utils/errors"
)

type actorClaims struct {
	UserID      uint64 `json:"user_id"`
	Role        string `json:"role"`
	ShopID      uint64 `json:"shop_id,omitempty"`
	WarehouseID uint64 `json:"warehouse_id,omitempty"`
	SessionID   string `json:"session_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token issued by the identity service
// and embeds the resulting actor into the request context. Token issuance is
// not this service's concern; it only consumes the claims.
func AuthMiddleware(jwtSecret string, redisRepo redisrepo.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			claims := &actorClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !parsed.Valid {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Session must still be live in redis
			if claims.SessionID != "" && redisRepo != nil {
				userID, err := redisRepo.GetSession(r.Context(), claims.SessionID)
				if err != nil || userID != claims.UserID {
					writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
					return
				}
			}

			actor := &model.Actor{
				ID:          claims.UserID,
				Role:        constant.Role(claims.Role),
				ShopID:      claims.ShopID,
				WarehouseID: claims.WarehouseID,
			}

			ctx := utilsContext.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if path == "/payments/callback" || path == "/payments/abandon" {
		return true
	}

	return false
}
