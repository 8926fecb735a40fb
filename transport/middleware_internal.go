package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/utils/errors"
	"github.com/groundtrade/inventory/utils/logger"
	"go.uber.org/zap"
)

// InternalMiddleware guards service-to-service routes with a static bearer
// key. Callers identify themselves via the X-Internal-Service header, which
// is only used for logging.
func InternalMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
				logger.Warn("[InternalMiddleware] rejected internal call",
					zap.String("service", r.Header.Get("X-Internal-Service")),
					zap.String("path", r.URL.Path),
				)
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
