package mw

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/utils"
)

// RestrictTo only lets callers from the allowed addresses or CIDRs through.
// An empty list disables the check.
func RestrictTo(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	set := utils.ParseAddrSet(allowed)
	if set.Len() == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("operational endpoints restricted",
		logger.Int("rules", set.Len()),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !set.Contains(ip) {
				log.Debug("caller rejected",
					logger.String("remote_ip", ip),
					logger.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
