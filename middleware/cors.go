package middleware

import (
	"strings"
	"time"

	"cityflow/datagen/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS allows read-only access from the configured origins. "*" opens
// the file server to every origin without credentials.
func SetupCORS(cfg config.ServerConfig) gin.HandlerFunc {
	var allowedOrigins []string
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	base := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Range"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		base.AllowAllOrigins = true
		return cors.New(base)
	}
	base.AllowOrigins = allowedOrigins
	base.AllowCredentials = true
	return cors.New(base)
}
