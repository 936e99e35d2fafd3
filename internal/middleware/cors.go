package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chagual/internal/config"
)

// CORS builds the cross-origin policy from configuration. A "*" entry in
// AllowedOrigins allows every origin; credentials are only echoed for
// explicit origins.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           10 * time.Minute,
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			c.AllowCredentials = false
			origins = nil
			break
		}
		origins = append(origins, o)
	}
	if !c.AllowAllOrigins {
		if len(origins) == 0 {
			c.AllowAllOrigins = true
			c.AllowCredentials = false
		} else {
			c.AllowOrigins = origins
		}
	}
	return cors.New(c)
}
