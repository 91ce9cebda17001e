package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"salon-scheduler/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// PublicPathPrefix is where anonymous booking-link routes live.
const PublicPathPrefix = "/api/public/"

// NewCORSMiddleware applies the configured origins to the staff API. The
// booking widget is embedded on arbitrary salon sites, so public routes
// accept any origin but never credentials.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	staff := cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	public := cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders:   cfg.ExposeHeaders,
		MaxAge:          cfg.MaxAge,
	})
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, PublicPathPrefix) {
			public(c)
			return
		}
		staff(c)
	}
}
