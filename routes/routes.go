package routes

import (
	"net/http"
	"time"

	"tokengate/controllers"
	"tokengate/spotify"

	"github.com/gin-gonic/gin"
)

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// RequireOAuthConfig rejects requests before route logic runs when the provider
// credentials are missing. Only the OAuth routes are gated; `/`, `/health` and
// the audit endpoint need no credentials.
func RequireOAuthConfig(oauth *spotify.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !oauth.IsConfigured() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "server_misconfigured",
				"message": "CLIENT_ID, CLIENT_SECRET and REDIRECT_URI must be set",
			})
			return
		}
		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, oauth *spotify.Client) {
	authController := controllers.NewAuthController(oauth)
	auditController := controllers.NewAuditController()

	r.Use(SecurityHeadersMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "tokengate",
			"endpoints": gin.H{
				"login":         "GET /login",
				"callback":      "GET /callback",
				"refresh_token": "GET /refresh_token?refresh_token=...",
				"health":        "GET /health",
				"audit_logs":    "GET /api/audit/logs",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	oauthRoutes := r.Group("/")
	oauthRoutes.Use(RequireOAuthConfig(oauth))
	{
		oauthRoutes.GET("/login", authController.Login)
		oauthRoutes.GET("/callback", authController.Callback)
		oauthRoutes.GET("/refresh_token", authController.RefreshToken)
	}

	r.GET("/api/audit/logs", auditController.GetLogs)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Endpoint not found: " + c.Request.URL.Path,
		})
	})
}
