package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/auth"
	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextUserRole = "userRole"
	ContextUser     = "currentUser"
)

// AuthMiddleware resolves the bearer token into the acting user. Missing
// header, malformed token, expired token, unknown or inactive user all get
// the same 401 body so callers cannot probe which case they hit.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "unauthorized", "message": "Could not validate credentials."})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextTenantID, user.TenantID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUser, &user)

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ContextUser).(*models.User)
}
