package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
)

const currentUserKey = "currentUser"

// Authenticate resolves a bearer token to its user. It is a pure
// function of (db, token): the token must parse as HS256 with our
// secret, the user must exist, and the user must still be active — a
// deactivated account invalidates the session on the spot.
func Authenticate(db *gorm.DB, tokenString string) (*models.User, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return nil, errors.New("server misconfigured: JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", errdefs.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims: %w", errdefs.ErrUnauthenticated)
	}
	id, ok := claims["userId"].(float64)
	if !ok {
		return nil, fmt.Errorf("userId claim missing: %w", errdefs.ErrUnauthenticated)
	}

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", errdefs.ErrUnauthenticated)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account deactivated: %w", errdefs.ErrUnauthenticated)
	}
	return &user, nil
}

// RequireAdmin is the second gate level: authenticated AND is_admin.
func RequireAdmin(user *models.User) error {
	if !user.IsAdmin {
		return fmt.Errorf("admin privileges required: %w", errdefs.ErrPermissionDenied)
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// AuthRequired rejects unauthenticated requests with 401 and stores the
// resolved user in the gin context for the handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please log in to access this resource",
			})
			return
		}

		user, err := Authenticate(config.DB, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid session",
				"message": "Please log in again",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AdminRequired distinguishes the two failure modes: 401 when the
// session is missing or invalid, 403 when it is valid but unprivileged.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please log in to access this resource",
			})
			return
		}

		user, err := Authenticate(config.DB, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid session",
				"message": "Please log in again",
			})
			return
		}

		if err := RequireAdmin(user); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Admin privileges required to access this resource",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user the gate stored for this request, or
// nil when the route is public.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
