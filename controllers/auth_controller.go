package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/middlewares"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/utils"
)

type registerBody struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Organization *string `json:"organization"`
	Phone        *string `json:"phone"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewUserService(config.DB)
	user, err := svc.Register(&services.RegisterInput{
		Name:         body.Name,
		Email:        body.Email,
		Password:     body.Password,
		Organization: body.Organization,
		Phone:        body.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.ToDict(false),
	})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	svc := services.NewUserService(config.DB)
	user, err := svc.Authenticate(body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.ToDict(true),
	})
}

// POST /api/auth/logout — tokens are stateless; the client discards
// its copy. Kept for API symmetry with the dashboard.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /api/auth/me (auth)
func Me(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.ToDict(true))
}

// GET /api/auth/check — public probe used by the frontend to decide
// which views to render. Never fails; it reports what the token grants.
func CheckAuth(c *gin.Context) {
	tokenString := ""
	if auth := c.GetHeader("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		tokenString = auth[7:]
	}
	if tokenString == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "is_admin": false})
		return
	}

	user, err := middlewares.Authenticate(config.DB, tokenString)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "is_admin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"is_admin":      user.IsAdmin,
		"user":          user.ToDict(false),
	})
}
