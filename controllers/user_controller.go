package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/middlewares"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

// GET /api/users (admin)
func ListUsers(c *gin.Context) {
	svc := services.NewUserService(config.DB)
	users, err := svc.List()
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToDict(true))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/users/:id (auth) — email only visible to admins or the
// user themselves.
func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	svc := services.NewUserService(config.DB)
	user, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	current := middlewares.CurrentUser(c)
	includeEmail := current != nil && (current.IsAdmin || current.ID == id)
	c.JSON(http.StatusOK, user.ToDict(includeEmail))
}

type updateUserBody struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Organization *string `json:"organization"`
	Phone        *string `json:"phone"`
	Password     *string `json:"password"`
	IsAdmin      *bool   `json:"is_admin"`
	IsActive     *bool   `json:"is_active"`
}

// PUT /api/users/:id (auth) — self-service profile edit, or admin
// managing roles. Demoting or deactivating the last admin is refused.
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewUserService(config.DB)
	user, err := svc.Update(middlewares.CurrentUser(c), id, &services.UserUpdate{
		Name:         body.Name,
		Email:        body.Email,
		Organization: body.Organization,
		Phone:        body.Phone,
		Password:     body.Password,
		IsAdmin:      body.IsAdmin,
		IsActive:     body.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user.ToDict(true),
	})
}

// DELETE /api/users/:id (admin) — always a soft delete.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	svc := services.NewUserService(config.DB)
	if err := svc.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
