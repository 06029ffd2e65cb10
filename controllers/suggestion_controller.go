package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

type createSuggestionBody struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	ResourceType string  `json:"resource_type"`
	Neighborhood *string `json:"neighborhood"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	Hours        *string `json:"hours"`
	Description  *string `json:"description"`

	SubmitterName  *string `json:"submitter_name"`
	SubmitterEmail *string `json:"submitter_email"`
}

// POST /api/suggestions — public, no authentication required.
func CreateSuggestion(c *gin.Context) {
	var body createSuggestionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	suggestion, err := svc.Create(&services.SuggestionInput{
		Name:           body.Name,
		Address:        body.Address,
		ResourceType:   body.ResourceType,
		Neighborhood:   body.Neighborhood,
		Phone:          body.Phone,
		Website:        body.Website,
		Hours:          body.Hours,
		Description:    body.Description,
		SubmitterName:  body.SubmitterName,
		SubmitterEmail: body.SubmitterEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Suggestion submitted successfully",
		"suggestion_id": suggestion.ID,
	})
}

// GET /api/suggestions?status=...&resource_type=... (admin)
func ListSuggestions(c *gin.Context) {
	svc := services.NewSuggestionService(config.DB)
	suggestions, err := svc.List(services.SuggestionFilter{
		Status:       c.Query("status"),
		ResourceType: c.Query("resource_type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(suggestions))
	for i := range suggestions {
		out = append(out, suggestions[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out, "total": len(out)})
}

// GET /api/suggestions/:id (admin)
func GetSuggestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	suggestion, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion.ToDict())
}

// PUT /api/suggestions/:id (admin) — approve or reject. Approval does
// not create a live resource; promotion stays a manual step.
func UpdateSuggestionStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return
	}

	var body reviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: status"})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	suggestion, err := svc.UpdateStatus(id, *body.Status, body.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion.ToDict())
}

// DELETE /api/suggestions/:id (admin, permanent)
func DeleteSuggestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted successfully"})
}

// GET /api/suggestions/stats (admin)
func GetSuggestionStats(c *gin.Context) {
	svc := services.NewSuggestionService(config.DB)
	stats, err := svc.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
