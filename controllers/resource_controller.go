package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/models"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

// resourceToFeature converts a resource to a GeoJSON Feature.
// GeoJSON coordinate order is [longitude, latitude].
func resourceToFeature(r *models.FoodResource) gin.H {
	return gin.H{
		"type": "Feature",
		"geometry": gin.H{
			"type":        "Point",
			"coordinates": []float64{r.Longitude, r.Latitude},
		},
		"properties": gin.H{
			"id":            r.ID,
			"name":          r.Name,
			"resource_type": r.ResourceType,
			"address":       r.Address,
			"neighborhood":  r.Neighborhood,
			"hours":         r.Hours,
			"phone":         r.Phone,
			"website":       r.Website,
			"description":   r.Description,
		},
	}
}

// GET /api/food-resources?type=...&neighborhood=...
func ListFoodResources(c *gin.Context) {
	svc := services.NewResourceService(config.DB)
	resources, err := svc.List(services.ResourceFilter{
		ResourceType: c.Query("type"),
		Neighborhood: c.Query("neighborhood"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	features := make([]gin.H, 0, len(resources))
	for i := range resources {
		features = append(features, resourceToFeature(&resources[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":     "FeatureCollection",
		"features": features,
	})
}

// GET /api/food-resources/:id
func GetFoodResource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	svc := services.NewResourceService(config.DB)
	resource, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.ToDict())
}

type createResourceBody struct {
	Name         string          `json:"name"`
	ResourceType string          `json:"resource_type"`
	Address      string          `json:"address"`
	Neighborhood *string         `json:"neighborhood"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Hours        json.RawMessage `json:"hours"`
	Phone        *string         `json:"phone"`
	Website      *string         `json:"website"`
	Description  *string         `json:"description"`
}

// POST /api/food-resources (admin)
func CreateFoodResource(c *gin.Context) {
	var body createResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewResourceService(config.DB)
	resource, err := svc.Create(&services.ResourceInput{
		Name:         body.Name,
		ResourceType: body.ResourceType,
		Address:      body.Address,
		Neighborhood: body.Neighborhood,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		Hours:        datatypes.JSON(body.Hours),
		Phone:        body.Phone,
		Website:      body.Website,
		Description:  body.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource.ToDict())
}

type updateResourceBody struct {
	Name         *string         `json:"name"`
	ResourceType *string         `json:"resource_type"`
	Address      *string         `json:"address"`
	Neighborhood *string         `json:"neighborhood"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Hours        json.RawMessage `json:"hours"`
	Phone        *string         `json:"phone"`
	Website      *string         `json:"website"`
	Description  *string         `json:"description"`
	IsActive     *bool           `json:"is_active"`
}

// PUT /api/food-resources/:id (admin)
func UpdateFoodResource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	var body updateResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewResourceService(config.DB)
	resource, err := svc.Update(id, &services.ResourceUpdate{
		Name:         body.Name,
		ResourceType: body.ResourceType,
		Address:      body.Address,
		Neighborhood: body.Neighborhood,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		Hours:        datatypes.JSON(body.Hours),
		Phone:        body.Phone,
		Website:      body.Website,
		Description:  body.Description,
		IsActive:     body.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.ToDict())
}

// DELETE /api/food-resources/:id (admin, soft delete)
func DeleteFoodResource(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	svc := services.NewResourceService(config.DB)
	if err := svc.SoftDelete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}
