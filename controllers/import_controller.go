package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

// POST /api/food-resources/import (admin) — bulk CSV upload. The
// response is only the batch summary; individual bad rows are skipped.
func ImportFoodResources(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	svc := services.NewImportService(config.DB)
	summary, err := svc.ImportCSV(file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
