package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

type createReportBody struct {
	ResourceID *uint  `json:"resource_id"`
	Message    string `json:"message"`
}

// POST /api/reports — public, no authentication required.
func CreateReport(c *gin.Context) {
	var body createReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewReportService(config.DB)
	report, err := svc.Create(body.Message, body.ResourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}

// GET /api/reports?status=...&resource_id=... (admin)
func ListReports(c *gin.Context) {
	filter := services.ReportFilter{Status: c.Query("status")}
	if raw := c.Query("resource_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource_id"})
			return
		}
		rid := uint(id)
		filter.ResourceID = &rid
	}

	svc := services.NewReportService(config.DB)
	reports, err := svc.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(reports))
	for i := range reports {
		out = append(out, reports[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"reports": out, "total": len(out)})
}

// GET /api/reports/:id (admin)
func GetReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	svc := services.NewReportService(config.DB)
	report, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.ToDict())
}

type reviewBody struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// PUT /api/reports/:id (admin) — move the report through the review
// state machine and optionally annotate it.
func UpdateReportStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
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

	svc := services.NewReportService(config.DB)
	report, err := svc.UpdateStatus(id, *body.Status, body.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.ToDict())
}

// DELETE /api/reports/:id (admin, permanent)
func DeleteReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	svc := services.NewReportService(config.DB)
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// GET /api/reports/stats (admin)
func GetReportStats(c *gin.Context) {
	svc := services.NewReportService(config.DB)
	stats, err := svc.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
