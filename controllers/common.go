package controllers

import (
	"net/http"
	"strconv"

	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto fixed status
// codes. Anything unclassified is a storage-level failure and surfaces
// as a generic 500 so internal detail never reaches the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errdefs.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errdefs.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errdefs.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errdefs.IsPermissionDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errdefs.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseID parses a numeric path parameter. Non-numeric IDs behave like
// missing records: the caller responds 404 with its own entity message.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
