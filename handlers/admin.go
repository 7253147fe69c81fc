package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbassignana/EclipseURL/auth"
	"github.com/tbassignana/EclipseURL/services"
)

// TopLinks lists the most-clicked links across all users. Admin only.
func TopLinks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	links, err := services.GetTopLinks(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links, "count": len(links)})
}

// AdminDeleteLink soft-deletes any user's link.
func AdminDeleteLink(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shortCode := c.Param("code")
	if err := services.SoftDeleteLink(shortCode, userID, true); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully", "short_code": shortCode})
}

// PlatformSummary returns platform-wide totals for the admin dashboard.
func PlatformSummary(c *gin.Context) {
	summary, err := services.GetPlatformSummary()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
