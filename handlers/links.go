package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbassignana/EclipseURL/auth"
	"github.com/tbassignana/EclipseURL/config"
	"github.com/tbassignana/EclipseURL/models"
	"github.com/tbassignana/EclipseURL/services"
)

var (
	baseURL    string
	codeLength int
)

// Init wires the handlers to the loaded configuration.
func Init(cfg *config.Config) {
	baseURL = cfg.BaseURL
	codeLength = cfg.ShortCodeLength
}

type CreateLinkRequest struct {
	OriginalURL    string `json:"original_url" binding:"required"`
	CustomAlias    string `json:"custom_alias"`
	ExpirationDays *int   `json:"expiration_days"`
}

func linkJSON(link *models.Link) gin.H {
	return gin.H{
		"id":                  link.ID,
		"original_url":        link.OriginalURL,
		"short_code":          link.ShortCode,
		"short_url":           baseURL + "/" + link.ShortCode,
		"custom_alias":        link.CustomAlias,
		"click_count":         link.ClickCount,
		"expires_at":          link.ExpiresAt,
		"created_at":          link.CreatedAt,
		"preview_title":       link.PreviewTitle,
		"preview_description": link.PreviewDescription,
		"preview_image":       link.PreviewImage,
	}
}

func CreateLink(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := services.CreateShortLink(services.CreateLinkInput{
		OriginalURL:    req.OriginalURL,
		CustomAlias:    req.CustomAlias,
		ExpirationDays: req.ExpirationDays,
	}, userID, codeLength)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, linkJSON(link))
}

func ListLinks(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	links, total, err := services.GetUserLinks(userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(links))
	for i := range links {
		items = append(items, linkJSON(&links[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"links": items,
		"total": total,
		"page":  page,
		"size":  pageSize,
	})
}

func GetLink(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	link, err := services.GetOwnedLink(c.Param("code"), userID, auth.GetIsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, linkJSON(link))
}

func DeleteLink(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.SoftDeleteLink(c.Param("code"), userID, auth.GetIsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

func GetLinkStats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := services.GetLinkStats(c.Param("code"), userID, auth.GetIsAdmin(c), days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLinkBrowsers serves the per-link browser breakdown.
func GetLinkBrowsers(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shortCode := c.Param("code")
	browsers, err := services.GetBrowserStats(shortCode, userID, auth.GetIsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"short_code": shortCode, "browsers": browsers})
}

// GetLinkOS serves the per-link operating system breakdown.
func GetLinkOS(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shortCode := c.Param("code")
	systems, err := services.GetOSStats(shortCode, userID, auth.GetIsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"short_code": shortCode, "os": systems})
}

// PreviewURL fetches Open Graph metadata for an arbitrary URL on demand, so
// clients can show what a destination looks like before shortening it.
func PreviewURL(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, services.FetchPreview(c.Request.Context(), rawURL))
}

// GetRealtimeClicks serves the cache-first counter for dashboard polling.
func GetRealtimeClicks(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shortCode := c.Param("code")
	if _, err := services.GetOwnedLink(shortCode, userID, auth.GetIsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}

	count, err := services.GetClickCount(c.Request.Context(), shortCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"short_code": shortCode, "clicks": count})
}
