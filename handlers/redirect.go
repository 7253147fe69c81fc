package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/services"
)

// Redirect resolves a short code and issues a 302. Temporary on purpose:
// a 301 would let browsers cache the hop and skip click tracking on repeat
// visits. Click recording is fire-and-forget so analytics never delays or
// breaks the redirect.
func Redirect(c *gin.Context) {
	shortCode := c.Param("code")

	link, err := services.GetLinkByShortCode(shortCode)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := services.ValidateRedirect(link, time.Now()); err != nil {
		respondError(c, err)
		return
	}

	referrer := c.Request.Referer()
	userAgent := c.Request.UserAgent()
	ipAddress := c.ClientIP()

	go func() {
		if err := services.RecordClick(link, referrer, userAgent, ipAddress); err != nil {
			logger.Log.Warn().Err(err).Str("short_code", shortCode).Msg("failed to record click")
		}
	}()

	c.Redirect(http.StatusFound, link.OriginalURL)
}

// Preview runs the same lookup and lifecycle checks as Redirect but returns
// the stored metadata instead of redirecting. No click is recorded and no
// counter moves.
func Preview(c *gin.Context) {
	link, err := services.GetLinkByShortCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := services.ValidateRedirect(link, time.Now()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original_url": link.OriginalURL,
		"title":        link.PreviewTitle,
		"description":  link.PreviewDescription,
		"image":        link.PreviewImage,
	})
}
