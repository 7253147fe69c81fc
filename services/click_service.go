package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbassignana/EclipseURL/cache"
	"github.com/tbassignana/EclipseURL/database"
	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/models"
)

// ClientInfo is the device classification derived from a user-agent string.
type ClientInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

type uaRule struct {
	match func(string) bool
	label string
}

func contains(tokens ...string) func(string) bool {
	return func(ua string) bool {
		for _, t := range tokens {
			if strings.Contains(ua, t) {
				return true
			}
		}
		return false
	}
}

// Rule order is load-bearing: several tokens overlap across products, so the
// more specific entry must come first.
var (
	// iPad before generic mobile tokens, otherwise tablets classify as mobile.
	deviceRules = []uaRule{
		{contains("tablet", "ipad"), "tablet"},
		{contains("mobile", "android", "iphone"), "mobile"},
	}

	// Edge ships the Chrome token, and Chrome ships the Safari token. Opera
	// sits last: modern Opera agents carry "Chrome" and classify as Chrome,
	// only the legacy Presto agents reach the Opera rule.
	browserRules = []uaRule{
		{contains("edg"), "Edge"},
		{contains("chrome"), "Chrome"},
		{contains("firefox"), "Firefox"},
		{contains("safari"), "Safari"},
		{contains("opera", "opr"), "Opera"},
	}

	// iOS agents carry "Mac OS X", so iOS must be tested before macOS.
	osRules = []uaRule{
		{contains("android"), "Android"},
		{contains("iphone", "ipad", "ios"), "iOS"},
		{contains("windows"), "Windows"},
		{contains("mac os", "macintosh"), "macOS"},
		{contains("linux"), "Linux"},
	}
)

func firstMatch(ua string, rules []uaRule, fallback string) string {
	for _, r := range rules {
		if r.match(ua) {
			return r.label
		}
	}
	return fallback
}

// ParseUserAgent classifies a raw user-agent string by ordered substring
// matching. An empty string classifies as a desktop with unknown browser
// and OS.
func ParseUserAgent(userAgent string) ClientInfo {
	info := ClientInfo{DeviceType: "desktop", Browser: "unknown", OS: "unknown"}
	if userAgent == "" {
		return info
	}

	ua := strings.ToLower(userAgent)
	info.DeviceType = firstMatch(ua, deviceRules, "desktop")
	info.Browser = firstMatch(ua, browserRules, "unknown")
	info.OS = firstMatch(ua, osRules, "unknown")
	return info
}

// RecordClick persists one ClickStat and bumps the durable counter, then
// mirrors the increment into Redis. The cache write is best-effort; the
// durable counter is authoritative.
func RecordClick(link *models.Link, referrer, userAgent, ipAddress string) error {
	info := ParseUserAgent(userAgent)
	now := time.Now().UTC()

	clickStat := models.ClickStat{
		LinkID:      link.ID,
		ClickedAt:   now,
		ReferrerURL: referrer,
		UserAgent:   userAgent,
		IPAddress:   ipAddress,
		DeviceType:  info.DeviceType,
		Browser:     info.Browser,
		OS:          info.OS,
	}
	if err := database.DB.Create(&clickStat).Error; err != nil {
		return err
	}

	err := database.DB.Model(link).UpdateColumns(map[string]interface{}{
		"click_count": gorm.Expr("click_count + ?", 1),
		"updated_at":  now,
	}).Error
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.IncrementClicks(ctx, link.ShortCode); err != nil {
		logger.Log.Debug().Err(err).Str("short_code", link.ShortCode).Msg("cache increment skipped")
	}

	return nil
}

// GetClickCount serves the real-time counter: Redis first, durable count
// when the cache misses or is down.
func GetClickCount(ctx context.Context, shortCode string) (int64, error) {
	if count, err := cache.GetClicks(ctx, shortCode); err == nil {
		return count, nil
	}

	link, err := GetLinkByShortCode(shortCode)
	if err != nil {
		return 0, err
	}
	return link.ClickCount, nil
}
