package services

import (
	"sort"
	"time"

	"github.com/tbassignana/EclipseURL/database"
	"github.com/tbassignana/EclipseURL/models"
)

const (
	topListSize = 10

	// directBucket collects clicks with no referrer, unknownBucket clicks
	// with no resolved country.
	directBucket  = "Direct"
	unknownBucket = "Unknown"
)

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int    `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int    `json:"count"`
}

type OSCount struct {
	OS    string `json:"os"`
	Count int    `json:"count"`
}

// LinkStats is the full analytics payload for one short link.
type LinkStats struct {
	ShortCode       string          `json:"short_code"`
	OriginalURL     string          `json:"original_url"`
	TotalClicks     int             `json:"total_clicks"`
	ClicksToday     int             `json:"clicks_today"`
	ClicksThisWeek  int             `json:"clicks_this_week"`
	TopReferrers    []ReferrerCount `json:"top_referrers"`
	ClicksByCountry []CountryCount  `json:"clicks_by_country"`
	ClicksByDevice  []DeviceCount   `json:"clicks_by_device"`
	ClicksOverTime  []DayCount      `json:"clicks_over_time"`
}

// orderedCounter tallies labels while remembering first-seen order, so that
// the later stable sort leaves equal counts in discovery order.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (oc *orderedCounter) add(label string) {
	if _, seen := oc.counts[label]; !seen {
		oc.order = append(oc.order, label)
	}
	oc.counts[label]++
}

// sorted returns labels by descending count, ties in discovery order,
// truncated to limit (0 = no limit).
func (oc *orderedCounter) sorted(limit int) []string {
	labels := make([]string, len(oc.order))
	copy(labels, oc.order)
	sort.SliceStable(labels, func(i, j int) bool {
		return oc.counts[labels[i]] > oc.counts[labels[j]]
	})
	if limit > 0 && len(labels) > limit {
		labels = labels[:limit]
	}
	return labels
}

// BuildLinkStats aggregates a link's click records into summary statistics.
// days selects the length of the daily time series (7 or 30). All day
// boundaries are UTC; "this week" runs from seven days before start-of-today
// and includes today.
func BuildLinkStats(link *models.Link, clicks []models.ClickStat, days int, now time.Time) *LinkStats {
	if days != 7 && days != 30 {
		days = 30
	}

	now = now.UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -7)

	stats := &LinkStats{
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		TotalClicks: len(clicks),
	}

	referrers := newOrderedCounter()
	countries := newOrderedCounter()
	devices := newOrderedCounter()
	daily := make(map[string]int)

	for _, c := range clicks {
		ts := c.ClickedAt.UTC()
		if !ts.Before(todayStart) {
			stats.ClicksToday++
		}
		if !ts.Before(weekStart) {
			stats.ClicksThisWeek++
		}

		referrer := c.ReferrerURL
		if referrer == "" {
			referrer = directBucket
		}
		referrers.add(referrer)

		country := c.Country
		if country == "" {
			country = unknownBucket
		}
		countries.add(country)

		device := c.DeviceType
		if device == "" {
			device = "unknown"
		}
		devices.add(device)

		daily[ts.Format("2006-01-02")]++
	}

	for _, label := range referrers.sorted(topListSize) {
		stats.TopReferrers = append(stats.TopReferrers, ReferrerCount{Referrer: label, Count: referrers.counts[label]})
	}
	for _, label := range countries.sorted(topListSize) {
		stats.ClicksByCountry = append(stats.ClicksByCountry, CountryCount{Country: label, Count: countries.counts[label]})
	}
	for _, label := range devices.sorted(0) {
		stats.ClicksByDevice = append(stats.ClicksByDevice, DeviceCount{Device: label, Count: devices.counts[label]})
	}

	// Fixed-window daily series, zero-filled: every day from (days-1) days
	// ago through today appears exactly once.
	for i := days - 1; i >= 0; i-- {
		day := todayStart.AddDate(0, 0, -i).Format("2006-01-02")
		stats.ClicksOverTime = append(stats.ClicksOverTime, DayCount{Date: day, Count: daily[day]})
	}

	return stats
}

// BuildBrowserStats tallies clicks per browser, most-clicked first, ties in
// discovery order. Records with no browser are skipped.
func BuildBrowserStats(clicks []models.ClickStat) []BrowserCount {
	browsers := newOrderedCounter()
	for _, c := range clicks {
		if c.Browser != "" {
			browsers.add(c.Browser)
		}
	}

	out := make([]BrowserCount, 0, len(browsers.order))
	for _, label := range browsers.sorted(0) {
		out = append(out, BrowserCount{Browser: label, Count: browsers.counts[label]})
	}
	return out
}

// BuildOSStats tallies clicks per operating system, most-clicked first.
func BuildOSStats(clicks []models.ClickStat) []OSCount {
	systems := newOrderedCounter()
	for _, c := range clicks {
		if c.OS != "" {
			systems.add(c.OS)
		}
	}

	out := make([]OSCount, 0, len(systems.order))
	for _, label := range systems.sorted(0) {
		out = append(out, OSCount{OS: label, Count: systems.counts[label]})
	}
	return out
}

func loadClicks(linkID uint) ([]models.ClickStat, error) {
	var clicks []models.ClickStat
	if err := database.DB.Where("link_id = ?", linkID).Order("clicked_at asc").Find(&clicks).Error; err != nil {
		return nil, err
	}
	return clicks, nil
}

// GetLinkStats loads every click record for the link and aggregates them.
// Full scan, no pagination; fine while per-link volumes stay modest.
func GetLinkStats(shortCode string, userID uint, isAdmin bool, days int) (*LinkStats, error) {
	link, err := GetOwnedLink(shortCode, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	clicks, err := loadClicks(link.ID)
	if err != nil {
		return nil, err
	}

	return BuildLinkStats(link, clicks, days, time.Now()), nil
}

// GetBrowserStats serves the per-link browser breakdown.
func GetBrowserStats(shortCode string, userID uint, isAdmin bool) ([]BrowserCount, error) {
	link, err := GetOwnedLink(shortCode, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	clicks, err := loadClicks(link.ID)
	if err != nil {
		return nil, err
	}
	return BuildBrowserStats(clicks), nil
}

// GetOSStats serves the per-link operating system breakdown.
func GetOSStats(shortCode string, userID uint, isAdmin bool) ([]OSCount, error) {
	link, err := GetOwnedLink(shortCode, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	clicks, err := loadClicks(link.ID)
	if err != nil {
		return nil, err
	}
	return BuildOSStats(clicks), nil
}

// TopLink is one row of the admin top-links report.
type TopLink struct {
	ID          uint      `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ClickCount  int64     `json:"click_count"`
	UserEmail   string    `json:"user_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetTopLinks returns the most-clicked active links with their owner's email.
func GetTopLinks(limit int) ([]TopLink, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var top []TopLink
	err := database.DB.Model(&models.Link{}).
		Select("links.id, links.short_code, links.original_url, links.click_count, links.created_at, users.email AS user_email").
		Joins("JOIN users ON users.id = links.user_id").
		Where("links.is_active = ?", true).
		Order("links.click_count desc").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}

// PlatformSummary is the admin dashboard rollup.
type PlatformSummary struct {
	TotalLinks     int64 `json:"total_links"`
	TotalClicks    int64 `json:"total_clicks"`
	TotalUsers     int64 `json:"total_users"`
	LinksToday     int64 `json:"links_today"`
	ClicksToday    int64 `json:"clicks_today"`
	LinksThisWeek  int64 `json:"links_this_week"`
	ClicksThisWeek int64 `json:"clicks_this_week"`
}

// GetPlatformSummary computes platform-wide counts against the same UTC
// today/week boundaries the per-link stats use.
func GetPlatformSummary() (*PlatformSummary, error) {
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -7)

	summary := &PlatformSummary{}
	db := database.DB

	if err := db.Model(&models.Link{}).Count(&summary.TotalLinks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ClickStat{}).Count(&summary.TotalClicks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Link{}).Where("created_at >= ?", todayStart).Count(&summary.LinksToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ClickStat{}).Where("clicked_at >= ?", todayStart).Count(&summary.ClicksToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Link{}).Where("created_at >= ?", weekStart).Count(&summary.LinksThisWeek).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ClickStat{}).Where("clicked_at >= ?", weekStart).Count(&summary.ClicksThisWeek).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
