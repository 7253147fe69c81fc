package models

import (
	"time"
)

// ClickStat is one recorded redirect. Rows are append-only: nothing in the
// service mutates or deletes them, and they outlive a soft-deleted Link.
type ClickStat struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	LinkID      uint      `json:"link_id" gorm:"not null;index"`
	ClickedAt   time.Time `json:"clicked_at"`
	ReferrerURL string    `json:"referrer_url"`
	UserAgent   string    `json:"user_agent" gorm:"type:text"`
	IPAddress   string    `json:"ip_address" gorm:"size:45"`
	Country     string    `json:"country" gorm:"size:100"`
	City        string    `json:"city" gorm:"size:100"`
	DeviceType  string    `json:"device_type" gorm:"size:20"`
	Browser     string    `json:"browser" gorm:"size:50"`
	OS          string    `json:"os" gorm:"size:50"`
}
