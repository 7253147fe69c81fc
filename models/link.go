package models

import (
	"time"
)

// Link is a shortened URL. ShortCode is immutable once assigned and stays
// reserved even after a soft delete so retired codes are never reused.
type Link struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	OriginalURL string     `json:"original_url" gorm:"not null"`
	ShortCode   string     `json:"short_code" gorm:"unique;not null"`
	CustomAlias bool       `json:"custom_alias" gorm:"default:false"`
	ClickCount  int64      `json:"click_count" gorm:"default:0"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	PreviewTitle       string `json:"preview_title,omitempty"`
	PreviewDescription string `json:"preview_description,omitempty"`
	PreviewImage       string `json:"preview_image,omitempty"`
}

func (l *Link) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}
