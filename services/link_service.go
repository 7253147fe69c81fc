package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"net/url"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/tbassignana/EclipseURL/database"
	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/models"
)

// Digits first, then lowercase, then uppercase: 62 symbols total.
const base62Charset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	DefaultCodeLength = 7
	maxCodeAttempts   = 10

	minExpirationDays = 1
	maxExpirationDays = 365
)

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{4,20}$`)

// GenerateShortCode returns a random base62 code of the given length.
// crypto/rand keeps codes unpredictable; guessable codes would let anyone
// enumerate the link space.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	code := make([]byte, length)
	charsetLength := big.NewInt(int64(len(base62Charset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		code[i] = base62Charset[n.Int64()]
	}
	return string(code), nil
}

// IsValidAlias checks the custom alias format only; availability is a
// separate question answered against the store.
func IsValidAlias(alias string) bool {
	return aliasPattern.MatchString(alias)
}

func isValidOriginalURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CreateLinkInput carries the caller-supplied fields for a new short link.
type CreateLinkInput struct {
	OriginalURL    string
	CustomAlias    string
	ExpirationDays *int
}

// CreateShortLink validates the request, resolves a short code and inserts
// the link. The pre-check on a custom alias is advisory only: the unique
// constraint on short_code is what actually closes the check-then-insert
// race, and an insert conflict is translated back into ErrAliasTaken or,
// on the generated path, into one more attempt of the retry loop.
func CreateShortLink(input CreateLinkInput, userID uint, codeLength int) (*models.Link, error) {
	if !isValidOriginalURL(input.OriginalURL) {
		return nil, ErrInvalidURL
	}

	var expiresAt *time.Time
	if input.ExpirationDays != nil {
		days := *input.ExpirationDays
		if days < minExpirationDays || days > maxExpirationDays {
			return nil, ErrInvalidExpiration
		}
		t := time.Now().UTC().AddDate(0, 0, days)
		expiresAt = &t
	}

	isCustom := input.CustomAlias != ""
	if isCustom {
		if !IsValidAlias(input.CustomAlias) {
			return nil, ErrInvalidAlias
		}
		taken, err := isCodeTaken(input.CustomAlias)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrAliasTaken
		}
	}

	preview := FetchPreview(context.Background(), input.OriginalURL)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		shortCode := input.CustomAlias
		if !isCustom {
			var err error
			shortCode, err = GenerateShortCode(codeLength)
			if err != nil {
				return nil, err
			}
			taken, err := isCodeTaken(shortCode)
			if err != nil {
				return nil, err
			}
			if taken {
				continue
			}
		}

		link := models.Link{
			UserID:             userID,
			OriginalURL:        input.OriginalURL,
			ShortCode:          shortCode,
			CustomAlias:        isCustom,
			ExpiresAt:          expiresAt,
			IsActive:           true,
			PreviewTitle:       preview.Title,
			PreviewDescription: preview.Description,
			PreviewImage:       preview.Image,
		}

		err := database.DB.Create(&link).Error
		if err == nil {
			return &link, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if isCustom {
				return nil, ErrAliasTaken
			}
			// Lost the race for this code; burn the attempt and draw again.
			logger.Log.Debug().Str("short_code", shortCode).Msg("short code collision on insert")
			continue
		}
		return nil, err
	}

	if isCustom {
		return nil, ErrAliasTaken
	}
	return nil, ErrCodeExhausted
}

func isCodeTaken(shortCode string) (bool, error) {
	var link models.Link
	err := database.DB.Select("id").Where("short_code = ?", shortCode).First(&link).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// GetLinkByShortCode looks a link up by code, soft-deleted or not. Lifecycle
// checks (active, expiry) are the caller's job.
func GetLinkByShortCode(shortCode string) (*models.Link, error) {
	var link models.Link
	err := database.DB.Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ValidateRedirect runs the redirect state machine on an already-loaded link:
// active first, then expiry. The first failing check wins.
func ValidateRedirect(link *models.Link, now time.Time) error {
	if !link.IsActive {
		return ErrLinkInactive
	}
	if link.IsExpired(now) {
		return ErrLinkExpired
	}
	return nil
}

// GetUserLinks returns the caller's active links, newest first.
func GetUserLinks(userID uint, page, pageSize int) ([]models.Link, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var total int64
	if err := database.DB.Model(&models.Link{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []models.Link
	err := database.DB.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&links).Error
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// GetOwnedLink loads a link and enforces ownership; admins see everything.
// Soft-deleted links read as missing on this path.
func GetOwnedLink(shortCode string, userID uint, isAdmin bool) (*models.Link, error) {
	link, err := GetLinkByShortCode(shortCode)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		return nil, ErrNotFound
	}
	if !isAdmin && link.UserID != userID {
		return nil, ErrForbidden
	}
	return link, nil
}

// SoftDeleteLink flips is_active to false. The row and its short code stay
// behind so the code is never handed out again.
func SoftDeleteLink(shortCode string, userID uint, isAdmin bool) error {
	link, err := GetOwnedLink(shortCode, userID, isAdmin)
	if err != nil {
		return err
	}

	return database.DB.Model(link).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}).Error
}
