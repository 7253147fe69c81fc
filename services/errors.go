package services

import "errors"

// Sentinel errors for the link lifecycle. Handlers translate these into HTTP
// status codes; anything else surfaces as a 500.
var (
	ErrNotFound          = errors.New("link not found")
	ErrLinkInactive      = errors.New("link has been deactivated")
	ErrLinkExpired       = errors.New("link has expired")
	ErrInvalidURL        = errors.New("original URL must be a valid http or https URL")
	ErrInvalidAlias      = errors.New("custom alias must be 4-20 characters of letters, digits, dash or underscore")
	ErrAliasTaken        = errors.New("custom alias is already taken")
	ErrInvalidExpiration = errors.New("expiration must be between 1 and 365 days")
	ErrCodeExhausted     = errors.New("could not generate a unique short code")
	ErrForbidden         = errors.New("not authorized to access this link")
)
