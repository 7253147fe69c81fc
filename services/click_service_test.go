package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		userAgent  string
		deviceType string
		browser    string
		os         string
	}{
		{
			name:       "empty string",
			userAgent:  "",
			deviceType: "desktop",
			browser:    "unknown",
			os:         "unknown",
		},
		{
			// iPad carries "Mac OS X" in its agent; iOS must win over macOS
			// and tablet over mobile.
			name:       "iPad Safari",
			userAgent:  "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			deviceType: "tablet",
			browser:    "Safari",
			os:         "iOS",
		},
		{
			// Edge ships both the Chrome and Safari tokens.
			name:       "Edge on Windows",
			userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			deviceType: "desktop",
			browser:    "Edge",
			os:         "Windows",
		},
		{
			name:       "Chrome on Android phone",
			userAgent:  "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			deviceType: "mobile",
			browser:    "Chrome",
			os:         "Android",
		},
		{
			name:       "iPhone Safari",
			userAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			deviceType: "mobile",
			browser:    "Safari",
			os:         "iOS",
		},
		{
			name:       "Firefox on Linux",
			userAgent:  "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			deviceType: "desktop",
			browser:    "Firefox",
			os:         "Linux",
		},
		{
			// Modern Opera carries the Chrome token and is reported as Chrome.
			name:       "Opera on macOS",
			userAgent:  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 OPR/106.0.0.0",
			deviceType: "desktop",
			browser:    "Chrome",
			os:         "macOS",
		},
		{
			// Presto-era Opera has no Chrome or Safari token.
			name:       "legacy Opera on Windows",
			userAgent:  "Opera/9.80 (Windows NT 6.1; WOW64) Presto/2.12.388 Version/12.18",
			deviceType: "desktop",
			browser:    "Opera",
			os:         "Windows",
		},
		{
			name:       "Safari on macOS",
			userAgent:  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			deviceType: "desktop",
			browser:    "Safari",
			os:         "macOS",
		},
		{
			name:       "Android tablet",
			userAgent:  "Mozilla/5.0 (Linux; Android 13; Tablet; SM-X200) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			deviceType: "tablet",
			browser:    "Chrome",
			os:         "Android",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseUserAgent(tt.userAgent)
			assert.Equal(t, tt.deviceType, info.DeviceType, "device type")
			assert.Equal(t, tt.browser, info.Browser, "browser")
			assert.Equal(t, tt.os, info.OS, "os")
		})
	}
}
