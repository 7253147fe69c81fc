package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePreviewOpenGraph(t *testing.T) {
	page := `<html><head>
		<title>Fallback Title</title>
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG Description">
		<meta property="og:image" content="https://example.com/cover.png">
		<meta name="description" content="Meta Description">
	</head><body></body></html>`

	preview := ParsePreview(strings.NewReader(page), "https://example.com")

	assert.Equal(t, "https://example.com", preview.URL)
	assert.Equal(t, "OG Title", preview.Title)
	assert.Equal(t, "OG Description", preview.Description)
	assert.Equal(t, "https://example.com/cover.png", preview.Image)
}

func TestParsePreviewFallbacks(t *testing.T) {
	page := `<html><head>
		<title>  Plain Title  </title>
		<meta name="description" content="Plain Description">
	</head><body></body></html>`

	preview := ParsePreview(strings.NewReader(page), "https://example.com")

	assert.Equal(t, "Plain Title", preview.Title)
	assert.Equal(t, "Plain Description", preview.Description)
	assert.Empty(t, preview.Image)
}

func TestParsePreviewTruncation(t *testing.T) {
	longTitle := strings.Repeat("t", 300)
	longDesc := strings.Repeat("d", 600)
	page := `<html><head>
		<meta property="og:title" content="` + longTitle + `">
		<meta property="og:description" content="` + longDesc + `">
	</head></html>`

	preview := ParsePreview(strings.NewReader(page), "https://example.com")

	assert.Len(t, preview.Title, previewTitleLimit)
	assert.Len(t, preview.Description, previewDescLimit)
}

func TestParsePreviewEmptyDocument(t *testing.T) {
	preview := ParsePreview(strings.NewReader(""), "https://example.com")
	assert.Equal(t, "https://example.com", preview.URL)
	assert.Empty(t, preview.Title)
	assert.Empty(t, preview.Description)
	assert.Empty(t, preview.Image)
}

func TestFetchPreview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta property="og:title" content="Served"></head></html>`))
	}))
	defer server.Close()

	preview := FetchPreview(context.Background(), server.URL)
	assert.Equal(t, "Served", preview.Title)
}

func TestFetchPreviewDegradesOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	preview := FetchPreview(context.Background(), server.URL)
	assert.Equal(t, server.URL, preview.URL)
	assert.Empty(t, preview.Title)

	// Unreachable host: still no error surface, just an empty preview.
	preview = FetchPreview(context.Background(), "http://127.0.0.1:1")
	assert.Empty(t, preview.Title)
}
