package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPreviewURLRequiresURLParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/links/preview", PreviewURL)

	req := httptest.NewRequest(http.MethodGet, "/api/links/preview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "url query parameter is required")
}

func TestPreviewURLFetchesMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:title" content="Eclipse"></head></html>`))
	}))
	defer page.Close()

	router := gin.New()
	router.GET("/api/links/preview", PreviewURL)

	req := httptest.NewRequest(http.MethodGet, "/api/links/preview?url="+page.URL, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Eclipse"`)
	assert.Contains(t, w.Body.String(), page.URL)
}
