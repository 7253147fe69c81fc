package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/tbassignana/EclipseURL/logger"
)

const (
	previewTimeout      = 5 * time.Second
	previewMaxBodyBytes = 1 << 20 // meta tags live near the top; cap the body read
	previewTitleLimit   = 200
	previewDescLimit    = 500
)

// Preview is the Open Graph style metadata attached to a link at creation.
type Preview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// FetchPreview fetches and parses metadata for a destination URL. It is an
// optional enrichment: any failure, timeout included, returns whatever was
// gathered so far and never an error.
func FetchPreview(ctx context.Context, pageURL string) Preview {
	preview := Preview{URL: pageURL}

	ctx, cancel := context.WithTimeout(ctx, previewTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return preview
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Log.Debug().Err(err).Str("url", pageURL).Msg("preview fetch failed")
		return preview
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return preview
	}

	return ParsePreview(io.LimitReader(resp.Body, previewMaxBodyBytes), pageURL)
}

// ParsePreview extracts preview metadata from an HTML document. Open Graph
// tags win; <title> and <meta name="description"> fill the gaps.
func ParsePreview(r io.Reader, pageURL string) Preview {
	preview := Preview{URL: pageURL}

	doc, err := html.Parse(r)
	if err != nil {
		return preview
	}

	var docTitle, metaDesc string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := attr(n, "property")
				content := attr(n, "content")
				switch property {
				case "og:title":
					preview.Title = truncate(content, previewTitleLimit)
				case "og:description":
					preview.Description = truncate(content, previewDescLimit)
				case "og:image":
					preview.Image = content
				}
				if attr(n, "name") == "description" {
					metaDesc = content
				}
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					docTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if preview.Title == "" {
		preview.Title = truncate(docTitle, previewTitleLimit)
	}
	if preview.Description == "" {
		preview.Description = truncate(metaDesc, previewDescLimit)
	}

	return preview
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
