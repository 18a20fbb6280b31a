package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchUserAgent = "Mozilla/5.0 (compatible; JobTracker/1.0)"

// FetchedPosting is what a job board page yields for import.
type FetchedPosting struct {
	URL         string
	Title       string
	CompanyName string
	Location    string
	Description string
}

type PostingFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedPosting, error)
}

type postingFetcher struct {
	client *http.Client
}

// NewPostingFetcher uses client when given, otherwise a client with timeout.
func NewPostingFetcher(client *http.Client, timeout time.Duration) PostingFetcher {
	if client == nil {
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &postingFetcher{client: client}
}

var postingSelectors = []string{
	".job-description",
	"#job-description",
	"[data-automation='jobAdDetails']",
	".description",
	"article",
	"main",
}

func (f *postingFetcher) Fetch(ctx context.Context, rawURL string) (*FetchedPosting, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid posting url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posting: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch posting: HTTP status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse posting html: %w", err)
	}

	posting := &FetchedPosting{
		URL:         rawURL,
		Title:       firstNonEmpty(metaContent(doc, "og:title"), doc.Find("h1").First().Text(), doc.Find("title").First().Text()),
		CompanyName: metaContent(doc, "og:site_name"),
		Location:    strings.TrimSpace(doc.Find("[data-automation='job-detail-location'], .location").First().Text()),
	}

	doc.Find("script, style, noscript, nav, footer, header, form").Remove()

	var content *goquery.Selection
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	var lines []string
	content.Find("h1, h2, h3, h4, p, li").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpaces(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		if text := collapseSpaces(content.Text()); text != "" {
			lines = append(lines, text)
		}
	}
	posting.Description = strings.Join(lines, "\n")

	if posting.Title == "" && posting.Description == "" {
		return nil, fmt.Errorf("no posting content found at %s", rawURL)
	}
	return posting, nil
}

func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf("meta[property='%s']", property))
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = collapseSpaces(v); v != "" {
			return v
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
