// Package news fetches current mpox headlines. The primary source is the
// NewsAPI JSON endpoint; when no API key is configured or the call fails,
// the WHO newsroom listing is scraped instead, respecting robots.txt and
// a per-host request budget.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/worker"
)

const (
	whoNewsroomURL = "https://www.who.int/news"
	maxScrapeBytes = 2 << 20
)

// Fetcher retrieves headlines for the configured topic.
type Fetcher struct {
	cfg        model.NewsConfig
	httpClient *http.Client
	robots     *robotsChecker
	hosts      *worker.HostLimiter
	userAgent  string

	newsroomURL string
}

// NewFetcher creates a news fetcher.
func NewFetcher(cfg model.NewsConfig, httpCfg model.HTTPConfig) *Fetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	timeout := 15 * time.Second
	return &Fetcher{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:      newRobotsChecker(httpCfg.UserAgent, timeout),
		hosts:       worker.NewHostLimiter(1, 2),
		userAgent:   httpCfg.UserAgent,
		newsroomURL: whoNewsroomURL,
	}
}

// Headlines returns up to PageSize current headlines. NewsAPI failures
// fall back to the WHO newsroom scrape; only when both fail is an error
// returned.
func (f *Fetcher) Headlines(ctx context.Context) ([]model.NewsItem, error) {
	if f.cfg.APIKey != "" {
		items, err := f.fromAPI(ctx)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		log.Warn().Err(err).Msg("newsapi unavailable, falling back to WHO newsroom")
	}
	return f.fromNewsroom(ctx)
}

type apiArticle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Articles []apiArticle `json:"articles"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f *Fetcher) fromAPI(ctx context.Context) ([]model.NewsItem, error) {
	endpoint := fmt.Sprintf("%s/everything?q=%s&pageSize=%d&sortBy=publishedAt&language=en",
		strings.TrimSuffix(f.cfg.BaseURL, "/"), url.QueryEscape(f.cfg.Topic), f.cfg.PageSize)

	if err := f.hosts.Wait(ctx, endpoint); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("X-Api-Key", f.cfg.APIKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("newsapi: %s (%s)", apiErr.Message, apiErr.Code)
		}
		return nil, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	items := make([]model.NewsItem, 0, len(parsed.Articles))
	for _, article := range parsed.Articles {
		if article.Title == "" || article.URL == "" {
			continue
		}
		items = append(items, model.NewsItem{Title: article.Title, URL: article.URL})
		if len(items) == f.cfg.PageSize {
			break
		}
	}
	return items, nil
}

// fromNewsroom scrapes headline links from the WHO newsroom listing.
func (f *Fetcher) fromNewsroom(ctx context.Context) ([]model.NewsItem, error) {
	allowed, crawlDelay, err := f.robots.canFetch(ctx, f.newsroomURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("newsroom scrape disallowed by robots.txt")
	}
	if crawlDelay > 0 {
		timer := time.NewTimer(crawlDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := f.hosts.Wait(ctx, f.newsroomURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.newsroomURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch newsroom: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("newsroom: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeBytes))
	if err != nil {
		return nil, fmt.Errorf("read newsroom: %w", err)
	}

	items := parseNewsroom(string(body), resp.Request.URL, f.cfg.PageSize)
	if len(items) == 0 {
		return nil, fmt.Errorf("no headlines found on newsroom page")
	}
	return items, nil
}

// parseNewsroom walks the document for item links and pairs each with its
// anchor text.
func parseNewsroom(htmlContent string, base *url.URL, limit int) []model.NewsItem {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var items []model.NewsItem

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(items) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			if item, ok := newsItemFromAnchor(n, base); ok && !seen[item.URL] {
				seen[item.URL] = true
				items = append(items, item)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return items
}

func newsItemFromAnchor(n *html.Node, base *url.URL) (model.NewsItem, bool) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
		}
	}
	if href == "" || !strings.Contains(href, "/news/item/") {
		return model.NewsItem{}, false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return model.NewsItem{}, false
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return model.NewsItem{}, false
	}

	title := strings.Join(strings.Fields(anchorText(n)), " ")
	if title == "" {
		return model.NewsItem{}, false
	}
	return model.NewsItem{Title: title, URL: resolved.String()}, true
}

// anchorText collects the text content of an anchor's subtree.
func anchorText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
