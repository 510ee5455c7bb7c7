package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// WebFetcher downloads framework reference pages and reduces them to plain
// text for use as prompt context.
type WebFetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewWebFetcher creates a fetcher with a bounded transport timeout.
func NewWebFetcher(timeout time.Duration, logger *zap.Logger) *WebFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebFetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "scribe/1.0 (competency mapping)",
		logger:     logger,
	}
}

// FetchAll retrieves every URL concurrently and returns url -> extracted
// text. A failed URL is logged and omitted; the remaining pages still load.
func (w *WebFetcher) FetchAll(ctx context.Context, urls []string) map[string]string {
	out := make(map[string]string, len(urls))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, url := range urls {
		g.Go(func() error {
			text, err := w.fetchText(ctx, url)
			if err != nil {
				w.logger.Warn("Skipping web source", zap.String("url", url), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[url] = text
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	w.logger.Info("Fetched web content", zap.Int("sources", len(out)))
	return out
}

func (w *WebFetcher) fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1MB limit
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	return extractText(doc), nil
}

// extractText flattens an HTML tree to whitespace-joined text, skipping
// script and style subtrees.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		if node.Type == html.TextNode {
			if fields := strings.Fields(node.Data); len(fields) > 0 {
				sb.WriteString(strings.Join(fields, " "))
				sb.WriteString(" ")
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.TrimSpace(sb.String())
}
