package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/recrsn/localagent/internal/schema"
)

const (
	defaultSearchEndpoint   = "https://html.duckduckgo.com/html/"
	defaultSearchTimeout    = 15 * time.Second
	defaultSearchMaxResults = 5
)

// WebSearchConfig configures the web_search tool
type WebSearchConfig struct {
	Endpoint   string
	Timeout    time.Duration
	MaxResults int
	UserAgent  string
}

type webSearchArgs struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// SearchResult is a single hit from the search backend
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

func webTools(deps Dependencies) []Tool {
	return []Tool{NewWebSearchTool(deps.WebSearch)}
}

// NewWebSearchTool creates the web_search tool backed by the DuckDuckGo HTML
// endpoint (or any page using the same result markup).
func NewWebSearchTool(cfg WebSearchConfig) Tool {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultSearchEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSearchTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultSearchMaxResults
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "localagent/0.1"
	}
	client := &http.Client{Timeout: cfg.Timeout}

	return &Func{
		Def: Definition{
			Name:        "web_search",
			Description: "Search the web for information",
			Parameters: schema.Object(map[string]schema.Property{
				"query": {
					Type:        "string",
					Description: "Search query",
				},
				"max_results": {
					Type:        "integer",
					Description: "Maximum number of results to return",
					Default:     cfg.MaxResults,
				},
			}, "query"),
		},
		Preview: func(input map[string]any) Explanation {
			query, _ := input["query"].(string)
			return Explanation{
				Title:   fmt.Sprintf("WebSearch(%s)", query),
				Context: fmt.Sprintf("Will search %s for '%s'", cfg.Endpoint, query),
			}
		},
		Handler: func(ctx context.Context, input map[string]any) (string, error) {
			var args webSearchArgs
			if err := decodeArgs(input, &args); err != nil {
				return "", err
			}
			if strings.TrimSpace(args.Query) == "" {
				return "", fmt.Errorf("query is empty")
			}
			if args.MaxResults <= 0 {
				args.MaxResults = cfg.MaxResults
			}

			results, err := search(ctx, client, cfg, args.Query)
			if err != nil {
				return "", err
			}
			if len(results) > args.MaxResults {
				results = results[:args.MaxResults]
			}
			return formatResults(args.Query, results), nil
		},
	}
}

func search(ctx context.Context, client *http.Client, cfg WebSearchConfig, query string) ([]SearchResult, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return extractResults(doc), nil
}

// extractResults walks the document collecting result__a links and the
// result__snippet that follows each of them.
func extractResults(doc *html.Node) []SearchResult {
	var results []SearchResult

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				results = append(results, SearchResult{
					Title: strings.TrimSpace(textContent(n)),
					URL:   resolveResultURL(attr(n, "href")),
				})
				return
			case hasClass(n, "result__snippet") && len(results) > 0:
				results[len(results)-1].Snippet = strings.TrimSpace(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results
}

// resolveResultURL unwraps DuckDuckGo redirect links (/l/?uddg=<target>)
func resolveResultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func formatResults(query string, results []SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for '%s':\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
