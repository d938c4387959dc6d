package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/model"
)

const maxHeadlines = 5

// Scraper fetches recent headlines for a company from the Google News search
// page and scores each with the lexicon analyzer.
type Scraper struct {
	BaseURL string
	Client  *http.Client
	log     *zap.SugaredLogger
}

// NewScraper creates a scraper. baseURL defaults to google.com.
func NewScraper(baseURL string, log *zap.SugaredLogger) *Scraper {
	if baseURL == "" {
		baseURL = "https://www.google.com"
	}
	return &Scraper{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// Fetch returns up to 5 scored headlines for the company. Both the company
// name (minus legal suffixes) and the bare symbol are tried as search terms.
// Failures degrade to a single neutral placeholder, never an error.
func (s *Scraper) Fetch(ctx context.Context, symbol, companyName string) []model.NewsItem {
	company := strings.ReplaceAll(companyName, " Limited", "")
	company = strings.ReplaceAll(company, " Ltd", "")
	terms := []string{company, strings.TrimSuffix(symbol, ".NS")}

	for _, term := range terms {
		if term == "" {
			continue
		}
		items, err := s.search(ctx, term)
		if err != nil {
			s.log.Warnf("news search for %q failed: %v", term, err)
			continue
		}
		if len(items) > 0 {
			return items
		}
	}

	return []model.NewsItem{{
		Title:     "No recent news found",
		Link:      "#",
		Published: "N/A",
		Summary:   "Please check financial news websites",
		Sentiment: model.SentimentNeutral,
	}}
}

func (s *Scraper) search(ctx context.Context, term string) ([]model.NewsItem, error) {
	q := url.QueryEscape(term + " news")
	u := fmt.Sprintf("%s/search?q=%s&tbm=nws", s.BaseURL, q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news parse: %w", err)
	}

	var items []model.NewsItem
	doc.Find("div.SoaBEf").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("div.MBeuO").Text())
		if title == "" {
			return true
		}

		link := "#"
		if href, ok := sel.Find("a").First().Attr("href"); ok {
			link = href
		}

		summary := title
		if len(summary) > 100 {
			summary = summary[:100] + "..."
		}

		polarity := Polarity(title)
		items = append(items, model.NewsItem{
			Title:     title,
			Link:      link,
			Published: "Recent",
			Summary:   summary,
			Sentiment: Classify(polarity),
			Polarity:  polarity,
		})
		return len(items) < maxHeadlines
	})

	return items, nil
}
