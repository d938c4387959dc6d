package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource is the primary acquisition tier: the Yahoo Finance chart API,
// which returns the live quote and a daily history in one call.
type YahooSource struct {
	BaseURL string
	Client  *http.Client
	log     *zap.SugaredLogger
}

// NewYahooSource creates a Yahoo fetcher with optional proxy support.
func NewYahooSource(baseURL, proxyURL string, log *zap.SugaredLogger) *YahooSource {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooSource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		log: log,
	}
}

func (s *YahooSource) Name() string { return model.SourceYahoo }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				LongName             string  `json:"longName"`
				ShortName            string  `json:"shortName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Fetch retrieves one year of daily bars plus the live quote metadata.
func (s *YahooSource) Fetch(ctx context.Context, symbol string) (*model.MarketData, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1y", s.BaseURL, url.PathEscape(symbol))

	var body []byte
	err := retryDo(ctx, s.log, 2, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")

		resp, err := s.Client.Do(req)
		if err != nil {
			return fmt.Errorf("yahoo fetch: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("yahoo read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote block for %s", symbol)
	}
	q := result.Indicators.Quote[0]

	series := model.HistoricalSeries{Symbol: symbol, Bars: make([]model.OHLCV, 0, len(result.Timestamp))}
	for i, ts := range result.Timestamp {
		o := toFloat(q.Open[i])
		h := toFloat(q.High[i])
		l := toFloat(q.Low[i])
		c := toFloat(q.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		series.Bars = append(series.Bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(q.Volume[i]),
		})
	}
	series.Sort()
	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("yahoo: only null bars for %s", symbol)
	}

	meta := result.Meta
	last := series.Bars[len(series.Bars)-1]

	price := meta.RegularMarketPrice
	if price == 0 {
		price = last.Close
	}
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}

	quote := model.Quote{
		Symbol:      symbol,
		CompanyName: name,
		Price:       price,
		Open:        last.Open,
		High:        meta.RegularMarketDayHigh,
		Low:         meta.RegularMarketDayLow,
		PrevClose:   meta.ChartPreviousClose,
		Volume:      meta.RegularMarketVolume,
		Timestamp:   last.Time,
	}
	if quote.High == 0 {
		quote.High = last.High
	}
	if quote.Low == 0 {
		quote.Low = last.Low
	}
	if quote.PrevClose > 0 {
		quote.Change = price - quote.PrevClose
		quote.ChangePercent = quote.Change / quote.PrevClose * 100
	}

	return &model.MarketData{
		Quote:  quote,
		Series: series,
		Fundamentals: model.Fundamentals{
			Week52High: meta.FiftyTwoWeekHigh,
			Week52Low:  meta.FiftyTwoWeekLow,
		},
		Source: model.SourceYahoo,
	}, nil
}
