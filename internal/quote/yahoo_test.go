package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func yahooChartJSON() string {
	return `{
		"chart": {
			"result": [{
				"meta": {
					"symbol": "TCS.NS",
					"longName": "Tata Consultancy Services Limited",
					"regularMarketPrice": 3850.75,
					"chartPreviousClose": 3800.00,
					"regularMarketDayHigh": 3870.00,
					"regularMarketDayLow": 3820.00,
					"regularMarketVolume": 1234567,
					"fiftyTwoWeekHigh": 4200.00,
					"fiftyTwoWeekLow": 3100.00
				},
				"timestamp": [1700000000, 1700086400, 1700172800],
				"indicators": {
					"quote": [{
						"open":   [3800.0, null, 3840.0],
						"high":   [3820.0, null, 3870.0],
						"low":    [3790.0, null, 3830.0],
						"close":  [3810.0, null, 3850.75],
						"volume": [1000000, null, 1234567]
					}]
				}
			}],
			"error": null
		}
	}`
}

func TestYahooFetch_ParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TCS.NS" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, yahooChartJSON())
	}))
	defer srv.Close()

	s := NewYahooSource(srv.URL, "", zap.NewNop().Sugar())
	data, err := s.Fetch(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Source != "yahoo" {
		t.Errorf("expected yahoo source tag, got %s", data.Source)
	}
	if data.Quote.Price != 3850.75 {
		t.Errorf("expected price 3850.75, got %f", data.Quote.Price)
	}
	if data.Quote.CompanyName != "Tata Consultancy Services Limited" {
		t.Errorf("unexpected company name %q", data.Quote.CompanyName)
	}
	// The null bar must be skipped
	if len(data.Series.Bars) != 2 {
		t.Errorf("expected 2 bars after null filtering, got %d", len(data.Series.Bars))
	}
	// Change derived from chartPreviousClose
	if data.Quote.Change != 3850.75-3800.00 {
		t.Errorf("unexpected change %f", data.Quote.Change)
	}
	if data.Fundamentals.Week52High != 4200.00 {
		t.Errorf("expected 52w high 4200.00, got %f", data.Fundamentals.Week52High)
	}
	if data.IsDemo() {
		t.Error("yahoo data must not report demo mode")
	}
}

func TestYahooFetch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	s := NewYahooSource(srv.URL, "", zap.NewNop().Sugar())
	if _, err := s.Fetch(context.Background(), "NOPE.NS"); err == nil {
		t.Error("expected error for chart API error payload")
	}
}

func TestYahooFetch_RetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, yahooChartJSON())
	}))
	defer srv.Close()

	s := NewYahooSource(srv.URL, "", zap.NewNop().Sugar())
	data, err := s.Fetch(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("expected the retry to succeed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if data.Quote.Price != 3850.75 {
		t.Errorf("unexpected price %f after retry", data.Quote.Price)
	}
}
