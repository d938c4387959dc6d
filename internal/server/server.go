package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/collector"
	"github.com/pavansydney/moneysavyy/internal/model"
	"github.com/pavansydney/moneysavyy/internal/news"
	"github.com/pavansydney/moneysavyy/internal/recorder"
	"github.com/pavansydney/moneysavyy/internal/registry"
	"github.com/pavansydney/moneysavyy/internal/strategy"
)

// NewsProvider fetches headlines for a symbol. The scraper never fails; it
// degrades to a neutral placeholder item.
type NewsProvider interface {
	Fetch(ctx context.Context, symbol, companyName string) []model.NewsItem
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	registry  *registry.Registry
	collector *collector.Collector
	news      NewsProvider
	recorder  recorder.Recorder
	log       *zap.SugaredLogger
}

// NewHandler creates a new Handler with the given dependencies. news may be
// nil when headline scraping is disabled.
func NewHandler(reg *registry.Registry, col *collector.Collector, np NewsProvider, rec recorder.Recorder, log *zap.SugaredLogger) *Handler {
	return &Handler{
		registry:  reg,
		collector: col,
		news:      np,
		recorder:  rec,
		log:       log,
	}
}

// NewRouter builds the gin engine with all routes and middleware registered.
func NewRouter(h *Handler, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	api := r.Group("/api")
	api.GET("/analyze/:query", h.Analyze)
	api.GET("/search/:query", h.Search)
	api.GET("/popular-stocks", h.PopularStocks)
	api.GET("/news-sentiment/:symbol", h.NewsSentiment)
	api.GET("/fundamentals/:symbol", h.Fundamentals)
	api.GET("/history/:symbol", h.History)

	r.GET("/health", h.HealthCheck)
	return r
}

// Analyze handles GET /api/analyze/:query
// Resolves the query to a symbol, runs the acquisition chain and all
// indicators, and returns the full analysis payload. Failures surface as an
// error field in a 200 response so the dashboard can render them inline.
func (h *Handler) Analyze(c *gin.Context) {
	query := c.Param("query")
	symbol, matchedName := h.registry.Resolve(query)

	data, ind, pred, err := h.collector.Collect(c.Request.Context(), symbol)
	if err != nil {
		h.log.Errorw("analysis failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusOK, gin.H{"error": "Unable to analyze this stock right now. Please try again later."})
		return
	}

	companyName := data.Quote.CompanyName
	if companyName == "" {
		companyName = matchedName
	}
	demoMode := data.IsDemo()

	rec := strategy.Recommend(data.Quote.Price, ind, pred)

	items := h.headlines(c.Request.Context(), symbol, companyName, demoMode)

	fund := h.mergeFundamentals(symbol, data.Fundamentals)

	h.record(symbol, data, ind, rec, demoMode)

	resp := gin.H{
		"symbol":       symbol,
		"company_name": companyName,
		"name":         companyName,
		"current_info": gin.H{
			"price":          data.Quote.Price,
			"open":           data.Quote.Open,
			"high":           data.Quote.High,
			"low":            data.Quote.Low,
			"volume":         data.Quote.Volume,
			"change":         data.Quote.Change,
			"change_percent": data.Quote.ChangePercent,
		},
		"technical": gin.H{
			"rsi":             ind.RSI,
			"rsi_signal":      ind.RSISignal(),
			"macd":            ind.MACD,
			"macd_signal":     ind.MACDSignalLabel(),
			"sma_20":          ind.SMA20,
			"sma_50":          ind.SMA50,
			"bollinger_upper": ind.BollingerUpper,
			"bollinger_lower": ind.BollingerLower,
			"volatility":      ind.Volatility,
		},
		"prediction":     h.predictionPayload(pred, demoMode),
		"recommendation": recommendationPayload(rec),
		"news":           items,
		"news_sentiment": news.Summarize(items),
		"fundamentals":   fund,
		"source":         data.Source,
		"demo_mode":      demoMode,
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) predictionPayload(pred *model.Prediction, demoMode bool) gin.H {
	if demoMode {
		return gin.H{"error": "Live predictions unavailable in demo mode"}
	}
	if pred == nil {
		return gin.H{"error": "Prediction unavailable: insufficient history"}
	}
	return gin.H{
		"model_used":               pred.Model,
		"accuracy":                 pred.R2,
		"current_price":            pred.CurrentPrice,
		"predicted_30d_avg":        pred.PredictedAvg30d,
		"predicted_change":         pred.PredictedChange,
		"predicted_change_percent": pred.PredictedChangePct,
	}
}

func recommendationPayload(rec *model.Recommendation) gin.H {
	return gin.H{
		"recommendation": rec.Label,
		"score":          rec.Score,
		"confidence":     rec.Confidence,
		"signals":        rec.Signals,
		"color":          rec.Label.Color(),
	}
}

func (h *Handler) headlines(ctx context.Context, symbol, companyName string, demoMode bool) []model.NewsItem {
	if demoMode || h.news == nil {
		return []model.NewsItem{{
			Title:     "Live news unavailable in demo mode",
			Sentiment: model.SentimentNeutral,
		}}
	}
	return h.news.Fetch(ctx, symbol, companyName)
}

// mergeFundamentals overlays registry sector/industry onto whatever the data
// source reported.
func (h *Handler) mergeFundamentals(symbol string, f model.Fundamentals) model.Fundamentals {
	if e, ok := h.registry.Lookup(symbol); ok {
		if e.Sector != "" {
			f.Sector = e.Sector
		}
		if e.Industry != "" {
			f.Industry = e.Industry
		}
	}
	return f
}

func (h *Handler) record(symbol string, data *model.MarketData, ind *model.Indicators, rec *model.Recommendation, demoMode bool) {
	err := h.recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
		Timestamp:     time.Now(),
		Symbol:        symbol,
		Price:         data.Quote.Price,
		ChangePercent: data.Quote.ChangePercent,
		RSI:           ind.RSI,
		MACD:          ind.MACD,
		Score:         rec.Score,
		Label:         string(rec.Label),
		Source:        data.Source,
		DemoMode:      demoMode,
	})
	if err != nil {
		h.log.Warnw("record analysis", "symbol", symbol, "error", err)
	}
}

// Search handles GET /api/search/:query
// Returns up to 10 name suggestions for the autocomplete box.
func (h *Handler) Search(c *gin.Context) {
	query := c.Param("query")
	suggestions := h.registry.Suggest(query, 10)
	c.JSON(http.StatusOK, suggestions)
}

// PopularStocks handles GET /api/popular-stocks
func (h *Handler) PopularStocks(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Popular())
}

// NewsSentiment handles GET /api/news-sentiment/:symbol
func (h *Handler) NewsSentiment(c *gin.Context) {
	symbol, matchedName := h.registry.Resolve(c.Param("symbol"))

	items := h.headlines(c.Request.Context(), symbol, matchedName, h.news == nil)
	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"news":    items,
		"summary": news.Summarize(items),
	})
}

// Fundamentals handles GET /api/fundamentals/:symbol
func (h *Handler) Fundamentals(c *gin.Context) {
	symbol, _ := h.registry.Resolve(c.Param("symbol"))

	data, _, _, err := h.collector.Collect(c.Request.Context(), symbol)
	if err != nil {
		h.log.Errorw("fundamentals fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusOK, gin.H{"error": "Fundamentals unavailable for this stock."})
		return
	}

	fund := h.mergeFundamentals(symbol, data.Fundamentals)
	c.JSON(http.StatusOK, gin.H{
		"symbol":       symbol,
		"company_name": data.Quote.CompanyName,
		"fundamentals": fund,
		"demo_mode":    data.IsDemo(),
		"source":       data.Source,
	})
}

// History handles GET /api/history/:symbol
// Returns recent recorded analysis snapshots for the symbol.
func (h *Handler) History(c *gin.Context) {
	symbol, _ := h.registry.Resolve(c.Param("symbol"))

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	snaps, err := h.recorder.RecentSnapshots(symbol, limit)
	if err != nil {
		h.log.Errorw("history fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "history": snaps, "count": len(snaps)})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "moneysavyy",
	})
}
