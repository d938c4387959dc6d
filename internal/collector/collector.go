package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pavansydney/moneysavyy/internal/calculator"
	"github.com/pavansydney/moneysavyy/internal/model"
	"github.com/pavansydney/moneysavyy/internal/quote"
)

// Collector orchestrates data acquisition and indicator computation. Failed
// indicator calculations degrade to neutral defaults instead of failing the
// whole analysis.
type Collector struct {
	Chain *quote.Chain
	log   *zap.SugaredLogger
}

// New creates a Collector over the acquisition chain.
func New(chain *quote.Chain, log *zap.SugaredLogger) *Collector {
	return &Collector{Chain: chain, log: log}
}

// Collect resolves market data for the symbol and computes all indicators and
// the regression forecast. The prediction is nil when the series is too short.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.MarketData, *model.Indicators, *model.Prediction, error) {
	data, err := c.Chain.Get(ctx, symbol)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("acquire market data: %w", err)
	}

	closes := data.Series.Closes()
	price := data.Quote.Price
	ind := &model.Indicators{}

	// RSI(14)
	if rsi, err := calculator.RSI(closes, 14); err != nil {
		c.log.Warnf("RSI calculation failed for %s: %v, defaulting to 50", symbol, err)
		ind.RSI = 50
	} else {
		ind.RSI = rsi
	}

	// MACD(12,26,9)
	if macd, err := calculator.MACD(closes, 12, 26, 9); err != nil {
		c.log.Warnf("MACD calculation failed for %s: %v, defaulting to 0", symbol, err)
	} else {
		ind.MACD = macd.Line
		ind.MACDSignal = macd.Signal
		ind.MACDHist = macd.Histogram
	}

	// SMA20 / SMA50
	if ma, err := calculator.SMA(closes, 20); err != nil {
		c.log.Warnf("SMA20 calculation failed for %s: %v, using current price", symbol, err)
		ind.SMA20 = price
	} else {
		ind.SMA20 = ma
	}
	if ma, err := calculator.SMA(closes, 50); err != nil {
		c.log.Warnf("SMA50 calculation failed for %s: %v, using current price", symbol, err)
		ind.SMA50 = price
	} else {
		ind.SMA50 = ma
	}

	// Bollinger(20, 2)
	if bb, err := calculator.Bollinger(closes, 20, 2); err != nil {
		c.log.Warnf("Bollinger calculation failed for %s: %v", symbol, err)
		ind.BollingerUpper = price
		ind.BollingerMiddle = price
		ind.BollingerLower = price
	} else {
		ind.BollingerUpper = bb.Upper
		ind.BollingerMiddle = bb.Middle
		ind.BollingerLower = bb.Lower
	}

	// 52-week range and position
	if h, l, err := calculator.Week52Range(data.Series.Bars); err != nil {
		c.log.Warnf("52-week range calculation failed for %s: %v", symbol, err)
		ind.High52w = price
		ind.Low52w = price
	} else {
		ind.High52w = h
		ind.Low52w = l
	}
	if pos, err := calculator.RangePosition(price, ind.High52w, ind.Low52w); err != nil {
		c.log.Warnf("52-week position calculation failed for %s: %v", symbol, err)
		ind.Position52w = 0.5
	} else {
		ind.Position52w = pos
	}

	// Volatility
	if v, err := calculator.Volatility(closes); err != nil {
		c.log.Warnf("volatility calculation failed for %s: %v", symbol, err)
	} else {
		ind.Volatility = v
	}

	// Fundamentals 52w range falls back to the computed one
	if data.Fundamentals.Week52High == 0 {
		data.Fundamentals.Week52High = ind.High52w
	}
	if data.Fundamentals.Week52Low == 0 {
		data.Fundamentals.Week52Low = ind.Low52w
	}

	pred := c.predict(symbol, price, closes)
	return data, ind, pred, nil
}

// predict runs the regression extrapolation; a short series yields nil.
func (c *Collector) predict(symbol string, price float64, closes []float64) *model.Prediction {
	modelName, r2, points, err := calculator.Extrapolate(closes)
	if err != nil {
		c.log.Debugf("prediction unavailable for %s: %v", symbol, err)
		return nil
	}

	var sum float64
	for _, p := range points {
		sum += p
	}
	avg := sum / float64(len(points))
	change := avg - price

	pred := &model.Prediction{
		Model:           modelName,
		R2:              r2,
		CurrentPrice:    price,
		PredictedAvg30d: avg,
		PredictedChange: change,
		Points:          points,
	}
	if price > 0 {
		pred.PredictedChangePct = change / price * 100
	}
	return pred
}
