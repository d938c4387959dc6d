package calculator

import "errors"

// MACDResult holds the three MACD(12,26,9) outputs.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// MACD computes the MACD line (EMA12-EMA26), its 9-period signal line, and the
// histogram over the given prices.
func MACD(prices []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, errors.New("fast period must be shorter than slow period")
	}
	if len(prices) < slow+signal {
		return nil, errors.New("not enough data for MACD calculation")
	}

	fastSeries, err := emaSeries(prices, fast)
	if err != nil {
		return nil, err
	}
	slowSeries, err := emaSeries(prices, slow)
	if err != nil {
		return nil, err
	}

	// Align: slowSeries starts slow-fast indexes later than fastSeries.
	offset := slow - fast
	macd := make([]float64, len(slowSeries))
	for i := range slowSeries {
		macd[i] = fastSeries[i+offset] - slowSeries[i]
	}

	signalSeries, err := emaSeries(macd, signal)
	if err != nil {
		return nil, err
	}

	line := macd[len(macd)-1]
	sig := signalSeries[len(signalSeries)-1]
	return &MACDResult{Line: line, Signal: sig, Histogram: line - sig}, nil
}
