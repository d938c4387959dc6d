package strategy

import (
	"github.com/pavansydney/moneysavyy/internal/model"
)

// predictionThreshold is the predicted-change magnitude (percent) that earns
// the ±2 contribution.
const predictionThreshold = 5.0

// Recommend accumulates fixed point deltas from the technical thresholds into
// a single score and buckets it into a five-level label. The mapping is a
// pure lookup table: the same inputs always yield the same recommendation.
func Recommend(price float64, ind *model.Indicators, pred *model.Prediction) *model.Recommendation {
	var score float64
	var signals []string

	// RSI extremes
	switch {
	case ind.RSI < 30:
		signals = append(signals, "RSI indicates oversold condition (Bullish)")
		score += 2
	case ind.RSI > 70:
		signals = append(signals, "RSI indicates overbought condition (Bearish)")
		score -= 2
	default:
		signals = append(signals, "RSI in neutral zone")
	}

	// MACD sign
	if ind.MACD > 0 {
		signals = append(signals, "MACD above zero (Bullish)")
		score++
	} else {
		signals = append(signals, "MACD below zero (Bearish)")
		score--
	}

	// Moving-average relations
	if price > ind.SMA20 {
		signals = append(signals, "Price above 20-day SMA (Bullish)")
		score++
	} else {
		signals = append(signals, "Price below 20-day SMA (Bearish)")
		score--
	}
	if ind.SMA20 > ind.SMA50 {
		signals = append(signals, "20-day SMA above 50-day SMA (Bullish)")
		score++
	} else {
		signals = append(signals, "20-day SMA below 50-day SMA (Bearish)")
		score--
	}

	// Prediction slope
	if pred != nil {
		if pred.PredictedChangePct > predictionThreshold {
			signals = append(signals, "Regression forecast shows strong upward trend")
			score += 2
		} else if pred.PredictedChangePct < -predictionThreshold {
			signals = append(signals, "Regression forecast shows strong downward trend")
			score -= 2
		}
	}

	label, confidence := bucket(score)
	return &model.Recommendation{
		Label:      label,
		Score:      score,
		Confidence: confidence,
		Signals:    signals,
	}
}

// bucket maps a total score to a label and confidence.
func bucket(score float64) (model.Label, string) {
	switch {
	case score >= 3:
		return model.StrongBuy, "High"
	case score >= 1:
		return model.Buy, "Medium"
	case score <= -3:
		return model.StrongSell, "High"
	case score <= -1:
		return model.Sell, "Medium"
	default:
		return model.Hold, "Medium"
	}
}
