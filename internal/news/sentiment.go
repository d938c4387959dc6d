package news

import (
	"strings"

	"github.com/pavansydney/moneysavyy/internal/model"
)

// positiveWords and negativeWords form the finance-tinted lexicon the scorer
// runs over. Scores are per-word polarities in [-1, 1].
var positiveWords = map[string]float64{
	"gain": 0.6, "gains": 0.6, "surge": 0.8, "surges": 0.8, "rally": 0.7,
	"rallies": 0.7, "rise": 0.5, "rises": 0.5, "jump": 0.6, "jumps": 0.6,
	"soar": 0.9, "soars": 0.9, "record": 0.5, "profit": 0.6, "profits": 0.6,
	"growth": 0.6, "strong": 0.5, "beat": 0.6, "beats": 0.6, "upgrade": 0.7,
	"upgraded": 0.7, "buy": 0.4, "bullish": 0.8, "outperform": 0.7,
	"positive": 0.5, "win": 0.5, "wins": 0.5, "boost": 0.6, "boosts": 0.6,
	"high": 0.3, "good": 0.4, "great": 0.6, "best": 0.6, "success": 0.6,
	"successful": 0.6, "expand": 0.4, "expands": 0.4, "dividend": 0.3,
	"recovery": 0.5, "recovers": 0.5, "up": 0.3,
}

var negativeWords = map[string]float64{
	"loss": -0.6, "losses": -0.6, "fall": -0.5, "falls": -0.5, "drop": -0.6,
	"drops": -0.6, "plunge": -0.9, "plunges": -0.9, "crash": -0.9,
	"crashes": -0.9, "decline": -0.5, "declines": -0.5, "weak": -0.5,
	"miss": -0.6, "misses": -0.6, "downgrade": -0.7, "downgraded": -0.7,
	"sell": -0.4, "bearish": -0.8, "underperform": -0.7, "negative": -0.5,
	"concern": -0.4, "concerns": -0.4, "risk": -0.3, "risks": -0.3,
	"fraud": -0.9, "probe": -0.5, "lawsuit": -0.6, "fine": -0.5,
	"penalty": -0.6, "layoff": -0.7, "layoffs": -0.7, "cuts": -0.5,
	"slump": -0.7, "slumps": -0.7, "low": -0.3, "bad": -0.4, "worst": -0.7,
	"fail": -0.6, "fails": -0.6, "debt": -0.4, "down": -0.3,
}

// negations flip the polarity of the following word.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "without": true, "hardly": true,
}

const polarityThreshold = 0.1

// Polarity scores the text in [-1, 1]: the mean polarity of recognized words,
// with a preceding negation flipping a word's sign.
func Polarity(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var sum float64
	matched := 0
	negate := false
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()[]")
		if negations[w] {
			negate = true
			continue
		}

		score, ok := positiveWords[w]
		if !ok {
			score, ok = negativeWords[w]
		}
		if ok {
			if negate {
				score = -score
			}
			sum += score
			matched++
		}
		negate = false
	}

	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}

// Classify maps a polarity to the canned sentiment label.
func Classify(polarity float64) model.Sentiment {
	switch {
	case polarity > polarityThreshold:
		return model.SentimentPositive
	case polarity < -polarityThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Summarize aggregates item sentiments into counts and an overall label.
func Summarize(items []model.NewsItem) model.SentimentSummary {
	var s model.SentimentSummary
	var sum float64
	for _, it := range items {
		sum += it.Polarity
		switch it.Sentiment {
		case model.SentimentPositive:
			s.Positive++
		case model.SentimentNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if len(items) > 0 {
		s.MeanPolarity = sum / float64(len(items))
	}
	s.Overall = Classify(s.MeanPolarity)
	return s
}
