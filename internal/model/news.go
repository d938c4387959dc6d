package model

// Sentiment is the canned polarity label for a piece of news text.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// NewsItem is a scraped headline with its sentiment reading.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published string    `json:"published"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
	Polarity  float64   `json:"polarity"`
}

// SentimentSummary aggregates the sentiment of a batch of news items.
type SentimentSummary struct {
	Positive     int       `json:"positive"`
	Negative     int       `json:"negative"`
	Neutral      int       `json:"neutral"`
	Overall      Sentiment `json:"overall"`
	MeanPolarity float64   `json:"mean_polarity"`
}
