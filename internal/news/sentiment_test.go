package news

import (
	"testing"

	"github.com/pavansydney/moneysavyy/internal/model"
)

func TestPolarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		sign int // -1, 0, +1
	}{
		{"positive", "Shares surge as company beats profit estimates", +1},
		{"negative", "Stock plunges after regulator opens fraud probe", -1},
		{"no lexicon words", "Quarterly report published on Tuesday", 0},
		{"empty", "", 0},
		{"mixed leaning positive", "Strong growth despite debt concerns", +1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polarity(tt.text)
			switch {
			case tt.sign > 0 && got <= 0:
				t.Errorf("expected positive polarity, got %f", got)
			case tt.sign < 0 && got >= 0:
				t.Errorf("expected negative polarity, got %f", got)
			case tt.sign == 0 && got != 0:
				t.Errorf("expected zero polarity, got %f", got)
			}
		})
	}
}

func TestPolarity_NegationFlips(t *testing.T) {
	plain := Polarity("profit growth")
	negated := Polarity("no profit growth")
	if plain <= 0 {
		t.Fatalf("baseline should be positive, got %f", plain)
	}
	if negated >= plain {
		t.Errorf("negation should lower the score: %f vs %f", negated, plain)
	}
}

func TestPolarity_PunctuationStripped(t *testing.T) {
	if got := Polarity("Profits! Gains, rally."); got <= 0 {
		t.Errorf("punctuation should not hide lexicon words, got %f", got)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		polarity float64
		want     model.Sentiment
	}{
		{0.5, model.SentimentPositive},
		{0.11, model.SentimentPositive},
		{0.1, model.SentimentNeutral},
		{0.0, model.SentimentNeutral},
		{-0.1, model.SentimentNeutral},
		{-0.11, model.SentimentNegative},
		{-0.5, model.SentimentNegative},
	}
	for _, tt := range tests {
		if got := Classify(tt.polarity); got != tt.want {
			t.Errorf("Classify(%f) = %s, want %s", tt.polarity, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	items := []model.NewsItem{
		{Sentiment: model.SentimentPositive, Polarity: 0.6},
		{Sentiment: model.SentimentPositive, Polarity: 0.4},
		{Sentiment: model.SentimentNegative, Polarity: -0.3},
		{Sentiment: model.SentimentNeutral, Polarity: 0.0},
	}
	s := Summarize(items)
	if s.Positive != 2 || s.Negative != 1 || s.Neutral != 1 {
		t.Errorf("wrong counts: %+v", s)
	}
	if s.Overall != model.SentimentPositive {
		t.Errorf("expected positive overall, got %s", s.Overall)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Overall != model.SentimentNeutral {
		t.Errorf("expected neutral overall for no items, got %s", s.Overall)
	}
	if s.MeanPolarity != 0 {
		t.Errorf("expected zero mean polarity, got %f", s.MeanPolarity)
	}
}
