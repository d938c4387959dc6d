package model

// Label is the recommendation bucket for a scored analysis.
type Label string

const (
	StrongBuy  Label = "STRONG_BUY"
	Buy        Label = "BUY"
	Hold       Label = "HOLD"
	Sell       Label = "SELL"
	StrongSell Label = "STRONG_SELL"
)

// Color maps the label to the dashboard badge color.
func (l Label) Color() string {
	switch l {
	case StrongBuy, Buy:
		return "success"
	case StrongSell, Sell:
		return "danger"
	default:
		return "warning"
	}
}

// Recommendation is the derived trading suggestion: a bucketed label, the raw
// accumulated score, and the free-text signals that contributed to it.
type Recommendation struct {
	Label      Label    `json:"recommendation"`
	Score      float64  `json:"score"`
	Confidence string   `json:"confidence"`
	Signals    []string `json:"signals"`
}
