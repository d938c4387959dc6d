package model

// Indicators holds all computed technical indicators for a series.
type Indicators struct {
	RSI             float64 `json:"rsi"`
	MACD            float64 `json:"macd"`
	MACDSignal      float64 `json:"macd_signal"`
	MACDHist        float64 `json:"macd_hist"`
	SMA20           float64 `json:"sma_20"`
	SMA50           float64 `json:"sma_50"`
	BollingerUpper  float64 `json:"bollinger_upper"`
	BollingerMiddle float64 `json:"bollinger_middle"`
	BollingerLower  float64 `json:"bollinger_lower"`
	High52w         float64 `json:"high_52w"`
	Low52w          float64 `json:"low_52w"`
	Position52w     float64 `json:"position_52w"` // 0.0 ~ 1.0
	Volatility      float64 `json:"volatility"`   // annualized
}

// RSISignal maps the RSI value to its conventional reading.
func (i *Indicators) RSISignal() string {
	switch {
	case i.RSI > 70:
		return "Overbought"
	case i.RSI < 30:
		return "Oversold"
	default:
		return "Neutral"
	}
}

// MACDSignalLabel maps the MACD line sign to its conventional reading.
func (i *Indicators) MACDSignalLabel() string {
	switch {
	case i.MACD > 0:
		return "Bullish"
	case i.MACD < 0:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// Prediction is the result of the regression extrapolation.
type Prediction struct {
	Model              string    `json:"model_used"` // "linear" or "quadratic"
	R2                 float64   `json:"accuracy"`
	CurrentPrice       float64   `json:"current_price"`
	PredictedAvg30d    float64   `json:"predicted_30d_avg"`
	PredictedChange    float64   `json:"predicted_change"`
	PredictedChangePct float64   `json:"predicted_change_percent"`
	Points             []float64 `json:"predictions"`
}
