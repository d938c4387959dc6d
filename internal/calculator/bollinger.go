package calculator

import (
	"errors"
	"math"
)

// BollingerBands holds the three band values for the latest price.
type BollingerBands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes the Bollinger bands over the period with the given
// standard-deviation multiplier (conventionally 20 and 2).
func Bollinger(prices []float64, period int, mult float64) (*BollingerBands, error) {
	mid, err := SMA(prices, period)
	if err != nil {
		return nil, err
	}

	var sumSq float64
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - mid
		sumSq += d * d
	}
	sd := math.Sqrt(sumSq / float64(period))

	return &BollingerBands{
		Upper:  mid + mult*sd,
		Middle: mid,
		Lower:  mid - mult*sd,
	}, nil
}

// Volatility computes the annualized volatility of daily log returns.
func Volatility(prices []float64) (float64, error) {
	if len(prices) < 2 {
		return 0, errors.New("not enough data for volatility calculation")
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(prices[i]/prices[i-1]))
	}
	if len(returns) < 2 {
		return 0, errors.New("not enough valid returns for volatility calculation")
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	sd := math.Sqrt(sumSq / float64(len(returns)-1))

	return sd * math.Sqrt(252), nil
}
