package calculator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// minRegressionBars is the minimum series length the fit will accept.
const minRegressionBars = 50

// forecastHorizon is how many days ahead Extrapolate projects.
const forecastHorizon = 30

// fit is a fitted price model over bar indexes.
type fit struct {
	model   string
	r2      float64
	predict func(x float64) float64
}

// Extrapolate fits a linear and a quadratic regression of close price on bar
// index, keeps whichever explains the series better, and projects the next 30
// days. Returns the model name, its R², and the projected points.
func Extrapolate(prices []float64) (modelName string, r2 float64, points []float64, err error) {
	if len(prices) < minRegressionBars {
		return "", 0, nil, fmt.Errorf("insufficient data for prediction: %d bars, need %d", len(prices), minRegressionBars)
	}

	xs := make([]float64, len(prices))
	for i := range prices {
		xs[i] = float64(i)
	}

	linear := fitLinear(xs, prices)
	best := linear
	if quad, qerr := fitQuadratic(xs, prices); qerr == nil && quad.r2 > linear.r2 {
		best = quad
	}

	points = make([]float64, forecastHorizon)
	last := xs[len(xs)-1]
	for i := 0; i < forecastHorizon; i++ {
		points[i] = best.predict(last + float64(i+1))
	}
	return best.model, best.r2, points, nil
}

func fitLinear(xs, ys []float64) fit {
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	est := make([]float64, len(xs))
	for i, x := range xs {
		est[i] = alpha + beta*x
	}
	return fit{
		model:   "linear",
		r2:      stat.RSquaredFrom(est, ys, nil),
		predict: func(x float64) float64 { return alpha + beta*x },
	}
}

func fitQuadratic(xs, ys []float64) (fit, error) {
	n := len(xs)
	a := mat.NewDense(n, 3, nil)
	b := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		a.Set(i, 1, xs[i])
		a.Set(i, 2, xs[i]*xs[i])
		b.Set(i, 0, ys[i])
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, b); err != nil {
		return fit{}, errors.New("quadratic fit is singular")
	}
	c0, c1, c2 := coef.At(0, 0), coef.At(1, 0), coef.At(2, 0)

	est := make([]float64, n)
	for i, x := range xs {
		est[i] = c0 + c1*x + c2*x*x
	}
	return fit{
		model:   "quadratic",
		r2:      stat.RSquaredFrom(est, ys, nil),
		predict: func(x float64) float64 { return c0 + c1*x + c2*x*x },
	}, nil
}
