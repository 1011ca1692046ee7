// Package trend fits a straight line over an evenly spaced series and summarizes its direction
// and goodness of fit.
package trend

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of a linear trend fit over a series indexed 0..n-1
type Result struct {
	Slope     float64
	Intercept float64
	Predicted []float64
	Label     Label
	Scores    Scores
}

// IndexMatrix returns an n by 1 design matrix holding the step index of each observation
func IndexMatrix(n int) *mat.Dense {
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	return mat.NewDense(n, 1, idx)
}

// Fit computes the least squares line through y using the position of each value as the
// independent variable. A series with no variance, including a single observation, yields an
// exactly flat line through its value with an undefined r-squared.
func Fit(y []float64) (*Result, error) {
	n := len(y)
	if n == 0 {
		return nil, ErrNoObservations
	}

	actual := make([]float64, n)
	copy(actual, y)

	if floats.Min(actual) == floats.Max(actual) {
		predicted := make([]float64, n)
		floats.AddConst(actual[0], predicted)
		return &Result{
			Slope:     0.0,
			Intercept: actual[0],
			Predicted: predicted,
			Label:     Classify(0.0),
			Scores:    Scores{MSE: 0.0, R2: math.NaN()},
		}, nil
	}

	line, err := FitLine(actual)
	if err != nil {
		return nil, fmt.Errorf("unable to fit trend, %w", err)
	}

	scores, err := line.Score(actual)
	if err != nil {
		return nil, err
	}

	return &Result{
		Slope:     line.Slope,
		Intercept: line.Intercept,
		Predicted: line.Predict(n),
		Label:     Classify(line.Slope),
		Scores:    scores,
	}, nil
}
