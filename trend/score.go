package trend

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scores tracks the fit scores
type Scores struct {
	MSE float64 `json:"mean_squared_error"`
	R2  float64 `json:"r_squared"`
}

// NewScores calculates the fit scores given the predicted and actual input slice values
func NewScores(predicted, actual []float64) (Scores, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return Scores{}, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	rs, err := RSquared(predicted, actual)
	if err != nil {
		return Scores{}, fmt.Errorf("unable to compute r-squared, %w", err)
	}
	return Scores{
		MSE: mse,
		R2:  rs,
	}, nil
}

// MSE computes the mean squared error, mean((y-yhat)^2). A score of 0 means a perfect match
// with no errors. NaN pairs are skipped but still count towards the mean.
func MSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
	}
	mse /= float64(len(actual))
	return mse, nil
}

// RSquared computes 1 - SSres/SStot between the predicted and actual where 1.0 means a perfect
// fit. When the actual values have no variance the coefficient is undefined and NaN is returned.
func RSquared(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	predictCopy := make([]float64, 0, len(predicted))
	actualCopy := make([]float64, 0, len(actual))
	for i := 0; i < len(predicted); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		predictCopy = append(predictCopy, predicted[i])
		actualCopy = append(actualCopy, actual[i])
	}
	if len(actualCopy) == 0 {
		return math.NaN(), nil
	}

	mean := stat.Mean(actualCopy, nil)
	var ssTot float64
	for _, v := range actualCopy {
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		return math.NaN(), nil
	}
	return stat.RSquaredFrom(predictCopy, actualCopy, nil), nil
}
