package trend

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Line is a least squares line y = Intercept + Slope*i over observation indices 0..n-1
type Line struct {
	Intercept float64
	Slope     float64
}

// designMatrix returns the n by 2 matrix with a column of ones followed by the step index
func designMatrix(n int) *mat.Dense {
	ones := make([]float64, n)
	floats.AddConst(1.0, ones)

	x := mat.NewDense(n, 2, nil)
	x.SetCol(0, ones)
	x.SetCol(1, mat.Col(nil, 0, IndexMatrix(n)))
	return x
}

// FitLine solves the ordinary least squares line through y using QR factorization of the
// index design matrix. At least two observations are required.
func FitLine(y []float64) (Line, error) {
	n := len(y)
	if n == 0 {
		return Line{}, ErrNoObservations
	}
	if n < 2 {
		return Line{}, fmt.Errorf("%d observations for 2 coefficients, %w", n, ErrUnderdetermined)
	}

	qr := new(mat.QR)
	qr.Factorize(designMatrix(n))

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, mat.NewVecDense(n, y)); err != nil {
		return Line{}, fmt.Errorf("unable to solve least squares line, %w", err)
	}
	return Line{
		Intercept: coef.AtVec(0),
		Slope:     coef.AtVec(1),
	}, nil
}

// Predict evaluates the line at indices 0..n-1
func (l Line) Predict(n int) []float64 {
	if n <= 0 {
		return nil
	}
	var res mat.VecDense
	res.MulVec(designMatrix(n), mat.NewVecDense(2, []float64{l.Intercept, l.Slope}))
	return res.RawVector().Data
}

// Score compares the line against the observed series it was fit on
func (l Line) Score(y []float64) (Scores, error) {
	return NewScores(l.Predict(len(y)), y)
}
