package regression

import (
	"fmt"
	"math"

	"rateorder/domain/kinetics"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// tiny keeps the t statistic finite when |r| is exactly 1
const tiny = 1e-20

// OLS fits y = intercept + slope*x by ordinary least squares.
//
// R² is the squared Pearson correlation of x and y, clamped to [0, 1]. A
// constant y has r = 0. A constant x has no defined slope and fails with
// kinetics.ErrDegenerateFit. Values whose variance is not finite fail with
// kinetics.ErrInvalidInput.
func OLS(x, y []float64) (kinetics.Fit, error) {
	n := len(x)
	if n != len(y) {
		return kinetics.Fit{}, kinetics.ErrLengthMismatch
	}
	if n < 2 {
		return kinetics.Fit{}, kinetics.ErrInsufficientData
	}

	xMin, _ := stats.Min(x)
	xMax, _ := stats.Max(x)
	if xMin == xMax {
		return kinetics.Fit{}, fmt.Errorf("%w: all %d time values equal %v", kinetics.ErrDegenerateFit, n, xMin)
	}

	ssx, err := stats.PopulationVariance(x)
	if err != nil {
		return kinetics.Fit{}, fmt.Errorf("variance of x: %w", err)
	}
	ssy, err := stats.PopulationVariance(y)
	if err != nil {
		return kinetics.Fit{}, fmt.Errorf("variance of y: %w", err)
	}
	if !isFinite(ssx) || !isFinite(ssy) {
		return kinetics.Fit{}, kinetics.NewInvalidInputError("regression values overflow; variance is not finite")
	}
	if ssx == 0 {
		return kinetics.Fit{}, fmt.Errorf("%w: variance underflow", kinetics.ErrDegenerateFit)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	var r float64
	if ssy > 0 {
		r, err = stats.Correlation(x, y)
		if err != nil {
			return kinetics.Fit{}, fmt.Errorf("correlation: %w", err)
		}
		r = clamp(r, -1, 1)
	}

	fit := kinetics.Fit{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  clamp(r*r, 0, 1),
		N:         n,
	}

	if n == 2 {
		// Two points always lie on a line; there are no residual degrees of freedom.
		fit.PValue = 0
		if y[0] == y[1] {
			fit.PValue = 1
		}
		return fit, nil
	}

	xMean, _ := stats.Mean(x)
	df := float64(n - 2)
	t := r * math.Sqrt(df/((1-r+tiny)*(1+r+tiny)))
	fit.PValue = twoSidedPValue(t, df)
	fit.StdErr = math.Sqrt((1 - r*r) * ssy / ssx / df)
	fit.InterceptStdErr = fit.StdErr * math.Sqrt(ssx+xMean*xMean)

	return fit, nil
}

// twoSidedPValue computes the p-value of t under Student's t with df degrees of freedom
func twoSidedPValue(t, df float64) float64 {
	if df <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * tDist.Survival(math.Abs(t))
	return clamp(p, 0, 1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
