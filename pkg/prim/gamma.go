package prim

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

func lgamma(d float64) float64 {
	if d <= 0 {
		return math.NaN()
	}
	ret, _ := math.Lgamma(d)
	return ret
}

func digamma(d float64) float64 {
	return mathext.Digamma(d)
}

// trigamma is the second derivative of lgamma. Poles at non-positive integers are +Inf.
func trigamma(d float64) float64 {
	switch {
	case math.IsNaN(d), math.IsInf(d, -1):
		return math.NaN()
	case math.IsInf(d, 1):
		return 0
	case d > 0:
		return mathext.Zeta(2, d)
	case d == math.Trunc(d):
		return math.Inf(1)
	}

	// reflection: psi1(1-x) + psi1(x) = pi^2 / sin^2(pi x)
	s := math.Sin(math.Pi * d)
	return math.Pi*math.Pi/(s*s) - mathext.Zeta(2, 1-d)
}
