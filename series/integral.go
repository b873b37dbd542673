package series

import (
	stdmath "math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// e^-tailCutoff is far below float64 resolution relative to the integrals below.
	tailCutoff = 60
	tailNodes  = 200
)

// TailIntegral returns limit - S(n) in float64, computed by quadrature of an integral form of
// the remainder rather than from the terms of s. It serves as an independent check of Sum.
//
//	π - L_n  = (-1)^n · 4 ∫₀¹ t^{2n}/(1+t²) dt
//	ζ(2) - B_n = ∫₀^∞ x e^{-nx}/(e^x-1) dx
//
// Both are rewritten as ∫₀^∞ e^{-y} g(y) dy with a slowly varying g, so a fixed
// Gauss-Legendre rule on [0, 60] is accurate for every n.
func (s MainSeries) TailIntegral(n uint64) float64 {
	switch s {
	case Leibniz:
		// t = e^{-y/(2n+1)}
		m := 2*float64(n) + 1
		v := 4 / m * quad.Fixed(func(y float64) float64 {
			return stdmath.Exp(-y) / (1 + stdmath.Exp(-2*y/m))
		}, 0, tailCutoff, tailNodes, quad.Legendre{}, 0)
		if n%2 == 1 {
			return -v
		}
		return v
	case Basel:
		if n == 0 {
			return stdmath.Pi * stdmath.Pi / 6
		}
		// x = y/n
		m := float64(n)
		return 1 / m * quad.Fixed(func(y float64) float64 {
			u := y / m
			return stdmath.Exp(-y) * u / stdmath.Expm1(u)
		}, 0, tailCutoff, tailNodes, quad.Legendre{}, 0)
	default:
		return stdmath.NaN()
	}
}
