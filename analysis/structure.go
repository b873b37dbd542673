package analysis

import (
	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/math"
)

// Structure measures the size of a correction term. With α(n) = |φ(n)|/scale, where scale
// is the factor the main series' terms carry:
//
//	Φ = α²          structure density
//	H = ln(1 + α)   entropy density
//	K = Φ/H
//
// K/α tends to 1 as α tends to 0. For the Madhava term α = n/(4n²+1).
type Structure struct {
	Alpha      *decimal.Big
	Density    *decimal.Big
	Entropy    *decimal.Big
	K          *decimal.Big
	KOverAlpha *decimal.Big
}

// NewStructure returns nil when phi is zero, since K is then undefined.
func NewStructure(ctx decimal.Context, phi *decimal.Big, scale int64) *Structure {
	if math.IsZero(phi) {
		return nil
	}
	alpha := ctx.Quo(new(decimal.Big), math.Abs(phi), math.New(scale))
	density := math.Mul(ctx, alpha, alpha)
	entropy := ctx.Log(new(decimal.Big), ctx.Add(new(decimal.Big), alpha, math.New(1)))
	k := ctx.Quo(new(decimal.Big), density, entropy)
	return &Structure{
		Alpha:      alpha,
		Density:    density,
		Entropy:    entropy,
		K:          k,
		KOverAlpha: ctx.Quo(new(decimal.Big), k, alpha),
	}
}
