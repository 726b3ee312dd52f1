package ecm

import (
	"context"
	"math/big"

	"lenstra/internal/crypto/primes"
	"lenstra/internal/crypto/weierstrass"
)

// stage1 multiplies the starting point by every prime power p^e <= b1
// for primes p <= b1, so the point ends up multiplied by the B1-smooth
// scalar lcm(1..B1). The hoped-for outcome is that some intermediate
// slope inversion fails and exposes a divisor of N; that divisor is
// returned the moment it appears.
//
// A nil return means the curve attempt was unproductive: either the
// whole schedule completed without an inversion failure, the running
// point collapsed to the identity (which carries no further
// information), or the context was cancelled.
func stage1(ctx context.Context, c weierstrass.Curve, p weierstrass.Point, b1 uint64, ps []uint64) *big.Int {
	for _, prime := range ps {
		if ctx.Err() != nil {
			return nil
		}

		k := primes.MaxPowerBelow(prime, b1)
		next, factor := c.ScalarMult(p, k)
		if factor != nil {
			return factor
		}
		if next.Inf {
			return nil
		}
		p = next
	}
	return nil
}
