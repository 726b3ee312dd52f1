// Package primes provides the small-prime machinery around ECM stage 1:
// a sieve of Eratosthenes for enumerating primes up to the smoothness
// bound, prime-power scalars, and trial division for stripping small
// factors before any curve work.
package primes

import (
	"math"
	"math/big"

	"github.com/RoaringBitmap/roaring"
)

// MaxBound caps sieve sizes; bounds beyond 32 bits are far outside any
// practical stage-1 budget.
const MaxBound = math.MaxUint32

// UpTo returns all primes <= n in ascending order. Composite marks are
// kept in a compressed roaring bitmap, which stays small for the
// typical clustered runs of composites.
func UpTo(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	if n > MaxBound {
		n = MaxBound
	}

	composite := roaring.New()
	for i := uint64(2); i*i <= n; i++ {
		if composite.Contains(uint32(i)) {
			continue
		}
		for j := i * i; j <= n; j += i {
			composite.Add(uint32(j))
		}
	}

	out := make([]uint64, 0, primeCountEstimate(n))
	for i := uint64(2); i <= n; i++ {
		if !composite.Contains(uint32(i)) {
			out = append(out, i)
		}
	}
	return out
}

// primeCountEstimate approximates pi(n) for slice preallocation.
func primeCountEstimate(n uint64) int {
	if n < 17 {
		return 8
	}
	return int(float64(n) / (math.Log(float64(n)) - 1))
}

// MaxPowerBelow returns p^e for the largest e with p^e <= bound, i.e.
// e = floor(log_p bound). Returns 1 when p > bound.
func MaxPowerBelow(p, bound uint64) uint64 {
	power := uint64(1)
	for power <= bound/p {
		power *= p
	}
	return power
}

// TrialDivide strips every prime factor of n below bound, returning
// the factors found (with multiplicity, ascending) and the remaining
// cofactor. n is not modified.
func TrialDivide(n *big.Int, bound uint64) ([]*big.Int, *big.Int) {
	rest := new(big.Int).Set(n)
	var factors []*big.Int

	q, rem := new(big.Int), new(big.Int)
	for _, p := range UpTo(bound) {
		bp := new(big.Int).SetUint64(p)
		if bp.Cmp(rest) > 0 {
			break
		}
		for {
			q.QuoRem(rest, bp, rem)
			if rem.Sign() != 0 {
				break
			}
			factors = append(factors, new(big.Int).Set(bp))
			rest.Set(q)
		}
	}
	return factors, rest
}
