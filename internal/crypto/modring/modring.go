// Package modring implements residue arithmetic over Z/NZ for a fixed
// modulus N. N is expected to be composite: the whole point of the
// Inverse operation is that it can fail, and a failed inversion hands
// back gcd(a, N), which is how ECM discovers factors.
package modring

import (
	"fmt"
	"math/big"
)

var one = big.NewInt(1)

// Ring provides arithmetic modulo a fixed N > 1.
// The zero value is not usable; construct with New.
type Ring struct {
	N *big.Int
}

// New returns a Ring for the modulus n. It panics if n <= 1, which is
// a caller bug (input validation happens before any ring is built).
func New(n *big.Int) Ring {
	if n == nil || n.Cmp(one) <= 0 {
		panic(fmt.Sprintf("modring: modulus must be > 1, got %v", n))
	}
	return Ring{N: new(big.Int).Set(n)}
}

// Reduce canonicalizes a into [0, N).
func (r Ring) Reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, r.N)
}

// Add returns (a + b) mod N.
func (r Ring) Add(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Add(a, b))
}

// Sub returns (a - b) mod N.
func (r Ring) Sub(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Sub(a, b))
}

// Mul returns (a * b) mod N.
func (r Ring) Mul(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Mul(a, b))
}

// Inverse attempts to invert a modulo N using the extended Euclidean
// algorithm. Exactly one of the return values is non-nil:
//
//   - gcd(a, N) == 1: inv is the inverse of a, factor is nil.
//   - gcd(a, N)  > 1: inv is nil and factor is the gcd. A factor
//     strictly between 1 and N is a nontrivial divisor of N; a factor
//     equal to N (e.g. a ≡ 0) carries no information and callers treat
//     it as an unproductive attempt.
//
// Callers must check which case occurred; there is no silent fallback.
func (r Ring) Inverse(a *big.Int) (inv, factor *big.Int) {
	aa := r.Reduce(a)
	x := new(big.Int)
	g := new(big.Int).GCD(x, nil, aa, r.N)
	if g.Cmp(one) != 0 {
		return nil, g
	}
	return x.Mod(x, r.N), nil
}
