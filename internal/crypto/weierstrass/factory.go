package weierstrass

import (
	"errors"
	"math/big"
	"math/rand"

	"lenstra/internal/crypto/modring"
)

// Number of draws before RandomCurve gives up. Every draw with a
// nonzero discriminant succeeds, so hitting the cap means the modulus
// is pathological (e.g. divisible by very small primes only).
const curveEffort = 1000

// ErrNoCurve is returned when no non-singular curve was found within
// the effort budget.
var ErrNoCurve = errors.New("weierstrass: no usable curve found, modulus may be too small")

// RandomCurve draws a pseudo-random curve over Z/NZ together with a
// point lying on it: x₀, y₀ and a are uniform residues and
// b = y₀² - x₀³ - a·x₀, so (x₀, y₀) satisfies the curve equation by
// construction. The generator is caller-supplied so that runs are
// reproducible and concurrent attempts never share random state.
//
// Singular curves (discriminant ≡ 0 mod N) are redrawn. When the
// discriminant is nonzero but shares a divisor with N, that divisor is
// already a factor of N and is returned immediately — no curve work
// needed.
func RandomCurve(r modring.Ring, rng *rand.Rand) (Curve, Point, *big.Int, error) {
	for i := 0; i < curveEffort; i++ {
		x0 := new(big.Int).Rand(rng, r.N)
		y0 := new(big.Int).Rand(rng, r.N)
		a := new(big.Int).Rand(rng, r.N)

		x3 := r.Mul(x0, r.Mul(x0, x0))
		b := r.Sub(r.Sub(r.Mul(y0, y0), x3), r.Mul(a, x0))

		curve := Curve{A: a, B: b, Ring: r}
		disc := curve.Discriminant()
		if disc.Sign() == 0 {
			continue
		}
		// disc is a nonzero residue, so any common divisor with N is
		// strictly between 1 and N.
		if g := new(big.Int).GCD(nil, nil, disc, r.N); g.Cmp(bigOne) != 0 {
			return Curve{}, Point{}, g, nil
		}
		return curve, Point{X: x0, Y: y0}, nil, nil
	}
	return Curve{}, Point{}, nil, ErrNoCurve
}

var bigOne = big.NewInt(1)
