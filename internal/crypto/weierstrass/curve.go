// Package weierstrass implements the elliptic curve group law for
// curves y² = x³ + ax + b over the ring Z/NZ with composite N.
//
// Over a ring this is only a partial group law: the chord-and-tangent
// formulas divide by 2y (doubling) or x₂-x₁ (addition), and those
// elements need not be invertible mod N. A failed inversion is not an
// error here — the exposed gcd is a divisor of N, which is exactly
// what ECM is looking for. Every operation that can divide therefore
// returns (Point, factor) and callers must check which one they got.
package weierstrass

import (
	"math/big"

	"lenstra/internal/crypto/modring"
)

var (
	two         = big.NewInt(2)
	three       = big.NewInt(3)
	four        = big.NewInt(4)
	twentySeven = big.NewInt(27)
)

// Curve is y² = x³ + ax + b over Z/NZ. A and B are canonical residues.
type Curve struct {
	A, B *big.Int
	Ring modring.Ring
}

// NewCurve builds the curve with coefficients reduced mod N.
func NewCurve(a, b *big.Int, r modring.Ring) Curve {
	return Curve{A: r.Reduce(a), B: r.Reduce(b), Ring: r}
}

// IsOnCurve reports whether p satisfies y² = x³ + ax + b mod N.
// The point at infinity is on every curve.
func (c Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	r := c.Ring
	x3 := r.Mul(p.X, r.Mul(p.X, p.X))
	rhs := r.Add(r.Add(x3, r.Mul(c.A, p.X)), c.B)
	return r.Mul(p.Y, p.Y).Cmp(rhs) == 0
}

// Discriminant returns 4a³ + 27b² mod N. The curve is singular when
// this vanishes.
func (c Curve) Discriminant() *big.Int {
	r := c.Ring
	a3 := r.Mul(c.A, r.Mul(c.A, c.A))
	b2 := r.Mul(c.B, c.B)
	return r.Add(r.Mul(four, a3), r.Mul(twentySeven, b2))
}

// Add returns p + q under the chord-and-tangent law. When the slope
// inversion fails, the exposed divisor of N is returned as factor and
// the accompanying Point must be ignored; a discovered factor is final
// for the current curve attempt.
func (c Curve) Add(p, q Point) (Point, *big.Int) {
	if p.Inf {
		return q, nil
	}
	if q.Inf {
		return p, nil
	}

	r := c.Ring
	if p.X.Cmp(q.X) == 0 {
		// Same x: either q == -p (vertical chord, sum is O) or the
		// tangent case.
		if r.Add(p.Y, q.Y).Sign() == 0 {
			return Infinity(), nil
		}
		num := r.Add(r.Mul(three, r.Mul(p.X, p.X)), c.A)
		den := r.Mul(two, p.Y)
		return c.chord(p, q, num, den)
	}

	num := r.Sub(q.Y, p.Y)
	den := r.Sub(q.X, p.X)
	return c.chord(p, q, num, den)
}

// Double returns 2p, with the same factor contract as Add.
func (c Curve) Double(p Point) (Point, *big.Int) {
	return c.Add(p, p)
}

// chord finishes an addition once the slope numerator and denominator
// are known: s = num/den, x₃ = s² - x₁ - x₂, y₃ = s(x₁ - x₃) - y₁.
func (c Curve) chord(p, q Point, num, den *big.Int) (Point, *big.Int) {
	r := c.Ring
	inv, factor := r.Inverse(den)
	if factor != nil {
		return Point{}, factor
	}
	s := r.Mul(num, inv)
	x3 := r.Sub(r.Sub(r.Mul(s, s), p.X), q.X)
	y3 := r.Sub(r.Mul(s, r.Sub(p.X, x3)), p.Y)
	return Point{X: x3, Y: y3}, nil
}

// ScalarMult returns [k]p by double-and-add, propagating any factor
// exposed along the way. k must be non-negative.
func (c Curve) ScalarMult(p Point, k uint64) (Point, *big.Int) {
	acc := Infinity()
	base := p
	for k > 0 {
		if k&1 == 1 {
			var factor *big.Int
			acc, factor = c.Add(base, acc)
			if factor != nil {
				return Point{}, factor
			}
		}
		k >>= 1
		if k > 0 {
			var factor *big.Int
			base, factor = c.Double(base)
			if factor != nil {
				return Point{}, factor
			}
		}
	}
	return acc, nil
}
