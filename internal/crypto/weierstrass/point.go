package weierstrass

import (
	"fmt"
	"math/big"

	"lenstra/internal/crypto/modring"
)

// Point is an affine point (x, y) with coordinates in Z/NZ, or the
// point at infinity (the group identity). Points are immutable values:
// curve operations return new points and never mutate their inputs.
type Point struct {
	X, Y *big.Int
	Inf  bool
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{Inf: true}
}

// NewPoint returns the point (x, y) with both coordinates canonicalized
// into [0, N).
func NewPoint(x, y *big.Int, r modring.Ring) Point {
	return Point{X: r.Reduce(x), Y: r.Reduce(y)}
}

// Neg returns the additive inverse of p: (x, -y mod N).
func (p Point) Neg(r modring.Ring) Point {
	if p.Inf {
		return p
	}
	return Point{X: new(big.Int).Set(p.X), Y: r.Sub(new(big.Int), p.Y)}
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p Point) String() string {
	if p.Inf {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}
