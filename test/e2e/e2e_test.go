package e2e

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenstra/pkg/factor"
)

// threePrimeN is 3209622181 * 6727426213 * 2810645183.
func threePrimeN() *big.Int {
	n := big.NewInt(3209622181)
	n.Mul(n, big.NewInt(6727426213))
	n.Mul(n, big.NewInt(2810645183))
	return n
}

var threePrimes = []int64{2810645183, 3209622181, 6727426213}

func TestFactorThreePrimeProduct(t *testing.T) {
	n := threePrimeN()

	res, err := factor.Factor(context.Background(), n, factor.Config{
		B1:        1000,
		MaxCurves: 500,
		Seed:      1,
	})
	require.NoError(t, err)
	require.Equal(t, factor.Found, res.Status, "500 curves at B1=1000 should expose a ~2^32 factor")
	require.NotNil(t, res.Factor)

	// The result must be a nontrivial divisor, never 1 and never N.
	assert.Equal(t, 1, res.Factor.Cmp(big.NewInt(1)))
	assert.Equal(t, -1, res.Factor.Cmp(n))
	assert.Zero(t, new(big.Int).Mod(n, res.Factor).Sign())

	// Any divisor is a product of the three known primes.
	rest := new(big.Int).Set(res.Factor)
	for _, p := range threePrimes {
		bp := big.NewInt(p)
		if new(big.Int).Mod(rest, bp).Sign() == 0 {
			rest.Quo(rest, bp)
		}
	}
	assert.Zero(t, rest.Cmp(big.NewInt(1)), "divisor %s is not built from the known primes", res.Factor)
}

func TestFactorizeThreePrimeProduct(t *testing.T) {
	n := threePrimeN()

	factors, err := factor.Factorize(context.Background(), n, factor.Config{
		B1:        10000,
		MaxCurves: 500,
		Workers:   4,
		Seed:      1,
	})
	require.NoError(t, err)
	require.Len(t, factors, 3)
	for i, want := range threePrimes {
		assert.Equal(t, want, factors[i].Int64())
	}
}

func TestFactorizeWithSmallFactors(t *testing.T) {
	// 2^3 * 17 * 5591617 * 6292343: small primes go to trial division,
	// the semiprime tail goes to ECM.
	n := big.NewInt(8 * 17)
	n.Mul(n, big.NewInt(5591617*6292343))

	factors, err := factor.Factorize(context.Background(), n, factor.Config{
		B1:        10000,
		MaxCurves: 300,
		Seed:      4,
	})
	require.NoError(t, err)
	require.Len(t, factors, 6)

	product := big.NewInt(1)
	for _, f := range factors {
		require.True(t, f.ProbablyPrime(20))
		product.Mul(product, f)
	}
	assert.Zero(t, product.Cmp(n))
}
