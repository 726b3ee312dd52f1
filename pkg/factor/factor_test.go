package factor

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestFactorTrivialInput(t *testing.T) {
	for _, n := range []int64{1, 0, -7} {
		res, err := Factor(context.Background(), bi(n), Config{})
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, TrivialInput, res.Status, "n=%d", n)
		assert.Nil(t, res.Factor)
		assert.Zero(t, res.Curves, "no curve work for trivial input")
	}
}

func TestFactorPrimeInput(t *testing.T) {
	res, err := Factor(context.Background(), bi(1000003), Config{})
	require.NoError(t, err)
	assert.Equal(t, TrivialInput, res.Status)
}

func TestFactorNilInput(t *testing.T) {
	_, err := Factor(context.Background(), nil, Config{})
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestFactorSemiprime(t *testing.T) {
	n := bi(5591617 * 6292343)
	res, err := Factor(context.Background(), n, Config{B1: 10000, MaxCurves: 200, Seed: 5})
	require.NoError(t, err)
	require.Equal(t, Found, res.Status)

	require.NotNil(t, res.Factor)
	assert.Equal(t, 1, res.Factor.Cmp(bi(1)))
	assert.Equal(t, -1, res.Factor.Cmp(n))
	assert.Zero(t, new(big.Int).Mod(n, res.Factor).Sign())
	assert.Positive(t, res.Curves)
}

func TestFactorReproducible(t *testing.T) {
	n := bi(5591617 * 6292343)
	cfg := Config{B1: 10000, MaxCurves: 200, Seed: 11}

	a, err := Factor(context.Background(), n, cfg)
	require.NoError(t, err)
	b, err := Factor(context.Background(), n, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Curves, b.Curves)
	require.NotNil(t, a.Factor)
	assert.Zero(t, a.Factor.Cmp(b.Factor))
}

func TestDefaultB1(t *testing.T) {
	small := DefaultB1(bi(1000))
	assert.Equal(t, uint64(1000), small, "clamped at the floor")

	big512 := new(big.Int).Lsh(bi(1), 512)
	assert.Equal(t, uint64(1)<<26, DefaultB1(big512), "clamped at the ceiling")

	// 2^60 lands strictly between the clamps: the heuristic gives
	// roughly 5.4e7, below the 2^26 ceiling.
	mid := DefaultB1(new(big.Int).Lsh(bi(1), 60))
	assert.Greater(t, mid, uint64(1000))
	assert.Less(t, mid, uint64(1)<<26)
}

func TestFactorizeSmooth(t *testing.T) {
	// 360 = 2^3 * 3^2 * 5 falls entirely to trial division.
	factors, err := Factorize(context.Background(), bi(360), Config{})
	require.NoError(t, err)
	require.Len(t, factors, 6)

	want := []int64{2, 2, 2, 3, 3, 5}
	for i, f := range factors {
		assert.Equal(t, want[i], f.Int64())
	}
}

func TestFactorizeMixed(t *testing.T) {
	// 4 * 5591617 * 6292343: trial division strips the 2s, ECM splits
	// the rest.
	n := new(big.Int).Mul(bi(4), bi(5591617*6292343))
	factors, err := Factorize(context.Background(), n, Config{B1: 10000, MaxCurves: 300, Seed: 2})
	require.NoError(t, err)
	require.Len(t, factors, 4)

	product := bi(1)
	for _, f := range factors {
		assert.True(t, f.ProbablyPrime(20), "%s should be prime", f)
		product.Mul(product, f)
	}
	assert.Zero(t, product.Cmp(n), "factors must multiply back to n")

	assert.Equal(t, int64(2), factors[0].Int64())
	assert.Equal(t, int64(2), factors[1].Int64())
	assert.Equal(t, int64(5591617), factors[2].Int64())
	assert.Equal(t, int64(6292343), factors[3].Int64())
}

func TestFactorizeIncomplete(t *testing.T) {
	// A hard semiprime with a single low-bound curve cannot be split.
	n := new(big.Int).Mul(bi(3209622181), bi(6727426213))
	factors, err := Factorize(context.Background(), n, Config{B1: 20, MaxCurves: 1, Seed: 9})
	assert.ErrorIs(t, err, ErrIncomplete)
	require.Len(t, factors, 1)
	assert.Zero(t, factors[0].Cmp(n), "the unsplit cofactor is returned as-is")
}

func TestFactorizeTrivial(t *testing.T) {
	factors, err := Factorize(context.Background(), bi(1), Config{})
	require.NoError(t, err)
	assert.Empty(t, factors)

	_, err = Factorize(context.Background(), nil, Config{})
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "trivial input", TrivialInput.String())
	assert.Equal(t, "unknown", Status(42).String())
}
