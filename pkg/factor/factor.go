// Package factor is the public entry point for finding divisors of
// large composites with Lenstra's elliptic curve method. Factor runs
// ECM stage 1 over a budget of random curves; Factorize combines trial
// division, a primality gate and recursive ECM splits into a full
// prime factorization.
package factor

import (
	"context"
	"log"
	"math"
	"math/big"
	"sort"

	"lenstra/internal/crypto/primes"
	"lenstra/internal/ecm"
)

// primalityRounds is passed to big.Int.ProbablyPrime; error rate is at
// most 4^-rounds on adversarial inputs and far lower in practice.
const primalityRounds = 20

// trialBound is the default small-prime cutoff applied before any
// curve work in Factorize.
const trialBound = 10000

var one = big.NewInt(1)

// Status classifies the outcome of a Factor call.
type Status int

const (
	// Found: Result.Factor is a nontrivial divisor of N.
	Found Status = iota
	// Exhausted: every configured curve attempt was unproductive.
	// Larger bounds or a bigger curve budget may still succeed.
	Exhausted
	// TrivialInput: N <= 1 or N is (probably) prime, detected before
	// any curve work.
	TrivialInput
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case TrivialInput:
		return "trivial input"
	default:
		return "unknown"
	}
}

// Result reports what a Factor call produced. Factor is non-nil
// exactly when Status is Found.
type Result struct {
	Status Status
	Factor *big.Int
	Curves int    // curve attempts consumed
	B1     uint64 // smoothness bound in effect when the run ended
}

// Config tunes a Factor run. The zero value picks defaults scaled to
// the size of N.
type Config struct {
	// B1 is the initial stage-1 smoothness bound. Zero means
	// DefaultB1(N). The prime sieve only reaches 32 bits, so bounds
	// above 2^32-1 are clamped to it.
	B1 uint64

	// B1Max caps the bound schedule; zero pins the bound at B1.
	// Clamped to 2^32-1 like B1.
	B1Max uint64

	// CurvesPerBound is how many unproductive curves run before the
	// bound doubles. Zero disables the schedule.
	CurvesPerBound int

	// MaxCurves is the total curve budget. Zero means a default scaled
	// to B1.
	MaxCurves int

	// Workers > 1 runs curve attempts concurrently; the first
	// discovered factor cancels the rest.
	Workers int

	// Seed fixes the pseudo-random curve sequence. Runs with equal
	// Seed and sequential execution are fully deterministic.
	Seed int64

	// Logger, when non-nil, receives engine progress lines.
	Logger *log.Logger
}

// DefaultB1 returns a stage-1 bound scaled to N via the usual
// L-function heuristic exp(sqrt(2 ln N ln ln N)), clamped to
// [1000, 2^26].
func DefaultB1(n *big.Int) uint64 {
	lnN := float64(n.BitLen()) * math.Ln2
	if lnN < math.E {
		lnN = math.E
	}
	b1 := uint64(math.Exp(math.Sqrt(2 * lnN * math.Log(lnN))))
	if b1 < 1000 {
		b1 = 1000
	}
	if b1 > 1<<26 {
		b1 = 1 << 26
	}
	return b1
}

// defaultMaxCurves grows with the bound: bigger bounds mean rarer but
// more powerful attempts.
func defaultMaxCurves(b1 uint64) int {
	c := 100
	for b := b1; b > 10000; b /= 10 {
		c *= 3
	}
	return c
}

func (c Config) withDefaults(n *big.Int) (Config, error) {
	if c.B1 == 0 {
		c.B1 = DefaultB1(n)
	}
	if c.B1 < 2 {
		return c, ErrBadBound
	}
	if c.MaxCurves == 0 {
		c.MaxCurves = defaultMaxCurves(c.B1)
	}
	if c.MaxCurves < 0 {
		return c, ErrBadBudget
	}
	return c, nil
}

// Factor searches for one nontrivial divisor of n. It returns
// TrivialInput for n <= 1 and for (probably) prime n, Found with the
// first divisor any curve exposes, and Exhausted once the curve budget
// is spent. The context cancels in-flight curve work.
func Factor(ctx context.Context, n *big.Int, cfg Config) (Result, error) {
	if n == nil {
		return Result{}, ErrNilInput
	}
	if n.Cmp(one) <= 0 || n.ProbablyPrime(primalityRounds) {
		return Result{Status: TrivialInput}, nil
	}

	cfg, err := cfg.withDefaults(n)
	if err != nil {
		return Result{}, err
	}

	res := ecm.New(n, ecm.Config{
		B1:             cfg.B1,
		B1Max:          cfg.B1Max,
		CurvesPerBound: cfg.CurvesPerBound,
		MaxCurves:      cfg.MaxCurves,
		Workers:        cfg.Workers,
		Seed:           cfg.Seed,
		Logger:         cfg.Logger,
	}).Run(ctx)

	out := Result{Status: Exhausted, Curves: res.Curves, B1: res.B1}
	if res.Factor != nil {
		out.Status = Found
		out.Factor = res.Factor
	}
	return out, nil
}

// Factorize returns the full prime factorization of n in ascending
// order. Small factors are stripped by trial division first; what
// remains is split recursively with ECM, using ProbablyPrime to decide
// when a cofactor is done. If some composite cofactor resists the
// configured budget, the factors found so far are returned together
// with ErrIncomplete.
func Factorize(ctx context.Context, n *big.Int, cfg Config) ([]*big.Int, error) {
	if n == nil {
		return nil, ErrNilInput
	}
	if n.Cmp(one) <= 0 {
		return nil, nil
	}

	found, rest := primes.TrialDivide(n, trialBound)
	if rest.Cmp(one) > 0 {
		split, err := splitAll(ctx, rest, cfg)
		if err != nil {
			found = append(found, split...)
			sortFactors(found)
			return found, err
		}
		found = append(found, split...)
	}
	sortFactors(found)
	return found, nil
}

// splitAll recursively reduces a trial-divided cofactor to primes.
func splitAll(ctx context.Context, n *big.Int, cfg Config) ([]*big.Int, error) {
	if n.ProbablyPrime(primalityRounds) {
		return []*big.Int{new(big.Int).Set(n)}, nil
	}

	res, err := Factor(ctx, n, cfg)
	if err != nil {
		return nil, err
	}
	if res.Status != Found {
		// Composite we could not split; surface it as-is.
		return []*big.Int{new(big.Int).Set(n)}, ErrIncomplete
	}

	rest := new(big.Int).Quo(n, res.Factor)
	left, err := splitAll(ctx, res.Factor, cfg)
	if err != nil {
		return left, err
	}
	right, err := splitAll(ctx, rest, cfg)
	return append(left, right...), err
}

func sortFactors(fs []*big.Int) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Cmp(fs[j]) < 0 })
}
