// Package ecm implements stage 1 of Lenstra's elliptic curve method:
// random curves over Z/NZ are driven through a smooth scalar
// multiplication until one of them exposes a divisor of N through a
// failed modular inversion.
package ecm

import (
	"context"
	"log"
	"math/big"
	"math/rand"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lenstra/internal/crypto/modring"
	"lenstra/internal/crypto/primes"
	"lenstra/internal/crypto/weierstrass"
)

var one = big.NewInt(1)

// Config carries the tuning knobs for one engine run.
type Config struct {
	// B1 is the stage-1 smoothness bound for the first block of curves.
	// Bounds above primes.MaxBound (2^32-1) are clamped to it during
	// construction; the sieve cannot enumerate past 32 bits.
	B1 uint64

	// B1Max caps the bound schedule. Zero disables growth and pins the
	// bound at B1 for the whole run. Clamped like B1.
	B1Max uint64

	// CurvesPerBound is the number of unproductive curves tried before
	// the bound doubles (subject to B1Max). Zero disables growth.
	CurvesPerBound int

	// MaxCurves is the total curve attempt budget.
	MaxCurves int

	// Workers is the number of concurrent attempts. Values <= 1 run
	// sequentially, which also makes the outcome fully deterministic
	// for a fixed Seed.
	Workers int

	// Seed makes runs replayable: attempt i draws its curve from a
	// generator seeded with Seed+i, so the curve sequence is fixed
	// regardless of scheduling.
	Seed int64

	// Logger, when non-nil, receives per-attempt progress lines.
	Logger *log.Logger
}

// Result is the outcome of an engine run. Factor is nil when the curve
// budget was exhausted without finding a divisor. Curves counts only
// attempts that ran their full schedule or produced the winning
// factor; attempts cut short by cancellation do not count.
type Result struct {
	Factor *big.Int
	Curves int
	B1     uint64 // bound in effect when the run ended
}

// Engine owns the multi-curve retry loop for a single modulus.
type Engine struct {
	ring modring.Ring
	cfg  Config

	// primes up to the largest bound the schedule can reach, sieved
	// once; each attempt slices the prefix it needs.
	primeList []uint64
}

// normalized fills in minimums and clamps both bounds to the sieve
// limit.
func (cfg Config) normalized() Config {
	if cfg.B1 < 2 {
		cfg.B1 = 2
	}
	if cfg.B1 > primes.MaxBound {
		cfg.B1 = primes.MaxBound
	}
	if cfg.MaxCurves < 1 {
		cfg.MaxCurves = 1
	}
	if cfg.B1Max > primes.MaxBound {
		cfg.B1Max = primes.MaxBound
	}
	if cfg.B1Max < cfg.B1 {
		cfg.B1Max = cfg.B1
	}
	return cfg
}

// New builds an engine for the composite n. The caller is responsible
// for rejecting trivial inputs (n <= 1, primes); the engine only
// guards against moduli it cannot form a ring over.
func New(n *big.Int, cfg Config) *Engine {
	cfg = cfg.normalized()

	top := cfg.B1
	if cfg.CurvesPerBound > 0 {
		top = cfg.B1Max
	}

	return &Engine{
		ring:      modring.New(n),
		cfg:       cfg,
		primeList: primes.UpTo(top),
	}
}

// boundFor returns the smoothness bound the schedule assigns to
// attempt i: B1 doubled once per completed block of CurvesPerBound
// curves, clamped to B1Max.
func (e *Engine) boundFor(attempt int) uint64 {
	b1 := e.cfg.B1
	if e.cfg.CurvesPerBound <= 0 {
		return b1
	}
	for block := attempt / e.cfg.CurvesPerBound; block > 0; block-- {
		if b1 >= e.cfg.B1Max/2 {
			return e.cfg.B1Max
		}
		b1 *= 2
	}
	return b1
}

// primesFor returns the sieved prefix covering primes <= b1.
func (e *Engine) primesFor(b1 uint64) []uint64 {
	i := 0
	for i < len(e.primeList) && e.primeList[i] <= b1 {
		i++
	}
	return e.primeList[:i]
}

// attempt runs one full curve attempt and returns the nontrivial
// factor it produced, or nil.
func (e *Engine) attempt(ctx context.Context, i int) *big.Int {
	rng := rand.New(rand.NewSource(e.cfg.Seed + int64(i)))
	b1 := e.boundFor(i)

	curve, point, factor, err := weierstrass.RandomCurve(e.ring, rng)
	if err != nil {
		e.logf("attempt %d: %v", i, err)
		return nil
	}
	if factor == nil {
		factor = stage1(ctx, curve, point, b1, e.primesFor(b1))
	}

	if factor == nil || factor.Cmp(one) <= 0 || factor.Cmp(e.ring.N) >= 0 {
		// Either nothing useful, or gcd == N: both mean "next curve".
		return nil
	}
	e.logf("attempt %d (B1=%d): found divisor %s", i, b1, factor)
	return factor
}

// Run drives up to MaxCurves attempts and stops at the first
// nontrivial factor. Curves in flight when a factor appears are
// cancelled cooperatively between scalar-multiplication steps.
func (e *Engine) Run(ctx context.Context) Result {
	if e.cfg.Workers <= 1 {
		return e.runSequential(ctx)
	}
	return e.runParallel(ctx)
}

func (e *Engine) runSequential(ctx context.Context) Result {
	for i := 0; i < e.cfg.MaxCurves; i++ {
		if ctx.Err() != nil {
			return Result{Curves: i, B1: e.boundFor(i)}
		}
		if f := e.attempt(ctx, i); f != nil {
			return Result{Factor: f, Curves: i + 1, B1: e.boundFor(i)}
		}
	}
	return Result{Curves: e.cfg.MaxCurves, B1: e.boundFor(e.cfg.MaxCurves - 1)}
}

func (e *Engine) runParallel(ctx context.Context) Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		next  atomic.Int64
		mu    sync.Mutex
		found *big.Int
		done  int
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < e.cfg.Workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= e.cfg.MaxCurves || ctx.Err() != nil {
					return nil
				}

				f := e.attempt(ctx, i)

				mu.Lock()
				switch {
				case f != nil:
					done++
					if found == nil {
						found = f
						cancel() // first success wins
					}
				case ctx.Err() == nil:
					// Unproductive but ran the full schedule. Attempts
					// interrupted by cancellation are not counted.
					done++
				}
				mu.Unlock()
			}
		})
	}
	_ = g.Wait() // workers only exit via budget or cancellation

	mu.Lock()
	defer mu.Unlock()
	return Result{Factor: found, Curves: done, B1: e.boundFor(done - 1)}
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Printf(format, args...)
	}
}
