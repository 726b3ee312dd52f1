// Command lenstra factors a composite integer with Lenstra's elliptic
// curve method.
//
//	lenstra -n 35184372088631
//	lenstra -n 0x1ffffffffffff1d -full -workers 4
//
// Flags
//
//	-n        integer to factor (decimal or 0x-hex, required)
//	-b1       stage-1 smoothness bound (0 = scale with N)
//	-curves   curve attempt budget (0 = scale with B1)
//	-workers  concurrent curve attempts (default 1)
//	-seed     RNG seed for reproducible runs
//	-trial    trial-division cutoff applied before ECM
//	-full     keep splitting until every factor is (probably) prime
//	-json     emit JSON instead of human text
//	-v        log per-attempt engine progress to stderr
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"
	"time"

	"lenstra/internal/crypto/primes"
	"lenstra/pkg/factor"
)

type output struct {
	N       string   `json:"n"`
	Factors []string `json:"factors,omitempty"`
	Status  string   `json:"status"`
	Curves  int      `json:"curvesTried"`
	B1      uint64   `json:"b1"`
	Elapsed string   `json:"elapsed"`
}

func parseBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	z, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("cannot parse integer: %q", s)
	}
	return z, nil
}

func main() {
	var (
		nStr    = flag.String("n", "", "integer to factor (decimal or 0x-hex, required)")
		b1      = flag.Uint64("b1", 0, "stage-1 smoothness bound (0 = scale with N)")
		curves  = flag.Int("curves", 0, "curve attempt budget (0 = scale with B1)")
		workers = flag.Int("workers", 1, "concurrent curve attempts")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "RNG seed (fix for reproducible runs)")
		trial   = flag.Uint64("trial", 10000, "trial-division cutoff applied before ECM")
		full    = flag.Bool("full", false, "split into a complete prime factorization")
		jsonOut = flag.Bool("json", false, "emit JSON")
		verbose = flag.Bool("v", false, "log engine progress to stderr")
	)
	flag.Parse()

	if strings.TrimSpace(*nStr) == "" {
		fmt.Fprintln(os.Stderr, "error: missing required -n")
		flag.Usage()
		os.Exit(2)
	}
	n, err := parseBig(*nStr)
	if err != nil {
		die(err)
	}

	cfg := factor.Config{
		B1:        *b1,
		MaxCurves: *curves,
		Workers:   *workers,
		Seed:      *seed,
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "ecm: ", log.Ltime|log.Lmicroseconds)
	}

	start := time.Now()
	out, err := run(n, cfg, *trial, *full)
	if err != nil && out == nil {
		die(err)
	}
	out.Elapsed = time.Since(start).String()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			die(err)
		}
		return
	}
	printHuman(out)
}

func run(n *big.Int, cfg factor.Config, trialBound uint64, full bool) (*output, error) {
	out := &output{N: n.String()}
	ctx := context.Background()

	if full {
		factors, err := factor.Factorize(ctx, n, cfg)
		for _, f := range factors {
			out.Factors = append(out.Factors, f.String())
		}
		out.Status = "complete"
		if err != nil {
			out.Status = "partial"
		}
		return out, err
	}

	// Strip small primes first so ECM only sees the hard cofactor.
	small, rest := primes.TrialDivide(n, trialBound)
	for _, f := range small {
		out.Factors = append(out.Factors, f.String())
	}
	if rest.Cmp(big.NewInt(1)) == 0 {
		out.Status = "complete"
		return out, nil
	}

	res, err := factor.Factor(ctx, rest, cfg)
	if err != nil {
		return nil, err
	}
	out.Status = res.Status.String()
	out.Curves = res.Curves
	out.B1 = res.B1
	if res.Factor != nil {
		out.Factors = append(out.Factors, res.Factor.String())
		out.Factors = append(out.Factors, new(big.Int).Quo(rest, res.Factor).String())
	}
	return out, nil
}

func printHuman(o *output) {
	fmt.Printf("N = %s\n", o.N)
	fmt.Printf("status: %s", o.Status)
	if o.Curves > 0 {
		fmt.Printf(" (curves: %d, B1: %d)", o.Curves, o.B1)
	}
	fmt.Printf(", elapsed: %s\n", o.Elapsed)
	if len(o.Factors) == 0 {
		fmt.Println("no factors found")
		return
	}
	fmt.Println("factors:")
	for _, f := range o.Factors {
		fmt.Printf("  %s\n", f)
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(2)
}
