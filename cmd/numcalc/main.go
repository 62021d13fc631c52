// Command numcalc evaluates postfix arithmetic over the fixed-width types of
// package num.
//
//	numcalc -type u128 '2 100 ^ 1 -'
//	numcalc -type f128 'pi 4 / sin'
//	printf '1 3 /\n2 sqrt\n' | numcalc -type d64 -batch
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cfg, err := parseConfig(args, errOut)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	} else if err != nil {
		fmt.Fprintln(errOut, err)
		return exitUsage
	}

	log := cfg.Logger(errOut)
	ev, err := newEvaluator(cfg.Type, log)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitUsage
	}

	exprs := cfg.Exprs
	if cfg.Batch {
		exprs, err = readExprs(in)
		if err != nil {
			log.Error().Err(err).Msg("reading expressions")
			return exitFailed
		}
	}

	start := time.Now()
	outcomes, err := evalAll(ctx, ev, exprs, cfg.Workers)
	if err != nil {
		log.Error().Err(err).Int("exprs", len(exprs)).Msg("evaluation stopped")
		return exitFailed
	}
	log.Info().
		Int("exprs", len(exprs)).
		Int("workers", cfg.Workers).
		Dur("took", time.Since(start)).
		Msg("evaluated")

	code := exitOK
	for i, o := range outcomes {
		if o.err != nil {
			log.Debug().Err(o.err).Int("index", i).Msg("evaluation failed")
			fmt.Fprintf(out, "error: %v\n", o.err)
			code = exitFailed
			continue
		}
		fmt.Fprintln(out, o.res.Text)
		if cfg.Dump {
			spew.Fdump(errOut, o.res.Value)
		}
	}
	return code
}

type outcome struct {
	res Result
	err error
}

// evalAll evaluates every expression with at most workers running at once.
// Outcomes are returned in input order. An expression that fails is recorded
// in its outcome; only cancellation of ctx fails the whole batch.
func evalAll(ctx context.Context, ev Evaluator, exprs []string, workers int) ([]outcome, error) {
	outcomes := make([]outcome, len(exprs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, expr := range exprs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i].res, outcomes[i].err = ev.Eval(expr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// readExprs reads one expression per line. Blank lines and lines starting
// with '#' are skipped.
func readExprs(in io.Reader) ([]string, error) {
	var exprs []string
	scn := bufio.NewScanner(in)
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	return exprs, scn.Err()
}
