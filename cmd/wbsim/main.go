// Command wbsim plays batches of WireBoids games on virtual time and reports
// how far each one got. It renders into a command recorder, so it needs no
// window and runs as fast as the CPU allows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"wireboids/engine/game"
	"wireboids/engine/input"
	"wireboids/engine/render"
	"wireboids/hal"
	"wireboids/internal/logging"
)

type options struct {
	games     int
	seed      uint
	step      time.Duration
	maxTicks  int
	autopilot bool
}

// result is the outcome of one simulated game.
type result struct {
	seed     uint32
	ticks    int
	distance float64
	snap     game.Snapshot
	over     bool
}

func main() {
	var (
		opts     options
		logLevel string
	)
	flag.IntVar(&opts.games, "games", 10, "Number of games to play.")
	flag.UintVar(&opts.seed, "seed", 1, "Seed of the first game; game i uses seed+i.")
	flag.DurationVar(&opts.step, "step", 0, "Simulated processing time per tick.")
	flag.IntVar(&opts.maxTicks, "max-ticks", 100_000, "Give up on a game after this many ticks.")
	flag.BoolVar(&opts.autopilot, "autopilot", true, "Steer around obstacles.")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error.")
	flag.Parse()

	log, err := logging.New(logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	results, err := simulate(game.DefaultConfig(), opts, log)
	if err != nil {
		log.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
	report(os.Stdout, results)
}

func simulate(cfg game.Config, opts options, log *zap.Logger) ([]result, error) {
	if opts.games <= 0 {
		return nil, errors.New("wbsim: games must be positive")
	}
	if opts.maxTicks <= 0 {
		return nil, errors.New("wbsim: max-ticks must be positive")
	}

	out := make([]result, 0, opts.games)
	for i := 0; i < opts.games; i++ {
		seed := uint32(opts.seed) + uint32(i)
		r, err := play(cfg, seed, opts, log.With(zap.Int("game", i), zap.Uint32("seed", seed)))
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func play(cfg game.Config, seed uint32, opts options, log *zap.Logger) (result, error) {
	clk := hal.NewManualClock(time.Unix(0, 0))
	inbox := input.NewInbox[input.Event](input.DefaultInboxSlots)
	eng, err := game.New(cfg, render.NewRenderer(&render.Recorder{}), game.Options{
		Logger: log,
		Source: game.NewXorShift(seed),
		Clock:  clk,
		Inbox:  inbox,
	})
	if err != nil {
		return result{}, err
	}

	var p *pilot
	if opts.autopilot {
		p = newPilot(inbox)
	}

	eng.Start(clk.Now())
	r := result{seed: seed}
	for r.ticks < opts.maxTicks && eng.State() != game.StateGameOver {
		due, ok := eng.Due()
		if !ok {
			return r, fmt.Errorf("wbsim: no tick pending in state %s", eng.State())
		}
		if p != nil {
			p.steer(eng.World())
		}
		// The engine reads the clock after the tick; setting it past due
		// makes the tick appear to take opts.step.
		clk.Set(due.Add(opts.step))
		eng.Poll(due)
		r.ticks++
	}
	if p != nil {
		p.release()
	}

	r.snap = eng.Snapshot()
	r.distance = r.snap.Distance
	r.over = eng.State() == game.StateGameOver
	log.Info("game finished",
		zap.Int("ticks", r.ticks),
		zap.Float64("distance", r.distance),
		zap.Uint64("generated", r.snap.Generated),
		zap.Uint64("retired", r.snap.Retired),
		zap.Bool("game_over", r.over),
	)
	return r, nil
}

func report(w io.Writer, results []result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "seed\tticks\tdistance\tgenerated\tretired\tresult\t")
	var total float64
	for _, r := range results {
		outcome := "hit"
		if !r.over {
			outcome = "survived"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%s\t\n",
			r.seed, r.ticks, game.FormatDistance("%.1fk", r.distance),
			r.snap.Generated, r.snap.Retired, outcome)
		total += r.distance
	}
	_ = tw.Flush()
	if len(results) > 0 {
		fmt.Fprintf(w, "mean distance: %s\n", game.FormatDistance("%.1fk", total/float64(len(results))))
	}
}
