package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/game"
	"svw.info/rulerush/internal/generator"
	"svw.info/rulerush/internal/observability"
	"svw.info/rulerush/internal/rules"
	"svw.info/rulerush/internal/solver"
	"svw.info/rulerush/internal/validator"
)

type simOptions struct {
	games     int
	seed      uint64
	accuracy  float64
	maxRounds int
}

func newSimulateCmd() *cobra.Command {
	var opts simOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play headless games with a bot and report engine statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return simulate(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().IntVar(&opts.games, "games", 20, "number of games")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed of the first game; game i uses seed+i")
	cmd.Flags().Float64Var(&opts.accuracy, "accuracy", 0.9, "probability the bot picks the valid object")
	cmd.Flags().IntVar(&opts.maxRounds, "max-rounds", 200, "stop a game after this many rounds")
	return cmd
}

type gameResult struct {
	seed   uint64
	level  int
	score  int
	rounds int
	rules  int
	err    error
}

func simulate(ctx context.Context, out io.Writer, cfg config.Config, opts simOptions) error {
	if opts.games <= 0 {
		return fmt.Errorf("games must be positive, got %d", opts.games)
	}
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	logger := newLogger(cfg.Server.LogLevel)
	sv, val := solver.New(), validator.New()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tLEVEL\tSCORE\tROUNDS\tRULES\tRESULT")
	for i := 0; i < opts.games; i++ {
		seed := opts.seed + uint64(i)
		rng := rand.New(seed)
		ctrl := game.New(cfg.Game, game.Deps{
			Rules:     rules.NewFactory(cfg.Rules, rng, nil),
			Objects:   generator.NewPool(cfg.Generator, rng),
			Solver:    sv,
			Validator: val,
			Metrics:   m,
			Logger:    logger.With("seed", seed),
		})
		res := play(ctx, ctrl, rand.New(^seed), cfg.Game, opts)
		res.seed = seed
		status := "gameover"
		switch {
		case res.err != nil:
			status = res.err.Error()
		case ctrl.Phase() != domain.PhaseGameOver:
			status = "capped"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n", res.seed, res.level, res.score, res.rounds, res.rules, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return report(out, reg)
}

// play runs one game. The bot picks the valid object with probability
// accuracy; otherwise it alternates wrong picks and letting the timer run out.
func play(ctx context.Context, ctrl *game.Controller, bot *rand.Rand, cfg config.Game, opts simOptions) gameResult {
	var res gameResult
	if err := ctrl.Start(ctx); err != nil {
		res.err = err
	}
	for res.err == nil && ctrl.Phase() == domain.PhaseRoundActive && res.rounds < opts.maxRounds {
		res.rounds++
		objs, rs := ctrl.Round()
		valid, wrong := split(objs, rs)
		var err error
		switch {
		case bot.Float64() < opts.accuracy:
			_, err = ctrl.Select(ctx, valid)
		case len(wrong) > 0 && bot.Intn(2) == 0:
			_, err = ctrl.Select(ctx, wrong[bot.Intn(len(wrong))])
		default:
			_, err = ctrl.Tick(ctx, ctrl.Token(), game.RoundDuration(cfg, ctrl.Snapshot().HUD.Level))
		}
		res.err = err
	}
	snap := ctrl.Snapshot()
	res.level, res.score, res.rules = snap.HUD.Level, snap.HUD.Score, len(snap.Rules)
	return res
}

func split(objs []domain.GameObject, rs []*domain.Rule) (valid string, wrong []string) {
	for _, o := range objs {
		if domain.SatisfiesAll(rs, o) {
			valid = o.ID
		} else {
			wrong = append(wrong, o.ID)
		}
	}
	return valid, wrong
}

// report prints the engine counters gathered during the run.
func report(out io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMETRIC\tLABELS\tVALUE")
	for _, mf := range mfs {
		for _, mt := range mf.GetMetric() {
			c := mt.GetCounter()
			if c == nil {
				continue
			}
			labels := ""
			for _, lp := range mt.GetLabel() {
				labels += lp.GetName() + "=" + lp.GetValue() + " "
			}
			fmt.Fprintf(tw, "%s\t%s\t%.0f\n", mf.GetName(), labels, c.GetValue())
		}
	}
	return tw.Flush()
}
