// Package nums implements the interactive dice game: show a target and the
// rolled dice, then reveal how the target can be reached.
package nums

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/louisbranch/nums/internal/dice"
	"github.com/louisbranch/nums/internal/platform/config"
	"github.com/louisbranch/nums/internal/platform/i18n/catalog"
	"github.com/louisbranch/nums/internal/platform/random"
	"github.com/louisbranch/nums/internal/render"
	"github.com/louisbranch/nums/internal/solver"
	"github.com/louisbranch/nums/internal/solver/luaeval"
)

// ErrUsage indicates the positional arguments do not match any accepted form.
var ErrUsage = errors.New("invalid arguments")

// ErrVerifyFailed indicates at least one printed solution failed the Lua check.
var ErrVerifyFailed = errors.New("solution verification failed")

// Config holds the game configuration.
type Config struct {
	Dice      int
	Target    solver.Value
	HasTarget bool
	// Faces is empty when the faces should be rolled.
	Faces       []solver.Face
	Lang        string
	Seed        int64
	Verify      bool
	SimpleScore bool
}

type envConfig struct {
	Lang string `env:"LANG" envDefault:"en-US"`
	Seed int64  `env:"SEED"`
}

// ParseConfig parses environment and flags into a Config. Accepted positional
// forms are "dice", "dice target" and "dice target face...", with one face
// per die. On ErrUsage the returned Config still carries Lang so the caller
// can print localized usage.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}

	cfg := Config{Lang: envCfg.Lang, Seed: envCfg.Seed}
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "message language, en-US or de-DE (default: NUMS_LANG or en-US)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for target and dice (default: NUMS_SEED or random)")
	fs.BoolVar(&cfg.Verify, "verify", false, "check every printed solution with the Lua evaluator")
	fs.BoolVar(&cfg.SimpleScore, "simple-score", false, "order solutions by the simple score")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	usage := Config{Lang: cfg.Lang}
	positional := fs.Args()
	if len(positional) == 0 {
		return usage, ErrUsage
	}
	count, err := strconv.Atoi(positional[0])
	if err != nil {
		return Config{}, fmt.Errorf("dice must be a number: %q", positional[0])
	}
	if count < solver.MinDice || count > solver.MaxDice {
		return usage, fmt.Errorf("%w: %w", ErrUsage, solver.ErrInvalidDiceCount)
	}
	cfg.Dice = count

	switch len(positional) {
	case 1:
		return cfg, nil
	case 2, 2 + count:
	default:
		return usage, ErrUsage
	}

	target, err := strconv.ParseUint(positional[1], 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("target must be a number up to %d: %q", uint32(math.MaxUint32), positional[1])
	}
	cfg.Target = solver.Value(target)
	cfg.HasTarget = true

	for _, arg := range positional[2:] {
		face, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("face must be a number: %q", arg)
		}
		cfg.Faces = append(cfg.Faces, solver.Face(face))
	}
	if len(cfg.Faces) > 0 {
		if err := solver.ValidateFaces(cfg.Dice, cfg.Faces); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Usage returns the command line help in lang, or in the base locale when
// lang has no catalog.
func Usage(lang string) string {
	msg, _ := catalog.Default().Message(lang, "nums.usage")
	return msg
}

// Run plays one round. Questions are read from in and everything else is
// written to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	bundle := catalog.Default()
	p, err := bundle.Printer(cfg.Lang)
	if err != nil {
		return err
	}
	yes, _ := bundle.Message(cfg.Lang, "nums.answer.yes")

	round, err := resolveRound(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Start the search before the banner so it runs while the player thinks.
	solutions, err := solver.Stream(ctx, cfg.Dice, round.Target, round.Faces)
	if err != nil {
		return err
	}

	if round.Seed != 0 {
		p.Fprintf(out, "nums.seed", strconv.FormatInt(round.Seed, 10))
		fmt.Fprintln(out)
	}
	faces := make([]uint64, len(round.Faces))
	for i, f := range round.Faces {
		faces[i] = uint64(f)
	}
	fmt.Fprintln(out, render.Banner(p.Sprintf("nums.label.target"), uint64(round.Target)))
	fmt.Fprintln(out, render.Banner(p.Sprintf("nums.label.dice"), faces...))

	prompter := NewPrompter(in, out, yes)
	ok, err := prompter.Confirm(p.Sprintf("nums.prompt.count"))
	if err != nil || !ok {
		return err
	}

	exprs := solver.Collect(solutions)
	if cfg.SimpleScore {
		solver.SortBySimpleScore(exprs)
	}
	p.Fprintf(out, "nums.count", len(exprs))
	fmt.Fprintln(out)
	if len(exprs) == 0 {
		return nil
	}

	ok, err = prompter.Confirm(p.Sprintf("nums.prompt.list"))
	if err != nil || !ok {
		return err
	}

	p.Fprintf(out, "nums.simplest", exprs[0].String())
	fmt.Fprintln(out)
	p.Fprintf(out, "nums.hardest", exprs[len(exprs)-1].String())
	fmt.Fprintln(out)
	p.Fprintf(out, "nums.all", len(exprs))
	fmt.Fprintln(out)

	var evaluator *luaeval.Evaluator
	if cfg.Verify {
		evaluator = luaeval.New()
	}
	failed := 0
	for _, e := range exprs {
		fmt.Fprintf(out, "\t%s = %d\n", e, round.Target)
		if evaluator == nil {
			continue
		}
		if err := evaluator.Check(e.String(), int64(round.Target)); err != nil {
			failed++
			p.Fprintf(out, "nums.verify.failed", e.String(), err)
			fmt.Fprintln(out)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrVerifyFailed, failed, len(exprs))
	}
	return nil
}

// resolveRound fills in whatever cfg leaves to chance. Rounds with random
// parts carry the seed they were rolled from.
func resolveRound(cfg Config) (dice.Round, error) {
	if cfg.HasTarget && len(cfg.Faces) > 0 {
		return dice.Round{Target: cfg.Target, Faces: cfg.Faces}, nil
	}
	if cfg.Dice < solver.MinDice || cfg.Dice > solver.MaxDice {
		return dice.Round{}, solver.ErrInvalidDiceCount
	}
	seed, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return dice.Round{}, err
	}
	if !cfg.HasTarget {
		return dice.Roll(seed, cfg.Dice)
	}
	rng := rand.New(rand.NewSource(seed))
	return dice.Round{Target: cfg.Target, Faces: dice.RollFaces(rng, cfg.Dice), Seed: seed}, nil
}
