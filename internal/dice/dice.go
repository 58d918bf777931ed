// Package dice rolls the random rounds of the interactive game: a target
// number and one face per die.
package dice

import (
	"math/rand"

	"github.com/louisbranch/nums/internal/solver"
)

// Round is one game: reach Target using every face exactly once.
type Round struct {
	Target solver.Value
	Faces  []solver.Face
	// Seed is the seed the round was rolled from, zero when the round was
	// given explicitly.
	Seed int64
}

// TargetRange returns the inclusive bounds random targets are drawn from:
// 1..99 for three dice and 100..999 for four.
func TargetRange(dice int) (lo, hi solver.Value) {
	if dice == solver.MaxDice {
		return 100, 999
	}
	return 1, 99
}

// Roll draws a target and dice faces for dice dice from seed. The same seed
// always produces the same round.
func Roll(seed int64, dice int) (Round, error) {
	if dice < solver.MinDice || dice > solver.MaxDice {
		return Round{}, solver.ErrInvalidDiceCount
	}
	rng := rand.New(rand.NewSource(seed))
	round := RollWithRng(rng, dice)
	round.Seed = seed
	return round, nil
}

// RollWithRng draws a round using a provided random source. dice must be a
// valid pool size.
func RollWithRng(rng *rand.Rand, dice int) Round {
	lo, hi := TargetRange(dice)
	target := lo + solver.Value(rng.Intn(int(hi-lo)+1))
	return Round{Target: target, Faces: RollFaces(rng, dice)}
}

// RollFaces rolls count six-sided dice.
func RollFaces(rng *rand.Rand, count int) []solver.Face {
	faces := make([]solver.Face, count)
	for i := range faces {
		faces[i] = rollDie(rng)
	}
	return faces
}

func rollDie(rng *rand.Rand) solver.Face {
	return solver.MinFace + solver.Face(rng.Intn(int(solver.MaxFace)))
}
