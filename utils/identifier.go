package utils

import (
	"math/rand"
	"strconv"
	"time"
)

// IfaGenerator produces six-digit client identifiers. Draws are uniform
// over [100000, 999999]; collisions against existing records are possible
// and not checked here.
type IfaGenerator struct {
	rng *rand.Rand
}

func NewIfaGenerator(rng *rand.Rand) *IfaGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &IfaGenerator{rng: rng}
}

func (g *IfaGenerator) Generate() string {
	return strconv.Itoa(100000 + g.rng.Intn(900000))
}
