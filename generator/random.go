package generator

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random is the only source of randomness a Generator draws from. Two
// generators built from the same seed produce identical datasets.
type Random struct {
	Seed uint64
	src  rand.Source
	r    *rand.Rand
}

// NewRandom seeds a PCG source. A zero seed is replaced by the wall clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Random{Seed: seed, src: src, r: rand.New(src)}
}

func (r *Random) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// Exponential draws with the given mean, not rate.
func (r *Random) Exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: r.src}.Rand()
}

// Uniform draws from [low, high).
func (r *Random) Uniform(low, high float64) float64 {
	return distuv.Uniform{Min: low, Max: high, Src: r.src}.Rand()
}

func (r *Random) Float64() float64 {
	return r.r.Float64()
}

func (r *Random) Choice(s []string) string {
	return s[r.r.IntN(len(s))]
}
