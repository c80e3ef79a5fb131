package priors

import (
	"sync"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// Dirichlet blends the uniform prior with Dirichlet-sampled exploration
// noise, the way root-exploration noise is added in alpha-zero-style
// search. Alpha is the concentration parameter (shared across all n
// components, as the teacher's tree.go construction does); Weight in
// [0, 1] is how much of the blend comes from the noise sample versus the
// uniform baseline.
type Dirichlet struct {
	Alpha  float64
	Weight float64

	mu     sync.Mutex
	rng    *distrand.Rand
	cached map[int][]float64
}

// NewDirichlet constructs a Dirichlet prior seeded for reproducibility.
func NewDirichlet(alpha, weight float64, seed uint64) *Dirichlet {
	return &Dirichlet{
		Alpha:  alpha,
		Weight: weight,
		rng:    distrand.New(distrand.NewSource(seed)),
		cached: make(map[int][]float64),
	}
}

// Prior returns the blended weight for edge i out of n total edges,
// sampling and caching one noise vector per distinct n encountered.
func (d *Dirichlet) Prior(i, n int) float32 {
	if n <= 0 {
		return 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	noise, ok := d.cached[n]
	if !ok {
		alpha := make([]float64, n)
		for k := range alpha {
			alpha[k] = d.Alpha
		}
		dist, ok := distmv.NewDirichlet(alpha, d.rng)
		if !ok {
			return 1
		}
		noise = dist.Rand(nil)
		d.cached[n] = noise
	}

	uniform := 1.0 / float64(n)
	blended := (1-d.Weight)*uniform + d.Weight*noise[i]
	// Rescale by n so the average prior across edges stays 1.0, matching
	// the base formula's implicit constant prior.
	return float32(blended * float64(n))
}
