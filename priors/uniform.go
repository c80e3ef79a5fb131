// Package priors supplies mcgs.PriorSource implementations: the implicit
// uniform prior the base PUCT formula assumes, and an optional
// Dirichlet-noise prior for root exploration.
package priors

// Uniform is the no-op prior: every edge gets weight 1, reproducing the
// base PUCT formula exactly. Engines constructed with a nil PriorSource
// behave identically to Uniform{}; it exists so callers can set
// Config.Prior explicitly when that reads better.
type Uniform struct{}

// Prior always returns 1.
func (Uniform) Prior(i, n int) float32 { return 1 }
