// Package dist provides the numeric sampling sources the simulation consumes.
// The core is agnostic to the distribution family: anything implementing
// Sampler can drive inter-arrival, patience, handle, hold, and wrap-up times.
package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler produces a non-negative numeric sample
type Sampler interface {
	Sample() float64
}

// Exponential samples from an exponential distribution with the given mean
type Exponential struct {
	mean float64
	rng  *rand.Rand
}

// NewExponential creates an exponential sampler. Mean must be positive.
func NewExponential(mean float64, rng *rand.Rand) (*Exponential, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("exponential mean must be positive, got %g", mean)
	}
	return &Exponential{mean: mean, rng: rng}, nil
}

// Sample returns the next exponential variate
func (e *Exponential) Sample() float64 {
	return e.rng.ExpFloat64() * e.mean
}

// Normal samples from a normal distribution truncated below at min
type Normal struct {
	mean   float64
	stddev float64
	min    float64
	rng    *rand.Rand
}

// NewNormal creates a truncated normal sampler. Mean must be positive and
// stddev non-negative.
func NewNormal(mean, stddev, min float64, rng *rand.Rand) (*Normal, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("normal mean must be positive, got %g", mean)
	}
	if stddev < 0 {
		return nil, fmt.Errorf("normal stddev must be non-negative, got %g", stddev)
	}
	if min < 0 {
		return nil, fmt.Errorf("normal min must be non-negative, got %g", min)
	}
	return &Normal{mean: mean, stddev: stddev, min: min, rng: rng}, nil
}

// Sample returns the next truncated normal variate
func (n *Normal) Sample() float64 {
	v := n.rng.NormFloat64()*n.stddev + n.mean
	if v < n.min {
		return n.min
	}
	return v
}

// Uniform samples uniformly from [lo, hi)
type Uniform struct {
	lo, hi float64
	rng    *rand.Rand
}

// NewUniform creates a uniform sampler over [lo, hi)
func NewUniform(lo, hi float64, rng *rand.Rand) (*Uniform, error) {
	if lo < 0 || hi <= lo {
		return nil, fmt.Errorf("uniform bounds must satisfy 0 <= lo < hi, got [%g, %g)", lo, hi)
	}
	return &Uniform{lo: lo, hi: hi, rng: rng}, nil
}

// Sample returns the next uniform variate
func (u *Uniform) Sample() float64 {
	return u.lo + u.rng.Float64()*(u.hi-u.lo)
}

// Weibull samples from a Weibull distribution scaled by scale. Models
// customer patience: shape > 1 concentrates abandonment around the scale.
type Weibull struct {
	scale float64
	shape float64
	rng   *rand.Rand
}

// NewWeibull creates a Weibull sampler with the given scale and shape
func NewWeibull(scale, shape float64, rng *rand.Rand) (*Weibull, error) {
	if scale <= 0 || shape <= 0 {
		return nil, fmt.Errorf("weibull scale and shape must be positive, got scale=%g shape=%g", scale, shape)
	}
	return &Weibull{scale: scale, shape: shape, rng: rng}, nil
}

// Sample returns the next Weibull variate via inverse transform
func (w *Weibull) Sample() float64 {
	u := w.rng.Float64()
	for u == 0 {
		u = w.rng.Float64()
	}
	return w.scale * math.Pow(-math.Log(u), 1/w.shape)
}

// Constant always returns the same value. Useful for tests and degenerate
// configurations.
type Constant float64

// Sample returns the constant value
func (c Constant) Sample() float64 {
	return float64(c)
}
