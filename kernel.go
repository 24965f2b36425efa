package clue

import "math"

// Kernel weighs the contribution of neighbour j to the density of point i
// at the given distance. Weights must be non-negative.
type Kernel interface {
	Weight(dist float64, i, j int) float64
}

// KernelFunc adapts a plain function into a Kernel.
type KernelFunc func(dist float64, i, j int) float64

func (f KernelFunc) Weight(dist float64, i, j int) float64 { return f(dist, i, j) }

// FlatKernel gives every neighbour the same weight. A point weighs itself 1.
type FlatKernel struct {
	Value float64
}

func (k FlatKernel) Weight(_ float64, i, j int) float64 {
	if i == j {
		return 1
	}
	return k.Value
}

// ExponentialKernel decays as Amplitude * exp(-Mean * dist). A point weighs
// itself 1.
type ExponentialKernel struct {
	Mean      float64
	Amplitude float64
}

func (k ExponentialKernel) Weight(dist float64, i, j int) float64 {
	if i == j {
		return 1
	}
	return k.Amplitude * math.Exp(-k.Mean*dist)
}

// GaussianKernel weighs neighbours by
// Amplitude * exp(-(dist-Mean)^2 / (2*StdDev^2)). A point weighs itself 1.
type GaussianKernel struct {
	Mean      float64
	StdDev    float64
	Amplitude float64
}

func (k GaussianKernel) Weight(dist float64, i, j int) float64 {
	if i == j {
		return 1
	}
	d := dist - k.Mean
	return k.Amplitude * math.Exp(-d*d/(2*k.StdDev*k.StdDev))
}
