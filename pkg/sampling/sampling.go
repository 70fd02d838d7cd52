// Package sampling averages analog readings.
//
// Shunt, vref and photoresistor inputs are noisy; every reading handed to the
// safety predicates is the integer mean of MaxSamples consecutive reads.
package sampling

import (
	"errors"
	"fmt"
)

// ErrInvalidSampleCount is returned when fewer than one sample is requested.
var ErrInvalidSampleCount = errors.New("invalid sample count")

// Source is a single analog input.
type Source interface {
	// Read returns one raw sample.
	Read() (int, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (int, error)

// Read calls f.
func (f SourceFunc) Read() (int, error) {
	return f()
}

// Average reads n samples from src and returns their integer mean.
// The first read error aborts the reading.
func Average(src Source, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleCount, n)
	}

	sum := 0
	for i := 0; i < n; i++ {
		v, err := src.Read()
		if err != nil {
			return 0, fmt.Errorf("sample %d of %d: %w", i+1, n, err)
		}
		sum += v
	}
	return sum / n, nil
}

// Averager reads a fixed number of samples per reading.
type Averager struct {
	src     Source
	samples int
}

// NewAverager creates an Averager taking samples reads per reading,
// typically limits.MaxSamples().
func NewAverager(src Source, samples int) (*Averager, error) {
	if samples < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleCount, samples)
	}
	return &Averager{src: src, samples: samples}, nil
}

// Read returns one averaged reading. An Averager is itself a Source.
func (a *Averager) Read() (int, error) {
	return Average(a.src, a.samples)
}

// Samples returns the number of reads per reading.
func (a *Averager) Samples() int {
	return a.samples
}

var _ Source = (*Averager)(nil)
