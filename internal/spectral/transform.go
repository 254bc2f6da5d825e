// Package spectral wraps the discrete Fourier transform backend used to
// move fields between real and frequency space.
package spectral

import (
	"runtime"

	"github.com/mjibson/go-dsp/fft"
)

// Transformer performs whole-field 2D transforms. Both directions return
// a freshly allocated result; callers decide whether to write it back.
type Transformer interface {
	Name() string
	Forward(data [][]complex128) [][]complex128
	Inverse(data [][]complex128) [][]complex128
}

// DSP is the go-dsp backed transformer. go-dsp falls back to Bluestein's
// algorithm for non power-of-two sizes, so any even grid works.
type DSP struct{}

func NewDSP() *DSP {
	fft.SetWorkerPoolSize(runtime.NumCPU())
	return &DSP{}
}

func (d *DSP) Name() string { return "go-dsp" }

func (d *DSP) Forward(data [][]complex128) [][]complex128 {
	return fft.FFT2(data)
}

func (d *DSP) Inverse(data [][]complex128) [][]complex128 {
	return fft.IFFT2(data)
}
