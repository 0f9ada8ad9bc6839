// Package smoothing provides position filters that trade latency against
// jitter for the tracked cursor point.
package smoothing

import "fmt"

// Method selects the smoothing filter variant.
type Method string

const (
	// MethodNone passes positions through unchanged.
	MethodNone Method = "none"
	// MethodEMA applies an exponential moving average.
	MethodEMA Method = "ema"
	// MethodKalman applies a constant-velocity Kalman filter per axis.
	MethodKalman Method = "kalman"
)

// Smoother filters a stream of 2D positions. One instance tracks one point
// and is not safe for concurrent use.
type Smoother interface {
	// Smooth feeds a new raw measurement and returns the filtered position.
	Smooth(x, y float64) (float64, float64)

	// Predict advances the filter one frame without a measurement, keeping
	// motion continuity while the hand is briefly lost. A no-op for filters
	// without a motion model.
	Predict()

	// Reset discards all filter state. The next Smooth call reinitializes
	// from its raw measurement, so a reacquired hand is not dragged toward
	// a stale position.
	Reset()
}

// New creates a Smoother for the given method and smoothing factor.
// A higher factor means more smoothing and more lag. The method and factor
// are validated here so an invalid configuration never surfaces mid-stream.
func New(method Method, factor float64) (Smoother, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("smoothing factor must be positive, got %g", factor)
	}
	switch method {
	case MethodNone:
		return passthrough{}, nil
	case MethodEMA:
		return newEMA(factor), nil
	case MethodKalman:
		return newKalman(factor), nil
	default:
		return nil, fmt.Errorf("unknown smoothing method %q", method)
	}
}

// passthrough is the identity filter.
type passthrough struct{}

func (passthrough) Smooth(x, y float64) (float64, float64) { return x, y }
func (passthrough) Predict()                               {}
func (passthrough) Reset()                                 {}
