package smoothing

import (
	"log"

	kalman_filter "github.com/LdDl/kalman-filter"
)

// Kalman model constants. The filter runs in frame time (dt = 1) with no
// control input; acceleration noise stays fixed while measurement noise
// scales with the configured smoothing factor, so a higher factor trusts
// measurements less and produces a smoother, laggier track.
const (
	kalmanDT      = 1.0
	kalmanStdDevA = 2.0
	// kalmanMeasBase is the measurement noise std dev at factor 1.
	kalmanMeasBase = 0.5
)

// kalman smooths positions with a constant-velocity 2D Kalman filter,
// lazily initialized on the first observed point so the opening frame
// passes through exactly.
type kalman struct {
	factor  float64
	tracker *kalman_filter.Kalman2D
}

func newKalman(factor float64) *kalman {
	return &kalman{factor: factor}
}

func (k *kalman) Smooth(x, y float64) (float64, float64) {
	if k.tracker == nil {
		stdDevM := kalmanMeasBase * k.factor
		k.tracker = kalman_filter.NewKalman2D(kalmanDT, 0, 0, kalmanStdDevA, stdDevM, stdDevM,
			kalman_filter.WithState2D(x, y))
		return x, y
	}

	k.tracker.Predict()
	if err := k.tracker.Update(x, y); err != nil {
		// An unrecoverable filter state (singular innovation covariance)
		// should not stall tracking; start over from the raw measurement.
		log.Printf("kalman update failed, resetting filter: %v", err)
		k.Reset()
		return x, y
	}
	return k.tracker.GetState()
}

// Predict advances the motion model one frame without a measurement so the
// state keeps extrapolating while the hand is briefly lost.
func (k *kalman) Predict() {
	if k.tracker == nil {
		return
	}
	k.tracker.Predict()
}

func (k *kalman) Reset() {
	k.tracker = nil
}
