package smoothing

// ema is an exponential moving average filter over both axes.
// alpha is derived from the configured smoothing factor as 1/factor: a
// factor of 1 means no smoothing (alpha 1), larger factors weight history
// more heavily and lag further behind fast movement.
type ema struct {
	alpha       float64
	lastX       float64
	lastY       float64
	initialized bool
}

func newEMA(factor float64) *ema {
	alpha := 1.0 / factor
	if alpha > 1 {
		alpha = 1
	}
	return &ema{alpha: alpha}
}

func (e *ema) Smooth(x, y float64) (float64, float64) {
	if !e.initialized {
		// The first observation passes through exactly so there is no
		// warm-up lag on the opening frame.
		e.lastX = x
		e.lastY = y
		e.initialized = true
		return x, y
	}

	e.lastX = e.alpha*x + (1-e.alpha)*e.lastX
	e.lastY = e.alpha*y + (1-e.alpha)*e.lastY
	return e.lastX, e.lastY
}

func (e *ema) Predict() {}

func (e *ema) Reset() {
	e.lastX = 0
	e.lastY = 0
	e.initialized = false
}
