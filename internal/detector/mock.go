package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Translate returns a copy of the hand shifted by (dx, dy). Useful for
// simulating hand movement across frames in tests.
func Translate(h HandLandmarks, dx, dy float64) HandLandmarks {
	out := h
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	return out
}

// basePose returns a right hand with the wrist at (0.5, 0.8), all four
// fingers curled into the palm and the thumb tucked across it. The pose
// builders below start from this and extend individual fingers.
func basePose() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb tucked across the palm
	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70, Z: -0.01}
	lm.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.02}
	lm.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.68, Z: -0.02}

	// Index finger curled
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.62, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.66, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.53, Y: 0.70, Z: -0.02}

	// Middle finger curled
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.60, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.64, Z: -0.04}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.68, Z: -0.02}

	// Ring finger curled
	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.62, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.66, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.44, Y: 0.70, Z: -0.02}

	// Pinky finger curled
	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.64, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.68, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.72, Z: -0.02}

	return lm
}

// extendIndex straightens the index finger upward.
func extendIndex(lm *HandLandmarks) {
	lm.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.47, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.40, Z: 0.0}
}

// extendMiddle straightens the middle finger upward.
func extendMiddle(lm *HandLandmarks) {
	lm.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.53, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.51, Y: 0.45, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.51, Y: 0.37, Z: 0.0}
}

// extendRing straightens the ring finger upward.
func extendRing(lm *HandLandmarks) {
	lm.Points[RingPIP] = Point3D{X: 0.44, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.43, Y: 0.47, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.43, Y: 0.39, Z: 0.0}
}

// FistLandmarks returns a hand with all five fingers folded.
func FistLandmarks() HandLandmarks {
	return basePose()
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extended to the side
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return lm
}

// PointingLandmarks returns a hand with only the index finger extended,
// the cursor-move pose.
func PointingLandmarks() HandLandmarks {
	lm := basePose()
	extendIndex(&lm)
	return lm
}

// PinchLandmarks returns a hand with the thumb tip touching the extended
// index fingertip while the middle finger stays folded, the left-click pose.
func PinchLandmarks() HandLandmarks {
	lm := basePose()
	extendIndex(&lm)
	lm.Points[ThumbMCP] = Point3D{X: 0.59, Y: 0.66, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.59, Y: 0.55, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.585, Y: 0.42, Z: 0.0}
	return lm
}

// ThreeFingerPinchLandmarks returns a hand with thumb, index and middle tips
// touching, the right-click pose.
func ThreeFingerPinchLandmarks() HandLandmarks {
	lm := basePose()
	extendIndex(&lm)
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.42, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.52, Y: 0.54, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.55, Y: 0.47, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.575, Y: 0.435, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.59, Y: 0.66, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.59, Y: 0.55, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.585, Y: 0.44, Z: 0.0}
	return lm
}

// ScrollPoseLandmarks returns a hand with index and middle fingers extended
// and all others folded, the scroll pose.
func ScrollPoseLandmarks() HandLandmarks {
	lm := basePose()
	extendIndex(&lm)
	extendMiddle(&lm)
	return lm
}

// ThreeFingerLandmarks returns a hand with index, middle and ring fingers
// extended, the brightness-control pose.
func ThreeFingerLandmarks() HandLandmarks {
	lm := basePose()
	extendIndex(&lm)
	extendMiddle(&lm)
	extendRing(&lm)
	return lm
}

// ThumbsUpLandmarks returns a hand with the thumb extended upward and all
// other fingers curled.
func ThumbsUpLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extended upward (Y decreases going up)
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	lm.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.74, Z: -0.02}

	return lm
}

// ThumbsDownLandmarks returns an inverted hand with the thumb pointing down
// and all other fingers curled.
func ThumbsDownLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.45, Z: 0.0}

	// Thumb extended downward
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.50, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.60, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.75, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.90, Z: 0.0}

	// Index finger curled (hand is upside down, tips curl back up)
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.55, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.59, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.59, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.50, Y: 0.58, Z: -0.02}

	// Middle finger curled
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.57, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.61, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.61, Z: -0.04}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.60, Z: -0.02}

	// Ring finger curled
	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.55, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.45, Y: 0.59, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.59, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.44, Y: 0.58, Z: -0.02}

	// Pinky finger curled
	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.53, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.57, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.57, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.56, Z: -0.02}

	return lm
}
