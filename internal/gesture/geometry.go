package gesture

import (
	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
)

// minHandSize guards against degenerate landmark sets where the wrist and
// middle MCP coincide; anything smaller cannot be classified reliably.
const minHandSize = 1e-6

// NormalizedDistance returns the planar distance between two landmarks
// divided by the hand size, so the result is invariant to how far the hand
// is from the camera. Returns 0 for a degenerate hand.
func NormalizedDistance(h *detector.HandLandmarks, i, j int) float64 {
	size := h.HandSize()
	if size < minHandSize {
		return 0
	}
	return detector.Distance(h.Points[i], h.Points[j]) / size
}

// Extensions computes the per-finger extension state.
//
// The four fingers count extended when the fingertip sits above the PIP joint
// by at least ratio*handSize; this matches the camera-facing orientation the
// detector assumes. The thumb extends sideways rather than upward, so it is
// measured by how much farther its tip is from the palm center than its IP
// joint, which works in any hand orientation.
func Extensions(h *detector.HandLandmarks, ratio float64) FingerState {
	size := h.HandSize()
	if size < minHandSize {
		return FingerState{}
	}
	margin := ratio * size

	palm := h.PalmCenter()
	tipDist := detector.Distance(h.Points[detector.ThumbTip], palm)
	ipDist := detector.Distance(h.Points[detector.ThumbIP], palm)

	return FingerState{
		Thumb:  tipDist-ipDist > margin,
		Index:  h.Points[detector.IndexPIP].Y-h.Points[detector.IndexTip].Y > margin,
		Middle: h.Points[detector.MiddlePIP].Y-h.Points[detector.MiddleTip].Y > margin,
		Ring:   h.Points[detector.RingPIP].Y-h.Points[detector.RingTip].Y > margin,
		Pinky:  h.Points[detector.PinkyPIP].Y-h.Points[detector.PinkyTip].Y > margin,
	}
}

// isPinch reports whether two fingertips are within the normalized pinch
// threshold of each other.
func isPinch(h *detector.HandLandmarks, a, b int, threshold float64) bool {
	return NormalizedDistance(h, a, b) < threshold
}

// isThreePinch reports whether three fingertips are mutually within the
// normalized pinch threshold.
func isThreePinch(h *detector.HandLandmarks, a, b, c int, threshold float64) bool {
	return isPinch(h, a, b, threshold) && isPinch(h, a, c, threshold) && isPinch(h, b, c, threshold)
}
