package detector

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_Normalize(t *testing.T) {
	t.Run("wrist at origin after normalization", func(t *testing.T) {
		hand := HandLandmarks{
			Handedness: "Right",
			Score:      0.9,
		}

		hand.Points[Wrist] = Point3D{X: 100.0, Y: 200.0, Z: 50.0}
		hand.Points[MiddleMCP] = Point3D{X: 130.0, Y: 240.0, Z: 50.0}

		for i := 1; i < NumLandmarks; i++ {
			if i != MiddleMCP {
				hand.Points[i] = Point3D{
					X: 100.0 + float64(i)*10.0,
					Y: 200.0 + float64(i)*5.0,
					Z: 50.0 + float64(i)*2.0,
				}
			}
		}

		normalized := hand.Normalize()

		if math.Abs(normalized.Points[Wrist].X) > epsilon {
			t.Errorf("expected wrist X to be 0, got %f", normalized.Points[Wrist].X)
		}
		if math.Abs(normalized.Points[Wrist].Y) > epsilon {
			t.Errorf("expected wrist Y to be 0, got %f", normalized.Points[Wrist].Y)
		}
		if normalized.Handedness != hand.Handedness {
			t.Errorf("expected handedness %s, got %s", hand.Handedness, normalized.Handedness)
		}
	})

	t.Run("distance from wrist to middle MCP is 1.0", func(t *testing.T) {
		hand := HandLandmarks{}
		hand.Points[Wrist] = Point3D{X: 10.0, Y: 10.0, Z: 0.0}
		hand.Points[MiddleMCP] = Point3D{X: 13.0, Y: 14.0, Z: 0.0}

		normalized := hand.Normalize()

		dist := distance3D(Point3D{}, normalized.Points[MiddleMCP])
		if math.Abs(dist-1.0) > epsilon {
			t.Errorf("expected wrist to middle MCP distance of 1.0, got %f", dist)
		}
	})

	t.Run("nil receiver returns nil", func(t *testing.T) {
		var hand *HandLandmarks
		if hand.Normalize() != nil {
			t.Error("expected nil result for nil receiver")
		}
	})
}

func TestDistance(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 5}
	b := Point3D{X: 3, Y: 4, Z: -5}

	// Planar distance ignores z
	if d := Distance(a, b); math.Abs(d-5.0) > epsilon {
		t.Errorf("expected planar distance 5.0, got %f", d)
	}
}

func TestHandSize(t *testing.T) {
	hand := OpenPalmLandmarks()
	size := hand.HandSize()
	if size <= 0 {
		t.Errorf("expected positive hand size, got %f", size)
	}

	// Scaling the hand by 2x about the origin doubles the hand size
	scaled := hand
	for i := range scaled.Points {
		scaled.Points[i].X *= 2
		scaled.Points[i].Y *= 2
	}
	if got := scaled.HandSize(); math.Abs(got-2*size) > epsilon {
		t.Errorf("expected scaled hand size %f, got %f", 2*size, got)
	}
}

func TestPalmCenter(t *testing.T) {
	hand := FistLandmarks()
	center := hand.PalmCenter()

	// Palm center must sit inside the hand's bounding box
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range hand.Points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if center.X < minX || center.X > maxX || center.Y < minY || center.Y > maxY {
		t.Errorf("palm center (%f, %f) outside hand bounds", center.X, center.Y)
	}
}

func TestTranslate(t *testing.T) {
	hand := PointingLandmarks()
	moved := Translate(hand, 0.1, -0.05)

	for i := range hand.Points {
		if math.Abs(moved.Points[i].X-hand.Points[i].X-0.1) > epsilon {
			t.Fatalf("landmark %d X not translated", i)
		}
		if math.Abs(moved.Points[i].Y-hand.Points[i].Y+0.05) > epsilon {
			t.Fatalf("landmark %d Y not translated", i)
		}
	}

	// Original must be untouched
	if hand.Points[IndexTip] != PointingLandmarks().Points[IndexTip] {
		t.Error("Translate modified the original hand")
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{PointingLandmarks()})

		hands, err := mock.Detect(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		wantErr := errors.New("detector offline")
		mock.SetError(wantErr)

		if _, err := mock.Detect(nil); !errors.Is(err, wantErr) {
			t.Errorf("expected configured error, got %v", err)
		}
	})
}

func TestNewMediaPipeDetector_KeepsConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0755); err != nil {
		t.Fatalf("failed to create scripts dir: %v", err)
	}
	script := filepath.Join(dir, "scripts", "mediapipe_service.py")
	if err := os.WriteFile(script, []byte("# placeholder\n"), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	t.Chdir(dir)

	cfg := Config{MaxHands: 2, MinConfidence: 0.8, MinTrackingConf: 0.6}
	d, err := NewMediaPipeDetector(cfg)
	if err != nil {
		t.Fatalf("NewMediaPipeDetector() error = %v", err)
	}
	defer d.Close()

	if d.config != cfg {
		t.Errorf("detector config = %+v, want %+v", d.config, cfg)
	}
}
