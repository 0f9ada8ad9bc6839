package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/keerthipriyaa029/gesturemouse/internal/capture"
	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/engine"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
	"github.com/keerthipriyaa029/gesturemouse/internal/inject"
	"github.com/keerthipriyaa029/gesturemouse/internal/smoothing"
	"github.com/keerthipriyaa029/gesturemouse/internal/store"
)

// testEngineConfig keeps debounce and cooldown windows short so scenarios
// fit in a handful of frames.
func testEngineConfig() engine.Config {
	return engine.Config{
		ScreenWidth:         1920,
		ScreenHeight:        1080,
		FrameMargin:         0.15,
		DebounceFrames:      2,
		ClickCooldownFrames: 3,
		KeyCooldownFrames:   2,
		LossTimeoutFrames:   4,
		ScrollScale:         100,
	}
}

func newTestApp(t *testing.T, config Config) (*App, *inject.Recorder) {
	t.Helper()

	rec := inject.NewRecorder()
	config.Injector = rec
	config.Classifier = gesture.DefaultConfig()
	config.Engine = testEngineConfig()

	smoother, err := smoothing.New(smoothing.MethodNone, 0)
	if err != nil {
		t.Fatalf("smoothing.New() error = %v", err)
	}
	config.Smoother = smoother

	app, err := New(config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return app, rec
}

func countPrefix(events []inject.Event, prefix string) int {
	n := 0
	for _, e := range events {
		if strings.HasPrefix(string(e), prefix) {
			n++
		}
	}
	return n
}

func TestPipeline_MoveAndClick(t *testing.T) {
	app, rec := newTestApp(t, Config{})

	pointing := detector.PointingLandmarks()
	pinch := detector.PinchLandmarks()

	for i := 0; i < 3; i++ {
		app.processHand(&pointing)
	}
	if got := countPrefix(rec.Events, "move "); got != 3 {
		t.Fatalf("move events = %d, want 3: %v", got, rec.Events)
	}

	// A held pinch clicks exactly once.
	for i := 0; i < 3; i++ {
		app.processHand(&pinch)
	}
	if got := countPrefix(rec.Events, "click left"); got != 1 {
		t.Errorf("click events = %d, want 1: %v", got, rec.Events)
	}

	// Release past the cooldown, then a fresh pinch clicks again.
	for i := 0; i < 3; i++ {
		app.processHand(&pointing)
	}
	app.processHand(&pinch)
	if got := countPrefix(rec.Events, "click left"); got != 2 {
		t.Errorf("click events after re-pinch = %d, want 2: %v", got, rec.Events)
	}

	if app.LastGesture() != gesture.LabelLeftClick {
		t.Errorf("LastGesture() = %s, want %s", app.LastGesture(), gesture.LabelLeftClick)
	}
}

func TestPipeline_DrawStrokeLifecycle(t *testing.T) {
	app, rec := newTestApp(t, Config{})

	palm := detector.OpenPalmLandmarks()
	pointing := detector.PointingLandmarks()
	fist := detector.FistLandmarks()

	// Sustained open palm flips the engine into draw mode.
	app.processHand(&palm)
	app.processHand(&palm)
	if app.Mode() != engine.ModeDraw {
		t.Fatalf("Mode() = %s, want %s", app.Mode(), engine.ModeDraw)
	}

	for i := 0; i < 3; i++ {
		app.processHand(&pointing)
	}
	if got := countPrefix(rec.Events, "drag start"); got != 1 {
		t.Fatalf("drag start events = %d, want 1: %v", got, rec.Events)
	}

	// Losing the hand ends the stroke.
	app.processHand(nil)
	if got := countPrefix(rec.Events, "drag end"); got != 1 {
		t.Errorf("drag end events = %d, want 1: %v", got, rec.Events)
	}

	// Sustained fist flips back to control; no new stroke starts.
	app.processHand(&fist)
	app.processHand(&fist)
	if app.Mode() != engine.ModeControl {
		t.Errorf("Mode() = %s, want %s", app.Mode(), engine.ModeControl)
	}
	app.processHand(&pointing)
	if got := countPrefix(rec.Events, "drag start"); got != 1 {
		t.Errorf("drag start events after mode switch = %d, want 1: %v", got, rec.Events)
	}
}

func TestPipeline_BrightnessPluginFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins not supported on Windows")
	}

	pluginDir := t.TempDir()
	marker := filepath.Join(pluginDir, "invoked")
	writeBrightnessPlugin(t, pluginDir, marker)

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	binding := &store.Binding{
		Gesture:    string(gesture.LabelThreeFinger),
		PluginName: "system-control",
		ActionName: "brightness_up",
		Enabled:    true,
	}
	if err := s.Bindings().Create(binding); err != nil {
		t.Fatalf("Bindings().Create() error = %v", err)
	}

	app, rec := newTestApp(t, Config{Store: s, PluginDir: pluginDir})
	rec.FailKeys["brightness_up"] = true

	if err := app.DiscoverPlugins(); err != nil {
		t.Fatalf("DiscoverPlugins() error = %v", err)
	}

	three := detector.ThreeFingerLandmarks()
	app.processHand(&three)

	if countPrefix(rec.Events, "key brightness_up") != 0 {
		t.Errorf("brightness key should not reach the injector: %v", rec.Events)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("plugin was not invoked: %v", err)
	}
}

func TestPipeline_ActionFanout(t *testing.T) {
	pub := &recordingPublisher{}
	app, _ := newTestApp(t, Config{Publisher: pub})

	var kinds []engine.ActionKind
	app.OnAction(func(act engine.Action) {
		kinds = append(kinds, act.Kind)
	})

	pointing := detector.PointingLandmarks()
	app.processHand(&pointing)

	if len(kinds) != 1 || kinds[0] != engine.ActionMove {
		t.Errorf("callback kinds = %v, want [move]", kinds)
	}
	if len(pub.events) != 1 || pub.events[0] != "action" {
		t.Errorf("published events = %v, want [action]", pub.events)
	}
}

func TestNew_DetectorConfig(t *testing.T) {
	custom := detector.Config{MaxHands: 2, MinConfidence: 0.8, MinTrackingConf: 0.6}
	app, _ := newTestApp(t, Config{Detector: custom})
	if app.config.Detector != custom {
		t.Errorf("detector config = %+v, want %+v", app.config.Detector, custom)
	}

	app, _ = newTestApp(t, Config{})
	if app.config.Detector != detector.DefaultConfig() {
		t.Errorf("zero detector config should resolve to defaults, got %+v", app.config.Detector)
	}
}

func TestApp_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, _ := newTestApp(t, Config{IdleFPS: 2, ActiveFPS: 15})
	app.camera = capture.NewMockCamera(nil, false)
	app.SetDetector(detector.NewMockDetector())
	app.SetEnabled(true)

	if err := app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := app.Camera().FPS(); got != 2 {
		t.Errorf("FPS() = %d, want idle rate 2", got)
	}

	// Let the pipeline loop tick at least once before shutdown.
	time.Sleep(100 * time.Millisecond)
	app.Stop()

	if app.Camera().IsOpen() {
		t.Error("camera still open after Stop()")
	}
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(event string, payload any) {
	p.events = append(p.events, event)
}

func writeBrightnessPlugin(t *testing.T, pluginDir, marker string) {
	t.Helper()

	dir := filepath.Join(pluginDir, "system-control")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	manifest := map[string]any{
		"name":        "system-control",
		"version":     "1.0.0",
		"description": "System volume and brightness control",
		"executable":  "run.sh",
		"actions":     []string{"brightness_up", "brightness_down"},
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	script := "#!/bin/sh\ncat > /dev/null\ntouch " + marker + "\necho '{\"success\": true}'\n"
	if err := os.WriteFile(filepath.Join(dir, "run.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}
