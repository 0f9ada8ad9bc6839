// Package app wires the capture, detection, classification and injection
// stages into the running gesture mouse pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/keerthipriyaa029/gesturemouse/internal/capture"
	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/engine"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
	"github.com/keerthipriyaa029/gesturemouse/internal/inject"
	"github.com/keerthipriyaa029/gesturemouse/internal/plugin"
	"github.com/keerthipriyaa029/gesturemouse/internal/smoothing"
	"github.com/keerthipriyaa029/gesturemouse/internal/store"
)

// idleTimeout is how long the pipeline waits without motion before dropping
// back to the idle frame rate.
const idleTimeout = 2 * time.Second

// pluginTimeout bounds a single plugin invocation.
const pluginTimeout = 5 * time.Second

// Publisher receives pipeline events. The HTTP server's WebSocket hub
// satisfies this.
type Publisher interface {
	Publish(event string, payload any)
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64

	// ActiveFPS and IdleFPS drive the motion-gated frame rates.
	ActiveFPS int
	IdleFPS   int

	Classifier gesture.Config
	Engine     engine.Config
	Smoother   smoothing.Smoother

	// Detector configures the hand detector. The zero value selects the
	// detector defaults.
	Detector detector.Config

	// Injector delivers actions to the OS. Nil selects robotgo.
	Injector inject.Injector

	// Publisher receives action and mode events. Optional.
	Publisher Publisher
}

// App orchestrates the full pipeline from camera frames to injected input.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	engine     *engine.Engine
	injector   inject.Injector
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	enabled bool
	drawing bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	lastGesture gesture.Label
	onAction    func(engine.Action)
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = 15
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = 2
	}
	if config.Detector == (detector.Config{}) {
		config.Detector = detector.DefaultConfig()
	}

	classifier, err := gesture.NewClassifier(config.Classifier)
	if err != nil {
		return nil, err
	}

	smoother := config.Smoother
	if smoother == nil {
		smoother, err = smoothing.New(smoothing.MethodKalman, 10)
		if err != nil {
			return nil, err
		}
	}

	eng, err := engine.New(config.Engine, smoother)
	if err != nil {
		return nil, err
	}

	injector := config.Injector
	if injector == nil {
		injector = inject.NewRobotgo()
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID, config.IdleFPS),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: classifier,
		engine:     eng,
		injector:   injector,
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(pluginTimeout),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables gesture tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnAction registers a callback invoked for every emitted action, after it
// has been dispatched. Used by the tray to mirror pipeline state.
func (a *App) OnAction(fn func(engine.Action)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onAction = fn
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(a.config.IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Gesture pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Gesture pipeline stopped")
}

// Mode returns the engine's active mode.
func (a *App) Mode() engine.Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine.Mode()
}

// LastGesture returns the most recent non-idle classification.
func (a *App) LastGesture() gesture.Label {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastGesture
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
