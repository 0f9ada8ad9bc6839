package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/keerthipriyaa029/gesturemouse/internal/detector"
	"github.com/keerthipriyaa029/gesturemouse/internal/engine"
	"github.com/keerthipriyaa029/gesturemouse/internal/gesture"
	"github.com/keerthipriyaa029/gesturemouse/internal/inject"
	"github.com/keerthipriyaa029/gesturemouse/internal/plugin"
)

// runPipeline is the main loop that processes frames from the camera.
//
// Pipeline stages:
//  1. Start in idle mode at the idle frame rate
//  2. On motion, switch to the active frame rate
//  3. Run hand detection and classify the first hand
//  4. Feed the classification through the engine and dispatch its actions
//  5. After 2s without motion, drop back to idle
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(a.config.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.config.ActiveFPS)
					frameInterval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active frame rate")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > idleTimeout {
					activeMode = false
					a.camera.SetFPS(a.config.IdleFPS)
					frameInterval = time.Second / time.Duration(a.config.IdleFPS)
					ticker.Reset(frameInterval)
					// Treat the transition as hand loss so no stale
					// classifier or filter state survives the pause.
					a.processHand(nil)
					log.Println("Switched to idle frame rate")
				}
			}

			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			var hand *detector.HandLandmarks
			if len(hands) > 0 {
				hand = &hands[0]
			}

			a.processHand(hand)
		}
	}
}

// processHand classifies one frame's hand, runs the engine and dispatches
// the resulting actions. A nil hand is a no-detection frame.
func (a *App) processHand(hand *detector.HandLandmarks) []engine.Action {
	res := a.classifier.Classify(hand)
	actions := a.engine.Process(hand, res)

	if res.Label != gesture.LabelNone {
		a.mu.Lock()
		a.lastGesture = res.Label
		a.mu.Unlock()
	}

	drew := false
	for _, act := range actions {
		a.dispatch(act)
		if act.Kind == engine.ActionDraw {
			drew = true
		}
	}

	// Lifting the drawing gesture ends the stroke.
	if a.drawing && !drew {
		if err := a.injector.EndDrag(); err != nil {
			log.Printf("Error ending drag: %v", err)
		}
	}
	a.drawing = drew

	return actions
}

// dispatch delivers one action to the injector, falling back to plugin
// bindings for keys the injector cannot serve.
func (a *App) dispatch(act engine.Action) {
	var err error

	switch act.Kind {
	case engine.ActionMove:
		err = a.injector.MoveTo(act.X, act.Y)
	case engine.ActionDraw:
		err = a.injector.DragTo(act.X, act.Y)
	case engine.ActionClick:
		err = a.injector.Click(act.Button, act.X, act.Y)
	case engine.ActionScroll:
		err = a.injector.Scroll(act.Delta)
	case engine.ActionKey:
		err = a.injector.KeyTap(act.Key)
		if errors.Is(err, inject.ErrUnsupportedKey) {
			err = a.executeBinding(act)
		}
	case engine.ActionModeSwitch:
		log.Printf("Mode switched to %s", act.Mode)
	}

	if err != nil {
		log.Printf("Error dispatching %s action: %v", act.Kind, err)
	}

	if a.config.Publisher != nil {
		a.config.Publisher.Publish("action", act)
	}

	a.mu.RLock()
	callback := a.onAction
	a.mu.RUnlock()
	if callback != nil {
		callback(act)
	}
}

// executeBinding runs the plugin action bound to the gesture that produced
// the action.
func (a *App) executeBinding(act engine.Action) error {
	if a.config.Store == nil {
		return fmt.Errorf("no binding store for key %q", act.Key)
	}

	binding, err := a.config.Store.Bindings().GetByGesture(string(act.Gesture))
	if err != nil {
		return fmt.Errorf("looking up binding for %s: %w", act.Gesture, err)
	}
	if binding == nil {
		return fmt.Errorf("no binding for gesture %s (key %q)", act.Gesture, act.Key)
	}

	plug, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		return fmt.Errorf("plugin %s: %w", binding.PluginName, err)
	}

	resp, err := a.pluginExec.Execute(plug, &plugin.Request{
		Action:  binding.ActionName,
		Gesture: string(act.Gesture),
		Config:  binding.Config,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s action %s failed: %s", binding.PluginName, binding.ActionName, resp.Error)
	}
	return nil
}
