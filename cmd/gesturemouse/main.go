package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/keerthipriyaa029/gesturemouse/internal/app"
	"github.com/keerthipriyaa029/gesturemouse/internal/config"
	"github.com/keerthipriyaa029/gesturemouse/internal/engine"
	"github.com/keerthipriyaa029/gesturemouse/internal/inject"
	"github.com/keerthipriyaa029/gesturemouse/internal/server"
	"github.com/keerthipriyaa029/gesturemouse/internal/store"
	"github.com/keerthipriyaa029/gesturemouse/internal/tray"
)

func main() {
	fmt.Println("GestureMouse - Hand Gesture Mouse Control")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".gesturemouse")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "gesturemouse.db")
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	smoother, err := cfg.Smoother()
	if err != nil {
		log.Fatalf("Failed to build smoother: %v", err)
	}

	screenW, screenH := inject.ScreenSize()

	var a *app.App
	srv := server.New(server.Config{
		Store: st,
		State: func() server.State {
			return server.State{
				Running:     a.IsEnabled(),
				Mode:        string(a.Mode()),
				LastGesture: string(a.LastGesture()),
				FPS:         a.Camera().FPS(),
			}
		},
	})

	a, err = app.New(app.Config{
		Store:      st,
		PluginDir:  findPluginDir(dataDir),
		CameraID:   cfg.CameraIndex,
		ActiveFPS:  cfg.ActiveFPS,
		IdleFPS:    cfg.IdleFPS,
		Classifier: cfg.ClassifierConfig(),
		Engine:     cfg.EngineConfig(screenW, screenH),
		Smoother:   smoother,
		Detector:   cfg.DetectorConfig(),
		Publisher:  srv.Events(),
	})
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	go func() {
		fmt.Printf("Starting API server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.Tray {
		runTray(a, srv)
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
}

// runTray wires the pipeline into the system tray and blocks until quit.
func runTray(a *app.App, srv *server.Server) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	a.OnAction(func(act engine.Action) {
		if act.Kind == engine.ActionModeSwitch {
			t.SetMode(string(act.Mode))
			srv.Events().Publish("mode", string(act.Mode))
		}
		if act.Gesture != "" {
			t.SetLastGesture(string(act.Gesture))
		}
	})

	t.Run()
}

// findPluginDir searches for the plugins directory in common locations.
// It checks "plugins" and "../plugins" relative to the working directory,
// then <dataDir>/plugins. Returns the first existing directory or the
// dataDir default if none found.
func findPluginDir(dataDir string) string {
	relativePaths := []string{"plugins", "../plugins"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}
	return filepath.Join(dataDir, "plugins")
}
