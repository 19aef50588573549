package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/noriapi/prevent-alt-win-menu/config"
	"github.com/noriapi/prevent-alt-win-menu/keyevent"
	"github.com/noriapi/prevent-alt-win-menu/platform"
	"github.com/noriapi/prevent-alt-win-menu/storage"
	"github.com/noriapi/prevent-alt-win-menu/suppress"
	"github.com/noriapi/prevent-alt-win-menu/systray"
	"github.com/noriapi/prevent-alt-win-menu/tracker"
	"github.com/noriapi/prevent-alt-win-menu/web"
)

// Agent wires the suppression pipeline to its surroundings: the policy
// from the config file, the decision database, the dashboard, and the
// tray controls.
type Agent struct {
	cfg      *config.Config
	db       *storage.DB
	web      *web.Server
	tray     *systray.Manager
	dummyKey keyevent.VirtualKey
	paused   atomic.Bool
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	dummyKey, err := platform.VKFromName(cfg.Suppress.DummyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dummy key: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open decision database: %w", err)
	}

	a := &Agent{
		cfg:      cfg,
		db:       db,
		dummyKey: dummyKey,
	}

	trayPort := 0
	if cfg.Web.Enabled {
		a.web = web.NewServer(db, cfg, a.paused.Load)
		trayPort = cfg.Web.Port
	}
	a.tray = systray.NewManager(trayPort, nil, a.setPaused)

	return a, nil
}

// Run installs the keyboard hook and blocks until the context is
// cancelled or the user quits from the tray. The hook itself has no
// teardown; it is released by the OS at process exit.
func (a *Agent) Run(ctx context.Context) error {
	if err := suppress.Start(suppress.Config{
		OnReleased: a.onReleased,
		OnDecision: a.onDecision,
	}); err != nil {
		a.db.Close()
		return fmt.Errorf("failed to start suppression: %w", err)
	}

	slog.Info("Suppression active",
		"win", a.cfg.Triggers.Win,
		"alt", a.cfg.Triggers.Alt,
		"mode", a.cfg.Suppress.Mode,
		"dummy_key", a.cfg.Suppress.DummyKey)

	if a.web != nil {
		go func() {
			if err := a.web.Start(); err != nil {
				slog.Error("Web server stopped", "error", err)
			}
		}()
	}

	go a.tray.Run()

	select {
	case <-ctx.Done():
		a.tray.Stop()
	case <-a.tray.WaitForQuit():
	}

	return a.db.Close()
}

// onReleased is the decision policy built from configuration. It runs
// on the processing goroutine, once per completed hold.
func (a *Agent) onReleased(hold tracker.Hold) (keyevent.VirtualKey, bool) {
	if a.paused.Load() {
		return 0, false
	}

	trigger, ok := keyevent.Classify(hold.Press)
	if ok {
		if trigger == keyevent.Win && !a.cfg.Triggers.Win {
			return 0, false
		}
		if trigger == keyevent.Alt && !a.cfg.Triggers.Alt {
			return 0, false
		}
	}

	if a.cfg.Suppress.Mode == config.ModeThreshold && hold.Duration() <= a.cfg.Threshold() {
		return 0, false
	}

	return a.dummyKey, true
}

// onDecision records every completed hold and pushes it to dashboard
// clients.
func (a *Agent) onDecision(d suppress.Decision) {
	rec := &storage.Decision{
		Trigger:    d.Trigger.String(),
		DurationMs: d.Duration().Milliseconds(),
		Suppressed: d.Suppressed,
	}
	if d.Err != nil {
		rec.ErrorMessage = d.Err.Error()
	}
	if err := a.db.SaveDecision(rec); err != nil {
		slog.Error("Failed to record decision", "error", err)
	}

	if a.web != nil {
		a.web.BroadcastDecision(d)
	}
}

// setPaused flips the suppression switch from the tray menu.
func (a *Agent) setPaused(paused bool) {
	a.paused.Store(paused)
	status := "running"
	if paused {
		status = "paused"
	}
	if a.web != nil {
		a.web.BroadcastStatus(status)
	}
}
