package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"
)

// Manager manages the system tray icon and menu
type Manager struct {
	webPort  int
	iconData []byte
	onPause  func(paused bool)
	quit     chan struct{}
}

// NewManager creates a new systray manager. A webPort of 0 means the
// dashboard is disabled and no menu entry is shown for it. onPause is
// invoked with the new paused state whenever the user toggles
// suppression; it may be nil.
func NewManager(webPort int, iconData []byte, onPause func(paused bool)) *Manager {
	return &Manager{
		webPort:  webPort,
		iconData: iconData,
		onPause:  onPause,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// dashboardEnabled reports whether a dashboard exists to link to.
func (m *Manager) dashboardEnabled() bool {
	return m.webPort > 0
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	// Set icon
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	// Set tooltip
	systray.SetTitle("prevent-alt-win-menu")
	systray.SetTooltip("Suppressing the Alt / Win menu")

	// Add menu items
	mPause := systray.AddMenuItemCheckbox("Pause suppression", "Temporarily allow the menu again", false)
	var openClicks chan struct{}
	if m.dashboardEnabled() {
		mOpenWebUI := systray.AddMenuItem("Open Dashboard", "Open the decision dashboard")
		openClicks = mOpenWebUI.ClickedCh
	}
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit prevent-alt-win-menu")

	// Handle menu clicks
	go func() {
		for {
			select {
			case <-mPause.ClickedCh:
				if mPause.Checked() {
					mPause.Uncheck()
					systray.SetTooltip("Suppressing the Alt / Win menu")
				} else {
					mPause.Check()
					systray.SetTooltip("Suppression paused")
				}
				slog.Info("Suppression toggled from system tray", "paused", mPause.Checked())
				if m.onPause != nil {
					m.onPause(mPause.Checked())
				}
			case <-openClicks:
				m.openWebUI()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openWebUI opens the dashboard in the default browser
func (m *Manager) openWebUI() {
	url := fmt.Sprintf("http://localhost:%d", m.webPort)
	slog.Info("Opening dashboard", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open dashboard", "error", err)
	}
}
