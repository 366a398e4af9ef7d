// Package progress provides a terminal progress display for the directory
// scan.
package progress

import (
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Manager tracks scan progress across all evaluation passes.
type Manager struct {
	enabled bool
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
}

// NewManager creates a progress manager for total directory evaluations
// (directories × passes). When disabled, every method is a no-op.
func NewManager(total int, enabled bool) *Manager {
	m := &Manager{enabled: enabled && total > 0}
	if !m.enabled {
		return m
	}

	m.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Collecting results"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("dirs"),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	return m
}

// IsEnabled returns whether the progress display is active.
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// Step records one evaluated directory.
func (m *Manager) Step() {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.bar.Add(1)
}

// Finish completes the display and clears the bar from the terminal.
func (m *Manager) Finish() {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.bar.Finish()
}
