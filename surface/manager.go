package surface

import (
	"fmt"
	"time"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/log"
)

const (
	resumeNudgeRetries = 3
	resumeNudgeDelay   = 250 * time.Millisecond
)

// Manager owns which surface currently holds the engine attachment.
// All methods must run on the session dispatcher; the manager itself does
// no locking.
type Manager struct {
	eng      engine.Engine
	hosts    map[Surface]Host
	state    func() engine.PlaybackState
	schedule func(delay time.Duration, task func())
	active   Surface

	// resumeOnExit remembers whether playback was live when a secondary
	// surface took over, so an exit handoff knows whether a non-playing
	// engine is a race to nudge or the user's own pause.
	resumeOnExit bool
}

// NewManager creates a manager with the engine attached to Main.
// Surfaces without an entry in hosts get a NoopHost. The state callback
// reports the controller's current playback state for post-handoff checks.
// The schedule hook runs a task after a delay back on the dispatcher; it
// carries the follow-up resume nudges so no manager method ever sleeps.
func NewManager(
	eng engine.Engine,
	hosts map[Surface]Host,
	state func() engine.PlaybackState,
	schedule func(delay time.Duration, task func()),
) *Manager {
	all := map[Surface]Host{
		Main:       NoopHost{},
		Fullscreen: NoopHost{},
		Floating:   NoopHost{},
	}
	for s, h := range hosts {
		all[s] = h
	}

	return &Manager{
		eng:      eng,
		hosts:    all,
		state:    state,
		schedule: schedule,
		active:   Main,
	}
}

// Active returns the surface currently owning the engine attachment.
func (m *Manager) Active() Surface {
	return m.active
}

// EnterFullscreen hands the engine to the fullscreen surface. If the
// floating surface is active it is fully exited first.
func (m *Manager) EnterFullscreen() error {
	if m.active == Fullscreen {
		return nil
	}

	if m.active == Floating {
		if err := m.ExitFloating(); err != nil {
			return err
		}
	}

	return m.enter(Fullscreen)
}

// ExitFullscreen returns the engine to the main surface. Calling it while
// fullscreen is not active is a no-op, so every close path can funnel
// through here safely.
func (m *Manager) ExitFullscreen() error {
	return m.exit(Fullscreen)
}

// EnterFloating hands the engine to the compact always-on-top surface. If
// the fullscreen surface is active it is fully exited first.
func (m *Manager) EnterFloating() error {
	if m.active == Floating {
		return nil
	}

	if m.active == Fullscreen {
		if err := m.ExitFullscreen(); err != nil {
			return err
		}
	}

	return m.enter(Floating)
}

// ExitFloating returns the engine to the main surface; a no-op when the
// floating surface is not active.
func (m *Manager) ExitFloating() error {
	return m.exit(Floating)
}

// enter runs the attach-new-before-release-old handoff from Main to a
// secondary surface. On attach failure the previous surface keeps the
// engine and the half-built window is torn down.
func (m *Manager) enter(target Surface) error {
	host := m.hosts[target]

	if m.state != nil {
		m.resumeOnExit = m.state() == engine.Playing
	}

	if err := host.Prepare(); err != nil {
		return fmt.Errorf("prepare %s: %w", target, err)
	}

	if err := m.eng.Present(presentationFor(target)); err != nil {
		_ = host.Teardown()
		return fmt.Errorf("attach %s: %w", target, err)
	}

	// Only after the new attachment succeeded does the old surface let go.
	if err := host.Activate(); err != nil {
		log.Warnf("activate %s window: %s", target, err)
	}
	if err := m.hosts[m.active].Deactivate(); err != nil {
		log.Warnf("deactivate %s window: %s", m.active, err)
	}

	m.active = target
	return nil
}

// exit runs the reverse handoff back to Main: reattach the engine to the
// main element, restore main's visibility, and only then tear down the
// secondary window.
func (m *Manager) exit(from Surface) error {
	if m.active != from {
		return nil
	}

	if err := m.eng.Present(presentationFor(Main)); err != nil {
		return fmt.Errorf("reattach main: %w", err)
	}

	if err := m.hosts[Main].Activate(); err != nil {
		log.Warnf("restore main window: %s", err)
	}
	if err := m.hosts[from].Teardown(); err != nil {
		log.Warnf("teardown %s window: %s", from, err)
	}

	m.active = Main

	m.nudgeResume()
	return nil
}

// nudgeResume issues the first of a bounded number of resume attempts after
// a handoff left playback off. Follow-up attempts are rearmed as delayed
// dispatcher tasks, so the dispatcher keeps draining between nudges and each
// attempt observes whatever state changes landed in the meantime.
// Best-effort against transient attachment races; gives up silently.
func (m *Manager) nudgeResume() {
	if m.state == nil || !m.resumeOnExit {
		return
	}

	m.nudge(0)
}

func (m *Manager) nudge(attempt int) {
	if m.state() == engine.Playing {
		return
	}

	if err := m.eng.Play(); err != nil {
		log.Warnf("resume nudge: %s", err)
	}

	if attempt+1 >= resumeNudgeRetries || m.schedule == nil {
		return
	}

	m.schedule(resumeNudgeDelay, func() { m.nudge(attempt + 1) })
}
