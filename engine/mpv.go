package engine

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	eventBufferSize   = 16
)

// MPV implements the Engine interface using mpv's JSON-IPC protocol.
// A single mpv process is kept alive across channel switches; new sources
// replace the current one in place so the window never flickers away.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	events     chan Event
	listener   *eventListener

	mu      sync.Mutex // protects process state
	ipcMu   sync.Mutex // serializes socket writes
	started bool
	closing bool

	closeOnce  sync.Once
	eventsOnce sync.Once
}

// NewMPV creates a new MPV engine instance (does not start the process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
		events: make(chan Event, eventBufferSize),
	}
}

// OpenDirect loads the URL as a direct media resource.
// The first call spawns the mpv process; later calls load the new source
// into the running instance via IPC.
func (m *MPV) OpenDirect(rawURL string, title string, headers map[string]string) (Handle, error) {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return Handle{}, fmt.Errorf("invalid media target: %w", err)
	}

	handle := Handle{URL: safeURL, Title: sanitizeTitle(title)}

	if m.Running() {
		if err := m.load(handle, headers); err != nil {
			return Handle{}, err
		}
		return handle, nil
	}

	if err := m.start(handle, headers); err != nil {
		return Handle{}, err
	}

	return handle, nil
}

// load replaces the current source of a running instance.
func (m *MPV) load(handle Handle, headers map[string]string) error {
	m.listener.sourceReplaced(handle)

	if headerString := buildHeaderString(headers); headerString != "" {
		if err := m.Set("http-header-fields", headerString); err != nil {
			return err
		}
	}

	if err := m.Set("force-media-title", handle.Title); err != nil {
		log.Warnf("set media title: %s", err)
	}

	_, err := m.sendCommand([]interface{}{"loadfile", handle.URL, "replace"})
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}

	// The pause property survives loadfile; a switch made while paused would
	// otherwise open the new channel frozen.
	if err := m.Set("pause", false); err != nil {
		log.Warnf("unpause after load: %s", err)
	}

	return nil
}

// start spawns a fresh mpv process playing the handle's URL.
func (m *MPV) start(handle Handle, headers map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Random socket path under os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/).
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("zapp-%x.sock", randomBytes))
	}

	// Pass only the socket, title and URL. Do NOT pass --vo, --profile or
	// --hwdec; the user's mpv.conf stays in charge of rendering.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", handle.Title),
		fmt.Sprintf("--title=%s", handle.Title), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=no",
	}

	if headerString := buildHeaderString(headers); headerString != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", headerString))
	}

	args = append(args, handle.URL)

	binary := viper.GetString(key.Player)
	if binary == "" {
		binary = "mpv"
	}
	m.cmd = exec.Command(binary, args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.started = true

	// Reap the process to prevent zombies.
	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd, m.exited)

	if err := m.waitForSocket(); err != nil {
		// Socket never became ready; kill the orphaned process.
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = newEventListener(m.socketPath, handle, m.emit)
	if err := m.listener.start(); err != nil {
		return fmt.Errorf("event listener: %w", err)
	}

	go m.watchExit(m.exited)

	return nil
}

// watchExit surfaces an unexpected engine death as a failure event and
// closes the event stream once the process is gone.
func (m *MPV) watchExit(exited chan struct{}) {
	<-exited

	m.mu.Lock()
	closing := m.closing
	m.mu.Unlock()

	if !closing {
		m.emit(EngineFailed{Code: "engine-exited", Message: "playback engine exited unexpectedly"})
	}

	m.eventsOnce.Do(func() { close(m.events) })
}

// emit delivers a normalized event, dropping it if the consumer is gone.
func (m *MPV) emit(event Event) {
	select {
	case m.events <- event:
	default:
		log.Warnf("dropping engine event %T: consumer not draining", event)
	}
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Play resumes playback of the current source.
func (m *MPV) Play() error {
	return m.Set("pause", false)
}

// Pause suspends playback of the current source.
func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

// Stop unloads the current source but keeps the engine idle and alive.
func (m *MPV) Stop() error {
	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// Present applies window presentation settings to the mpv window.
func (m *MPV) Present(p Presentation) error {
	if err := m.Set("fullscreen", p.Fullscreen); err != nil {
		return err
	}
	if err := m.Set("ontop", p.OnTop); err != nil {
		return err
	}
	if err := m.Set("border", p.Border); err != nil {
		return err
	}
	if p.Geometry != "" {
		if err := m.Set("geometry", p.Geometry); err != nil {
			return err
		}
	}
	return nil
}

// Events returns the stream of normalized lifecycle events.
func (m *MPV) Events() <-chan Event {
	return m.events
}

// Running reports whether the mpv process is alive.
func (m *MPV) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Set assigns an mpv property via IPC.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closing = true
		started := m.started
		m.mu.Unlock()

		if m.listener != nil {
			m.listener.stop()
		}

		if !started {
			m.eventsOnce.Do(func() { close(m.events) })
			return
		}

		// Try graceful quit via IPC first.
		_, _ = m.sendCommand([]interface{}{"quit"})

		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(m.cmd)
		}

		if m.socketPath != "" {
			_ = os.Remove(m.socketPath)
		}
	})

	return nil
}

// buildHeaderString renders custom HTTP headers into mpv's comma-separated
// http-header-fields format.
func buildHeaderString(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	var builder strings.Builder
	for k, v := range headers {
		if builder.Len() > 0 {
			builder.WriteString(",")
		}
		// Commas delimit fields in mpv's format, so escape them in values.
		val := strings.ReplaceAll(v, ",", "%2C")
		builder.WriteString(fmt.Sprintf("%s: %s", k, val))
	}
	return builder.String()
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
// Prevents flag injection from untrusted playlist content.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "rtmp", "rtsp", "udp":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
