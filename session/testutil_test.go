package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeEngine records commands and lets tests inject lifecycle events.
type fakeEngine struct {
	mu        sync.Mutex
	opened    []string
	stops     int
	plays     int
	pauses    int
	failOpen  bool
	openDelay time.Duration
	events    chan engine.Event
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{events: make(chan engine.Event, 16)}
}

func (e *fakeEngine) OpenDirect(url, title string, _ map[string]string) (engine.Handle, error) {
	if e.openDelay > 0 {
		time.Sleep(e.openDelay)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failOpen {
		return engine.Handle{}, errors.New("could not open stream")
	}

	e.opened = append(e.opened, url)
	return engine.Handle{URL: url, Title: title}, nil
}

func (e *fakeEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.plays++
	return nil
}

func (e *fakeEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauses++
	return nil
}

func (e *fakeEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stops++
	return nil
}

func (e *fakeEngine) Present(engine.Presentation) error { return nil }
func (e *fakeEngine) Events() <-chan engine.Event       { return e.events }
func (e *fakeEngine) Running() bool                     { return true }
func (e *fakeEngine) Close() error                      { return nil }

func (e *fakeEngine) openedURLs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.opened...)
}

func (e *fakeEngine) stopCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stops
}

// manifestServer serves an HLS-looking manifest, delayed per path.
func manifestServer(delays map[string]time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay, ok := delays[r.URL.Path]; ok {
			time.Sleep(delay)
		}
		_, _ = w.Write([]byte("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1280000\nchunk.m3u8\n"))
	}))
}

// eventually polls the condition until it holds or the deadline passes.
func eventually(condition func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return condition()
}
