// Package session owns the long-lived player state: the channel catalog,
// the playback controller, the surface manager and the dispatcher that
// serializes every mutation of them. There are no ambient singletons; the
// whole player hangs off one Session value.
package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/auth"
	"github.com/zapp-cli/zapp/catalog"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/network"
	"github.com/zapp-cli/zapp/overlay"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/surface"
)

// Session is the explicit player context passed to every component.
type Session struct {
	Catalog    *catalog.Catalog
	Controller *Controller
	Surfaces   *surface.Manager

	dispatcher *Dispatcher
	eng        engine.Engine

	// fetchGen implements last-writer-wins for concurrent playlist loads.
	fetchGen   atomic.Uint64
	fetchError string

	onChange func()
}

// Snapshot is a consistent read of everything the UI renders.
type Snapshot struct {
	State         engine.PlaybackState
	Overlay       overlay.Overlay
	Surface       surface.Surface
	Current       *playlist.Channel
	CatalogLabel  string
	CatalogSize   int
	CatalogLoaded bool
	EverPlayed    bool
}

// New wires a session around the given engine. Surfaces without a host in
// hosts fall back to no-op window plumbing.
func New(eng engine.Engine, hosts map[surface.Surface]surface.Host) *Session {
	s := &Session{
		Catalog:    catalog.New(),
		dispatcher: NewDispatcher(),
		eng:        eng,
	}

	s.Controller = NewController(eng, s.dispatcher, nil)
	s.Controller.SetOnChange(s.notify)
	s.Surfaces = surface.NewManager(eng, hosts, s.Controller.State, func(delay time.Duration, task func()) {
		time.AfterFunc(delay, func() { s.dispatcher.Post(task) })
	})

	go s.pumpEngineEvents()

	return s
}

// SetOnChange installs a hook called on the dispatcher after every state
// change. The TUI uses it to trigger a re-render.
func (s *Session) SetOnChange(hook func()) {
	s.onChange = hook
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// pumpEngineEvents marshals engine callbacks onto the dispatcher. Events
// never mutate state directly.
func (s *Session) pumpEngineEvents() {
	for event := range s.eng.Events() {
		event := event
		s.dispatcher.Post(func() {
			s.Controller.HandleEngineEvent(event)
		})
	}
}

// LoadPlaylist fetches, parses and installs the playlist at rawURL. When a
// cached copy exists it is installed immediately while the fresh fetch runs.
// Only the most recently initiated load may replace the catalog; a fetch
// failure keeps the previous catalog and surfaces the message.
func (s *Session) LoadPlaylist(rawURL, name string) {
	gen := s.fetchGen.Add(1)
	headers := playlistHeaders(rawURL)

	if cached, ok := catalog.CachedText(rawURL).Get(); ok {
		s.dispatcher.Post(func() {
			if gen != s.fetchGen.Load() {
				return
			}
			s.replaceCatalog(rawURL, name, cached)
		})
	}

	go func() {
		text, err := network.FetchText(context.Background(), rawURL, headers)

		s.dispatcher.Post(func() {
			if gen != s.fetchGen.Load() {
				return
			}

			if err != nil {
				s.fetchError = fmt.Sprintf("playlist fetch: %s", err)
				s.notify()
				return
			}

			s.fetchError = ""
			s.replaceCatalog(rawURL, name, text)

			if err := catalog.CacheText(rawURL, text); err != nil {
				log.Warnf("cache playlist text: %s", err)
			}
		})
	}()
}

// replaceCatalog atomically swaps in a parsed playlist. Dispatcher only.
func (s *Session) replaceCatalog(rawURL, name, text string) {
	channels := playlist.Parse(text)

	label := name
	if label == "" {
		label = catalog.LabelFor(rawURL)
	}

	s.Catalog.Replace(channels, label)
	log.Infof("catalog replaced: %d channels from %s", len(channels), label)
	s.notify()
}

// Filter returns a filtered, sorted view of the catalog.
func (s *Session) Filter(query string) (channels []*playlist.Channel) {
	s.dispatcher.Do(func() {
		channels = s.Catalog.Filter(query)
	})
	return
}

// Closest returns the catalog channel whose name is nearest to the query.
func (s *Session) Closest(query string) (closest mo.Option[*playlist.Channel]) {
	s.dispatcher.Do(func() {
		closest = s.Catalog.Closest(query)
	})
	return
}

// Play starts playback of the channel and records it in the watch history.
func (s *Session) Play(channel *playlist.Channel) {
	s.dispatcher.Post(func() {
		s.Controller.Play(channel)
	})

	if viper.GetBool(key.HistorySaveOnWatch) {
		go func() {
			if err := history.Save(channel); err != nil {
				log.Warnf("save history: %s", err)
			}
		}()
	}
}

// TogglePause flips between Playing and Paused.
func (s *Session) TogglePause() {
	s.dispatcher.Post(s.Controller.TogglePause)
}

// StopPlayback unloads the current source and returns to Idle.
func (s *Session) StopPlayback() {
	s.dispatcher.Post(s.Controller.Stop)
}

// EnterFullscreen hands the engine to the fullscreen surface.
func (s *Session) EnterFullscreen() {
	s.dispatcher.Post(func() {
		if err := s.Surfaces.EnterFullscreen(); err != nil {
			log.Warnf("enter fullscreen: %s", err)
		}
	})
}

// ExitFullscreen returns the engine to the main surface.
func (s *Session) ExitFullscreen() {
	s.dispatcher.Post(func() {
		if err := s.Surfaces.ExitFullscreen(); err != nil {
			log.Warnf("exit fullscreen: %s", err)
		}
	})
}

// EnterFloating hands the engine to the compact always-on-top surface.
func (s *Session) EnterFloating() {
	s.dispatcher.Post(func() {
		if err := s.Surfaces.EnterFloating(); err != nil {
			log.Warnf("enter floating: %s", err)
		}
	})
}

// ExitFloating returns the engine to the main surface.
func (s *Session) ExitFloating() {
	s.dispatcher.Post(func() {
		if err := s.Surfaces.ExitFloating(); err != nil {
			log.Warnf("exit floating: %s", err)
		}
	})
}

// Snapshot returns a consistent view of the session for rendering.
func (s *Session) Snapshot() (snap Snapshot) {
	s.dispatcher.Do(func() {
		errMessage := s.Controller.ErrorMessage()
		if errMessage == "" {
			errMessage = s.fetchError
		}

		snap = Snapshot{
			State:         s.Controller.State(),
			Surface:       s.Surfaces.Active(),
			Current:       s.Controller.Current(),
			CatalogLabel:  s.Catalog.Label(),
			CatalogSize:   s.Catalog.Len(),
			CatalogLoaded: s.Catalog.Loaded(),
			EverPlayed:    s.Controller.EverPlayed(),
			Overlay: overlay.Compute(
				s.Catalog.Loaded(),
				s.Controller.State(),
				s.Controller.EverPlayed(),
				errMessage,
			),
		}
	})
	return
}

// Close tears the session down: the dispatcher stops, in-flight intents are
// released and the engine process is shut down.
func (s *Session) Close() error {
	s.dispatcher.Stop()
	s.Controller.close()
	return s.eng.Close()
}

// playlistHeaders builds the fetch headers for a playlist source, attaching
// stored account credentials for the source's host when present.
func playlistHeaders(rawURL string) map[string]string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}

	username, password, err := auth.Credentials(u.Host)
	if err != nil {
		return nil
	}

	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return map[string]string{"Authorization": "Basic " + token}
}
