package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// endlessStreamServer keeps writing media-looking bytes until the client
// hangs up, the way a live transport stream does.
func endlessStreamServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp2t")

		flusher, _ := w.(http.Flusher)
		chunk := make([]byte, 64*1024)

		for {
			select {
			case <-r.Context().Done():
				return
			default:
			}

			if _, err := w.Write(chunk); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
}

func TestResolveTarget(t *testing.T) {
	Convey("Given a URL serving an HLS manifest", t, func() {
		server := manifestServer(nil)
		defer server.Close()

		Convey("Resolution should classify it as adaptive", func() {
			So(resolveTarget(context.Background(), server.URL, nil), ShouldEqual, resolvedAdaptive)
		})
	})

	Convey("Given a URL streaming an endless media body", t, func() {
		server := endlessStreamServer()
		defer server.Close()

		Convey("Resolution should fall back to direct promptly", func() {
			start := time.Now()
			how := resolveTarget(context.Background(), server.URL, nil)

			So(how, ShouldEqual, resolvedDirect)
			So(time.Since(start), ShouldBeLessThan, sniffTimeout)
		})
	})

	Convey("Given a URL whose body only turns manifest-like past the read cap", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", sniffMaxBytes+1)))
			_, _ = w.Write([]byte("\n#EXTM3U\n"))
		}))
		defer server.Close()

		Convey("Resolution should stay direct", func() {
			So(resolveTarget(context.Background(), server.URL, nil), ShouldEqual, resolvedDirect)
		})
	})
}

func TestIsAdaptiveManifest(t *testing.T) {
	Convey("An HLS header should be recognized", t, func() {
		So(isAdaptiveManifest("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1\nv.m3u8\n"), ShouldBeTrue)
	})

	Convey("A DASH manifest should be recognized", t, func() {
		So(isAdaptiveManifest(`<?xml version="1.0"?><MPD></MPD>`), ShouldBeTrue)
	})

	Convey("An XML body without an MPD root should not", t, func() {
		So(isAdaptiveManifest(`<?xml version="1.0"?><rss></rss>`), ShouldBeFalse)
	})

	Convey("Arbitrary bytes should not", t, func() {
		So(isAdaptiveManifest("GET lost"), ShouldBeFalse)
		So(isAdaptiveManifest(""), ShouldBeFalse)
	})
}
