// Package network provides the HTTP capability used to fetch remote playlists and stream manifests.
//
// Some IPTV providers sit behind anti-bot frontends (Cloudflare, DDoS-Guard)
// that reject Go's default TLS Client Hello. SpoofedClient mimics Chrome's
// fingerprint via refraction-networking/utls: it prefers an HTTP/2 transport
// and falls back to HTTP/1.1 when the handshake does not negotiate h2.
package network

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const spoofTimeout = 30 * time.Second

var (
	spoofed     *http.Client
	spoofedOnce sync.Once
)

// SpoofedClient returns the shared HTTP client carrying a Chrome 120 TLS fingerprint.
func SpoofedClient() *http.Client {
	spoofedOnce.Do(func() {
		spoofed = &http.Client{
			Timeout:   spoofTimeout,
			Transport: &spoofedTransport{},
		}
	})
	return spoofed
}

// spoofedTransport routes requests through the h2 transport first and retries
// once on the h1 transport when the handshake or stream setup fails.
type spoofedTransport struct {
	h2     http2.Transport
	h2Init sync.Once
	h1     *http.Transport
	h1Init sync.Once
}

func (t *spoofedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.h2Init.Do(func() {
		t.h2.DialTLSContext = func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialSpoofed(ctx, network, addr, nil)
		}
	})

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	t.h1Init.Do(func() {
		t.h1 = &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialSpoofed(ctx, network, addr, []string{"http/1.1"})
			},
		}
	})

	return t.h1.RoundTrip(req)
}

// dialSpoofed creates a TLS connection mimicking Chrome 120's Client Hello.
// A nil protos slice advertises both h2 and http/1.1 (natural Chrome behavior).
func dialSpoofed(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: spoofTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, err
	}

	return tlsConn, nil
}
