package session

import (
	"context"
	"strings"
	"time"

	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/network"
)

const (
	// sniffMaxBytes bounds how much of the body the manifest sniff may
	// read. A direct media URL streams forever; reading past the first
	// few KiB tells us nothing a manifest header would not.
	sniffMaxBytes = 8 * 1024

	// sniffTimeout bounds how long resolution may stall channel opening.
	sniffTimeout = 3 * time.Second
)

// resolution is the outcome of sniffing a stream URL before opening it.
type resolution int

const (
	// resolvedAdaptive means the URL serves a manifest-described stream.
	resolvedAdaptive resolution = iota
	// resolvedDirect means the URL is treated as a direct media resource,
	// either because the sniff failed or the body is not a manifest.
	resolvedDirect
)

func (r resolution) String() string {
	if r == resolvedAdaptive {
		return "adaptive"
	}
	return "direct"
}

// resolveTarget sniffs the URL for an adaptive stream manifest first. A
// failed sniff is never surfaced: it demotes the target to a direct media
// resource, and only the direct open's own failure may reach the user.
// The sniff reads a bounded prefix under its own short deadline, so a URL
// that serves an endless media body cannot stall channel opening.
func resolveTarget(ctx context.Context, url string, headers map[string]string) resolution {
	ctx, cancel := context.WithTimeout(ctx, sniffTimeout)
	defer cancel()

	text, err := network.FetchPrefix(ctx, url, headers, sniffMaxBytes)
	if err != nil {
		log.Debugf("manifest sniff failed for %s, falling back to direct: %s", url, err)
		return resolvedDirect
	}

	if isAdaptiveManifest(text) {
		return resolvedAdaptive
	}

	return resolvedDirect
}

// isAdaptiveManifest reports whether the body looks like a manifest of a
// variant-described stream (HLS or DASH).
func isAdaptiveManifest(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, "#EXTM3U") {
		return true
	}

	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<MPD") {
		return strings.Contains(trimmed, "<MPD")
	}

	return false
}
