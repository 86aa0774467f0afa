// Package playlist implements best-effort parsing of the M3U-family channel playlist format.
package playlist

import (
	"fmt"

	"github.com/samber/mo"
)

// Channel is a single playable entry in a channel catalog.
// Immutable once constructed; a catalog reload always produces a full replacement list.
type Channel struct {
	Name  string
	Group string
	Logo  mo.Option[string]
	URL   string
}

func (c *Channel) String() string {
	return c.Name
}

// Description returns a secondary display line for list rendering.
func (c *Channel) Description() string {
	if c.Group == "" {
		return c.URL
	}
	return fmt.Sprintf("%s · %s", c.Group, c.URL)
}
