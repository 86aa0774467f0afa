// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playlist Ingestion - these keys govern where the channel catalog is loaded from.
const (
	PlaylistURL       = "playlist.url"
	PlaylistName      = "playlist.name"
	PlaylistCache     = "playlist.cache"
	PlaylistUserAgent = "playlist.user_agent"
)

// Search Interaction - these keys define the UI/UX parameters for channel discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// History Tracking - these keys configure the persistence of watched-channel state.
const (
	HistorySaveOnWatch = "history.save_on_watch"
)

// Minimalist (Mini) Mode - these keys configure the specialized lightweight prompt interface.
const (
	MiniSearchLimit = "mini.search_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
	TUIPlayOnEnter        = "tui.play_on_enter"
)

// Media Playback - these keys maintain the state and configuration for the external playback engine.
const (
	Player = "player.default"
)

// Floating Surface Geometry - these keys size and anchor the compact always-on-top window.
const (
	FloatingWidth  = "floating.width"
	FloatingHeight = "floating.height"
	FloatingCorner = "floating.corner"
)

// Network Behavior - these keys tune how remote playlists and manifests are fetched.
const (
	NetworkTLSSpoof = "network.tls_spoof"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
