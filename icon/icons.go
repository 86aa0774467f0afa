package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Channel
	Playing
	Paused
	Fullscreen
	Floating
	Mark
	Link
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[x]",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(￣ー￣)",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "/",
		kaomoji: "(⌐■_■)",
		squares: "🟦",
	},
	Channel: {
		emoji:   "📺",
		nerd:    "",
		plain:   ">",
		kaomoji: "(◕‿◕)",
		squares: "🟪",
	},
	Playing: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟩",
	},
	Paused: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－ω－) zzZ",
		squares: "🟨",
	},
	Fullscreen: {
		emoji:   "🖥️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(⊙▂⊙)",
		squares: "🟦",
	},
	Floating: {
		emoji:   "🪟",
		nerd:    "",
		plain:   "[.]",
		kaomoji: "( 〃･ω･)",
		squares: "🟫",
	},
	Mark: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "*",
		kaomoji: "(☆▽☆)",
		squares: "🟧",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(つ✧ω✧)つ",
		squares: "⬜",
	},
}
