package nameparse

import (
	"strings"
	"unicode/utf8"
)

// dictWords is the vocabulary for the dictionary-greedy strategy: common
// UI/design tokens plus the everyday English that shows up in layer names.
// All entries are lowercase and between 2 and 12 characters; matching is
// case-insensitive against a per-rune lowercased copy of the input.
var dictWords = []string{
	// widgets and regions
	"button", "btn", "icon", "image", "img", "text", "label", "title",
	"header", "footer", "nav", "menu", "item", "list", "card", "badge",
	"tag", "chip", "input", "field", "form", "check", "box", "checkbox",
	"radio", "toggle", "switch", "slider", "select", "option", "dropdown",
	"modal", "dialog", "popup", "tooltip", "toast", "alert", "banner",
	"avatar", "logo", "brand", "hero", "section", "container", "wrapper",
	"content", "body", "main", "side", "sidebar", "panel", "tab", "bar",
	"row", "column", "col", "grid", "cell", "table", "chart", "graph",
	"divider", "separator", "spacer", "placeholder", "overlay", "mask",
	"page", "screen", "view", "scroll", "carousel", "gallery", "thumbnail",
	// glyphs
	"arrow", "chevron", "caret", "close", "cross", "plus", "minus", "star",
	"heart", "search", "filter", "sort", "edit", "pencil", "trash", "bell",
	"gear", "eye", "lock", "key", "shield", "pin", "marker", "flag",
	"clip", "paperclip", "emoji", "thumb", "play", "pause", "stop",
	"camera", "mic", "volume", "mute", "wifi", "battery", "signal",
	"cloud", "folder", "file", "document", "doc", "mail", "envelope",
	"inbox", "chat", "comment", "reply", "message", "share", "link",
	"download", "upload", "calendar", "clock", "home", "user", "users",
	"profile", "account", "settings", "info", "help", "question",
	// states and variants
	"warning", "error", "success", "danger", "primary", "secondary",
	"tertiary", "default", "active", "inactive", "disabled", "enabled",
	"hover", "hovered", "focus", "focused", "pressed", "selected",
	"checked", "unchecked", "expanded", "collapsed", "open", "closed",
	"visited", "loading", "empty", "filled", "ghost", "outlined", "flat",
	"raised", "rounded", "visible", "hidden", "locked", "unlocked",
	"pinned", "favorite", "bookmark", "normal", "variant", "state",
	// geometry and styling
	"frame", "group", "layer", "shape", "line", "path", "circle",
	"ellipse", "square", "rect", "rectangle", "polygon", "triangle",
	"vector", "background", "foreground", "fill", "stroke", "border",
	"outline", "shadow", "blur", "left", "right", "top", "bottom",
	"center", "middle", "inner", "outer", "full", "half", "small",
	"medium", "large", "big", "mini", "tiny", "light", "dark", "color",
	"style", "theme", "size", "margin", "padding", "pad", "gap", "space",
	// colors
	"red", "green", "blue", "yellow", "orange", "purple", "pink", "gray",
	"grey", "black", "white", "brown", "gold", "silver", "cyan",
	"magenta", "teal", "indigo", "violet", "amber", "lime", "navy",
	// flows and misc vocabulary
	"login", "logout", "signup", "signin", "register", "password",
	"email", "phone", "name", "first", "last", "number", "num", "count",
	"total", "amount", "price", "date", "time", "day", "week", "month",
	"year", "photo", "picture", "video", "audio", "music", "desktop",
	"mobile", "tablet", "web", "app", "save", "send", "cancel", "confirm",
	"submit", "next", "prev", "previous", "back", "forward", "add",
	"new", "old", "copy", "paste", "delete", "remove", "undo", "redo",
	"version", "ver", "final", "draft", "temp", "test", "demo", "sample",
	"mock", "done", "ready", "review", "approved", "archived", "on",
	"off", "up", "down", "in", "out", "to", "of", "and", "the", "for",
	"with", "component", "instance", "master", "base", "element", "node",
	"template", "asset", "surface", "area", "zone", "block", "segment",
	"part", "piece", "unit", "module", "widget", "control",
}

var dictionary = make(map[string]struct{}, len(dictWords))

func init() {
	for _, w := range dictWords {
		dictionary[w] = struct{}{}
	}
}

// AddWords extends the dictionary with user-supplied vocabulary (config
// `dictionary` option). Entries are lowercased; words longer than
// maxWordLen or shorter than 2 runes are ignored. Call before the first
// Parse of a session; the parser itself never mutates the set.
func AddWords(words []string) {
	for _, w := range words {
		lw := strings.ToLower(strings.TrimSpace(w))
		n := utf8.RuneCountInString(lw)
		if n < 2 || n > maxWordLen {
			continue
		}
		dictionary[lw] = struct{}{}
	}
}
