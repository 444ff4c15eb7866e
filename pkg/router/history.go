package router

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/vango-dev/showcase/pkg/routepath"
)

// History keeps the navigation history in sync with the current view.
// Locations are app-relative full paths ("/card?size=lg#top").
type History interface {
	// Base returns the normalized base ("" for the root).
	Base() string

	// Location returns the current app-relative location.
	Location() string

	// Href renders an app-relative location as a link target.
	Href(fullPath string) string

	// Parse maps a link target back to an app-relative location.
	// It reports false when href lies outside the base.
	Parse(href string) (string, bool)

	// Push appends a new entry, dropping any forward entries.
	Push(fullPath string)

	// Replace overwrites the current entry.
	Replace(fullPath string)

	// Go moves delta entries through the history. It reports false and
	// does nothing when the target entry does not exist.
	Go(delta int) bool

	// Listen registers fn to be called after every Go. The returned
	// function removes the listener.
	Listen(fn func(to, from string)) (stop func())
}

// HistoryMode selects how locations are rendered into hrefs.
type HistoryMode string

const (
	// ModeWeb renders "/base/path".
	ModeWeb HistoryMode = "web"

	// ModeHash renders "/base/#/path".
	ModeHash HistoryMode = "hash"

	// ModeMemory keeps locations in memory only; hrefs are base prefixed.
	ModeMemory HistoryMode = "memory"
)

// ParseHistoryMode parses a mode name. The empty string selects ModeWeb.
func ParseHistoryMode(s string) (HistoryMode, bool) {
	switch HistoryMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWeb:
		return ModeWeb, true
	case ModeHash:
		return ModeHash, true
	case ModeMemory:
		return ModeMemory, true
	}
	return "", false
}

// HistoryOption configures a StackHistory.
type HistoryOption func(*StackHistory)

// WithLocation starts the history at href instead of the base root.
// An href outside the base is ignored.
func WithLocation(href string) HistoryOption {
	return func(h *StackHistory) {
		loc, ok := h.Parse(href)
		if !ok {
			slog.Default().With("component", "history").Warn("start location outside base ignored",
				"href", href, "base", h.base)
			return
		}
		h.entries[0] = loc
	}
}

// StackHistory is an in-process history: a stack of entries with a cursor.
type StackHistory struct {
	mu        sync.Mutex
	mode      HistoryMode
	base      string
	entries   []string
	pos       int
	listeners map[int]func(to, from string)
	nextID    int
}

// NewWebHistory creates a history whose hrefs are paths under base.
func NewWebHistory(base string, opts ...HistoryOption) *StackHistory {
	return NewHistory(ModeWeb, base, opts...)
}

// NewHashHistory creates a history that keeps the location in the href
// fragment.
func NewHashHistory(base string, opts ...HistoryOption) *StackHistory {
	return NewHistory(ModeHash, base, opts...)
}

// NewMemoryHistory creates a history that never leaves the process.
func NewMemoryHistory(base string, opts ...HistoryOption) *StackHistory {
	return NewHistory(ModeMemory, base, opts...)
}

// NewHistory creates a history for the given mode. Unknown modes fall back
// to ModeWeb.
func NewHistory(mode HistoryMode, base string, opts ...HistoryOption) *StackHistory {
	if m, ok := ParseHistoryMode(string(mode)); ok {
		mode = m
	} else {
		mode = ModeWeb
	}
	h := &StackHistory{
		mode:      mode,
		base:      routepath.NormalizeBase(base),
		entries:   []string{"/"},
		listeners: make(map[int]func(to, from string)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mode returns the history mode.
func (h *StackHistory) Mode() HistoryMode {
	return h.mode
}

// Base implements History.
func (h *StackHistory) Base() string {
	return h.base
}

// Location implements History.
func (h *StackHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

// Len returns the number of entries.
func (h *StackHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Href implements History.
func (h *StackHistory) Href(fullPath string) string {
	if h.mode == ModeHash {
		return h.base + "/#" + fullPath
	}
	return routepath.JoinBase(h.base, fullPath)
}

// Parse implements History.
func (h *StackHistory) Parse(href string) (string, bool) {
	if h.mode == ModeHash {
		prefix, frag, found := strings.Cut(href, "#")
		if !found {
			return "", false
		}
		if prefix != "" {
			rest, ok := routepath.StripBase(strings.TrimSuffix(prefix, "/"), h.base)
			if !ok || (rest != "" && rest != "/") {
				return "", false
			}
		}
		if !strings.HasPrefix(frag, "/") {
			frag = "/" + frag
		}
		return frag, true
	}
	return routepath.StripBase(href, h.base)
}

// Push implements History.
func (h *StackHistory) Push(fullPath string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.pos+1], fullPath)
	h.pos++
}

// Replace implements History.
func (h *StackHistory) Replace(fullPath string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.pos] = fullPath
}

// Go implements History.
func (h *StackHistory) Go(delta int) bool {
	h.mu.Lock()
	target := h.pos + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	from := h.entries[h.pos]
	h.pos = target
	to := h.entries[target]
	listeners := make([]func(to, from string), 0, len(h.listeners))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(to, from)
	}
	return true
}

// Listen implements History.
func (h *StackHistory) Listen(fn func(to, from string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}
