// Package scrollbar renders a one-column vertical scrollbar for Bubble
// Tea views.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Model describes one scrollbar frame: how much content exists, how much
// is visible, and where the window sits.
type Model struct {
	ContentHeight  int
	ViewportHeight int
	YOffset        int

	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style
	ThumbChar  string
	TrackChar  string
}

// Option configures New.
type Option func(*Model)

// New builds a scrollbar model.
func New(opts ...Option) Model {
	m := Model{
		ThumbChar:  "┃",
		TrackChar:  "│",
		ThumbStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		TrackStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithContentHeight sets the total scrollable content height.
func WithContentHeight(h int) Option {
	return func(m *Model) { m.ContentHeight = h }
}

// WithViewportHeight sets the visible window height.
func WithViewportHeight(h int) Option {
	return func(m *Model) { m.ViewportHeight = h }
}

// WithYOffset sets the scroll position.
func WithYOffset(y int) Option {
	return func(m *Model) { m.YOffset = y }
}

// WithStyles sets the thumb and track styles.
func WithStyles(thumb, track lipgloss.Style) Option {
	return func(m *Model) {
		m.ThumbStyle = thumb
		m.TrackStyle = track
	}
}

// View renders a column exactly ViewportHeight tall. Content that fits
// entirely renders a full-height thumb, the convention for "nothing to
// scroll".
func (m Model) View() string {
	height := m.ViewportHeight
	if height <= 0 {
		return ""
	}
	content := m.ContentHeight
	if content <= height {
		return m.render(0, height)
	}

	maxOffset := content - height
	offset := m.YOffset
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}

	// Thumb height is proportional to the visible share of the content.
	thumb := height * height / content
	if thumb < 1 {
		thumb = 1
	}

	maxTop := height - thumb
	top := 0
	if maxTop > 0 {
		top = offset * maxTop / maxOffset
		if top > maxTop {
			top = maxTop
		}
	}
	return m.render(top, thumb)
}

func (m Model) render(thumbTop, thumbHeight int) string {
	var b strings.Builder
	for i := 0; i < m.ViewportHeight; i++ {
		if i > 0 {
			b.WriteRune('\n')
		}
		if i >= thumbTop && i < thumbTop+thumbHeight {
			b.WriteString(m.ThumbStyle.Render(m.ThumbChar))
		} else {
			b.WriteString(m.TrackStyle.Render(m.TrackChar))
		}
	}
	return b.String()
}
