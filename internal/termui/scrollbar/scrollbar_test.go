package scrollbar

import (
	"strings"
	"testing"
)

// plain uses unmistakable single-byte glyphs and no styling so the tests
// can count thumb cells in the raw output.
func plain(content, viewport, offset int) Model {
	m := New(
		WithContentHeight(content),
		WithViewportHeight(viewport),
		WithYOffset(offset),
	)
	m.ThumbChar = "#"
	m.TrackChar = "."
	m.ThumbStyle = m.ThumbStyle.UnsetForeground()
	m.TrackStyle = m.TrackStyle.UnsetForeground()
	return m
}

func TestViewGeometry(t *testing.T) {
	tests := []struct {
		name      string
		content   int
		viewport  int
		offset    int
		wantThumb int
		wantTop   int
	}{
		{"content fits, full thumb", 10, 10, 0, 10, 0},
		{"half visible", 20, 10, 0, 5, 0},
		{"half visible, scrolled to end", 20, 10, 10, 5, 5},
		{"half visible, mid scroll", 20, 10, 5, 5, 2},
		{"tall content keeps a minimum thumb", 1000, 5, 0, 1, 0},
		{"offset past end clamps", 20, 10, 999, 5, 5},
		{"negative offset clamps", 20, 10, -3, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(plain(tt.content, tt.viewport, tt.offset).View(), "\n")
			if len(lines) != tt.viewport {
				t.Fatalf("rendered %d lines, want %d", len(lines), tt.viewport)
			}
			thumb, top := 0, -1
			for i, line := range lines {
				if line == "#" {
					thumb++
					if top < 0 {
						top = i
					}
				}
			}
			if thumb != tt.wantThumb {
				t.Errorf("thumb height = %d, want %d", thumb, tt.wantThumb)
			}
			if tt.wantThumb > 0 && top != tt.wantTop {
				t.Errorf("thumb top = %d, want %d", top, tt.wantTop)
			}
		})
	}
}

func TestViewZeroViewport(t *testing.T) {
	if got := plain(10, 0, 0).View(); got != "" {
		t.Errorf("View() with no viewport = %q, want empty", got)
	}
}
