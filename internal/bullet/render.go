// Package bullet flattens a bullet outline into indented plain text.
package bullet

import (
	"strings"

	"github.com/phrazzld/scry-docgen/internal/domain"
)

const indentUnit = "    "

var markers = [...]string{"•", "◦", "▪"}

// Marker returns the glyph used for a bullet at the given level. Levels past
// the third share a plain dash.
func Marker(level int) string {
	if level >= 1 && level <= len(markers) {
		return markers[level-1]
	}
	return "-"
}

// Line renders a single bullet without its children.
func Line(level int, content string) string {
	depth := level - 1
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat(indentUnit, depth) + Marker(level) + " " + content
}

// Render flattens points into one line per node, children directly below
// their parent. No trailing newline is written after the last node.
// Level order is not checked here; callers validate the tree first.
func Render(points []domain.BulletPoint) string {
	var b strings.Builder
	render(&b, points)
	return b.String()
}

func render(b *strings.Builder, points []domain.BulletPoint) {
	for i, p := range points {
		last := i == len(points)-1
		b.WriteString(Line(p.Level, p.Content))
		if len(p.Children) > 0 {
			b.WriteByte('\n')
			render(b, p.Children)
		}
		if !last {
			b.WriteByte('\n')
		}
	}
}

// List renders a flat list of first-level bullets, one per line.
func List(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = Line(1, item)
	}
	return strings.Join(lines, "\n")
}
