package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/readq/internal/triage"
)

const emptyMessage = "No articles to show here."

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// renderItem draws one article: title line, meta line and, when expanded,
// the wrapped body and link.
func renderItem(a triage.Article, selected, favorite, retired bool, width int) string {
	if width < 10 {
		width = 30
	}

	mark := "  "
	if favorite {
		mark = favoriteMarkStyle.Render("♥ ")
	}
	cursor := "  "
	style := itemTitleStyle
	switch {
	case retired:
		style = itemRetiredStyle
	case selected:
		style = itemSelectedStyle
	}
	if selected {
		cursor = itemSelectedStyle.Render("> ")
	}
	title := cursor + mark + style.Render(truncateStr(a.Title, width-6))

	var meta []string
	if a.Source != "" {
		meta = append(meta, itemSourceStyle.Render(a.Source))
	}
	if rt := relativeTime(a.Published); rt != "" {
		meta = append(meta, itemTimeStyle.Render("· "+rt))
	}
	lines := []string{title, "    " + strings.Join(meta, " ")}

	if a.Expanded {
		body := a.Body
		if body == "" {
			body = "(No description available)"
		}
		lines = append(lines, "", itemBodyStyle.Render(wrapText(body, width-6)))
		if a.Link != "" {
			lines = append(lines, itemLinkStyle.Render("Read more: "+a.Link))
		}
	}
	return strings.Join(lines, "\n")
}

// renderList renders items so that the cursor row stays visible within
// height lines.
func renderList(items []triage.Article, snap triage.Snapshot, retired bool, cursor, height, width int) string {
	if len(items) == 0 {
		return centerText(emptyStyle.Render(emptyMessage), len(emptyMessage), width, height)
	}

	rendered := make([]string, len(items))
	heights := make([]int, len(items))
	for i, a := range items {
		// Blank separator line after every item
		rendered[i] = renderItem(a, i == cursor, snap.IsFavorite(a.ID), retired, width)
		heights[i] = strings.Count(rendered[i], "\n") + 2
	}

	start := 0
	used := 0
	for i := 0; i <= cursor && i < len(items); i++ {
		used += heights[i]
	}
	for used > height && start < cursor {
		used -= heights[start]
		start++
	}

	var b strings.Builder
	used = 0
	for i := start; i < len(items); i++ {
		if used > 0 && used+heights[i] > height {
			break
		}
		if used > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(rendered[i])
		used += heights[i]
	}
	return b.String()
}

func centerText(s string, visibleLen, width, height int) string {
	pad := (width - visibleLen) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
