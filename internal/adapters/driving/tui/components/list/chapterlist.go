// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// ChapterList displays chapter hits in a navigable list.
type ChapterList struct {
	items    []domain.ChapterDocument
	selected int
	styles   *styles.Styles
	zone     *time.Location
	width    int
	height   int
}

// NewChapterList creates a list that prints dates in zone.
func NewChapterList(s *styles.Styles, zone *time.Location) *ChapterList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if zone == nil {
		zone = time.UTC
	}
	return &ChapterList{
		styles: s,
		zone:   zone,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *ChapterList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *ChapterList) Update(msg tea.Msg) (*ChapterList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of hits. Each hit takes two lines.
func (l *ChapterList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No chapters")
	}

	visible := max((l.height-2)/2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))

	lines := make([]string, 0, 2*(end-start))
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *ChapterList) renderItem(index int, doc *domain.ChapterDocument) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	stamp := fmt.Sprintf("%8s", doc.Timestamp())
	label := truncate(doc.Description, l.width-len(stamp)-4)

	var first string
	if index == l.selected {
		first = l.styles.Selected.Render(indicator + stamp + " " + label)
	} else {
		first = indicator + l.styles.Timestamp.Render(stamp) + " " + l.styles.Normal.Render(label)
	}

	meta := doc.VideoID
	if doc.VideoDetails != nil && doc.VideoDetails.VideoTitle != "" {
		meta = doc.VideoDetails.VideoTitle
	}
	if doc.PublishedOrLiveAt != 0 {
		meta = time.Unix(doc.PublishedOrLiveAt, 0).In(l.zone).Format(time.DateOnly) + "  " + meta
	}
	second := l.styles.Muted.Render("           " + truncate(meta, l.width-12))

	return first + "\n" + second
}

func truncate(s string, n int) string {
	n = max(n, 10)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetItems replaces the list contents and resets the selection.
func (l *ChapterList) SetItems(items []domain.ChapterDocument) {
	l.items = items
	l.selected = 0
}

// Items returns the current hits.
func (l *ChapterList) Items() []domain.ChapterDocument {
	return l.items
}

// Selected returns the index of the selected hit.
func (l *ChapterList) Selected() int {
	return l.selected
}

// SelectedItem returns the selected hit, or nil when the list is empty.
func (l *ChapterList) SelectedItem() *domain.ChapterDocument {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *ChapterList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ChapterList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ChapterList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of hits.
func (l *ChapterList) Count() int {
	return len(l.items)
}
