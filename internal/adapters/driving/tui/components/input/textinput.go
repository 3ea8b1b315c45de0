// Package input holds the keyword field of the search view.
package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// counterThreshold is how close to the limit the character counter appears.
const counterThreshold = 20

// labelWidth is the room reserved for the prompt and counter.
const labelWidth = 12

// SearchInput is a single-line keyword field capped at the keyword limit.
type SearchInput struct {
	field  textinput.Model
	styles *styles.Styles
	width  int
}

// NewSearchInput returns a focused, empty field.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Placeholder = "Search chapters..."
	field.CharLimit = domain.MaxKeywordLength
	field.Width = 50
	field.Focus()

	return &SearchInput{field: field, styles: s, width: 50}
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the field.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	return s, cmd
}

// View renders the prompt, the field and, near the limit, a counter.
func (s *SearchInput) View() string {
	parts := []string{
		s.styles.Title.Render("Search: "),
		s.styles.InputField.Render(s.field.View()),
	}
	if s.field.Focused() && s.Remaining() <= counterThreshold {
		parts = append(parts, s.styles.Muted.Render(
			fmt.Sprintf(" %d/%d", domain.MaxKeywordLength-s.Remaining(), domain.MaxKeywordLength)))
	}
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Value returns the raw text.
func (s *SearchInput) Value() string {
	return s.field.Value()
}

// Keyword returns the text with surrounding space removed.
func (s *SearchInput) Keyword() string {
	return strings.TrimSpace(s.field.Value())
}

// Remaining is the number of characters that may still be typed.
func (s *SearchInput) Remaining() int {
	return domain.MaxKeywordLength - utf8.RuneCountInString(s.field.Value())
}

// SetValue replaces the text.
func (s *SearchInput) SetValue(value string) {
	s.field.SetValue(value)
}

// Focus gives the field the cursor.
func (s *SearchInput) Focus() tea.Cmd {
	return s.field.Focus()
}

// Blur hides the cursor.
func (s *SearchInput) Blur() {
	s.field.Blur()
}

// Focused reports whether the field has the cursor.
func (s *SearchInput) Focused() bool {
	return s.field.Focused()
}

// SetWidth sizes the field to width minus the prompt.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.field.Width = max(width-labelWidth, 20)
}

// Width returns the width last set.
func (s *SearchInput) Width() int {
	return s.width
}
