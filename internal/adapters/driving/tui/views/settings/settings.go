// Package settings provides the configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// valuesLoaded carries the effective settings.
type valuesLoaded struct {
	values []driving.SettingValue
	path   string
	err    error
}

// valueSaved reports the outcome of an edit.
type valueSaved struct {
	key string
	err error
}

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	values   []driving.SettingValue
	path     string
	selected int
	err      error
	notice   string

	editing bool
	input   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	in := textinput.New()
	in.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           in,
	}
}

// Init loads the current values.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return valuesLoaded{err: fmt.Errorf("settings service not available")}
		}
		values, err := svc.Values()
		return valuesLoaded{values: values, path: svc.Path(), err: err}
	}
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		return valueSaved{key: key, err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case valuesLoaded:
		v.err = msg.err
		if msg.err == nil {
			v.values = msg.values
			v.path = msg.path
		}
		return v, nil

	case valueSaved:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.notice = "Saved " + msg.key
		return v, v.load()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleListKey(msg)
	}
	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.values)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= len(v.values) || v.settingsService == nil {
			return v, nil
		}
		sv := v.values[v.selected]
		v.editing = true
		v.notice = ""
		v.input.Reset()
		v.input.EchoMode = textinput.EchoNormal
		v.input.Placeholder = sv.Key
		if sv.Secret {
			v.input.EchoMode = textinput.EchoPassword
		} else {
			v.input.SetValue(sv.Value)
		}
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case keyEnter:
		v.editing = false
		v.input.Blur()
		return v, v.save(v.values[v.selected].Key, v.input.Value())
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the settings list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
	}
	b.WriteString("\n\n")

	width := 0
	for _, sv := range v.values {
		width = max(width, len(sv.Key))
	}
	for i, sv := range v.values {
		line := fmt.Sprintf("%-*s  %s", width, sv.Key, sv.Masked())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.input.View()))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "[j/k] Navigate  [enter] Edit  [esc] Back"
	if v.editing {
		help = "[enter] Save  [esc] Cancel"
	}
	b.WriteString(v.styles.Help.Render(help))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.editing = false
	v.notice = ""
	v.err = nil
	v.input.Blur()
}
