// Package search provides the chapter search view for the TUI.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// View is the search input, chapter list, optional detail pane and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ChapterList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context
	zone          *time.Location
	perPage       int

	width       int
	height      int
	ready       bool
	err         error
	focusInput  bool
	showDetails bool

	// query and page describe the results currently shown.
	query string
	page  *domain.SearchResultPage
}

// NewView creates a new search view. Dates are shown in zone.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	zone *time.Location,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewChapterList(s, zone),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		zone:          zone,
		perPage:       domain.DefaultPerPage,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.showDetails {
			v.showDetails = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := v.input.Keyword()
			if query == "" {
				return v, nil
			}
			return v, v.submit(query, 1)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Details):
		v.showDetails = !v.showDetails && v.list.SelectedItem() != nil
	case keymap.Matches(key, v.keymap.NextPage):
		if v.page != nil && v.page.Page < v.page.TotalPages {
			return v, v.submit(v.query, v.page.Page+1)
		}
	case keymap.Matches(key, v.keymap.PrevPage):
		if v.page != nil && v.page.Page > 1 {
			return v, v.submit(v.query, v.page.Page-1)
		}
	case keymap.Matches(key, v.keymap.NewSearch):
		v.focusInput = true
		v.showDetails = false
		v.input.SetValue("")
		return v, v.input.Focus()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// submit marks the view busy and returns the command that runs the search.
func (v *View) submit(query string, page int) tea.Cmd {
	v.query = query
	v.statusbar.SetState(status.StateSearching)
	v.focusInput = false
	v.showDetails = false
	v.input.Blur()
	return v.performSearch(query, page)
}

func (v *View) performSearch(query string, page int) tea.Cmd {
	svc, ctx, perPage := v.searchService, v.ctx, v.perPage
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		req := domain.NewSearchRequest(query)
		req.Page = page
		req.PerPage = perPage
		req.Parts = []domain.Part{domain.PartVideoDetail}

		result, err := svc.Search(ctx, req)
		return messages.SearchCompleted{Page: result, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Page == nil {
		msg.Page = &domain.SearchResultPage{}
	}

	v.err = nil
	v.page = msg.Page
	v.list.SetItems(msg.Page.Items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetPage(msg.Page.Page, msg.Page.TotalPages, msg.Page.TotalHits)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("tssearch"), "",
		v.input.View(), "",
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View())
	if v.showDetails {
		sections = append(sections, "", v.renderDetails())
	}
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderDetails() string {
	doc := v.list.SelectedItem()
	if doc == nil {
		return ""
	}

	lines := []string{
		v.styles.Timestamp.Render(doc.Timestamp()) + " " + v.styles.Normal.Render(doc.Description),
	}
	if d := doc.VideoDetails; d != nil {
		if d.VideoTitle != "" {
			lines = append(lines, v.styles.Subtitle.Render(d.VideoTitle))
		}
		if len(d.VideoTags) > 0 {
			tags := make([]string, len(d.VideoTags))
			for i, t := range d.VideoTags {
				tags[i] = v.styles.Tag.Render(t)
			}
			lines = append(lines, strings.Join(tags, " "))
		}
		if d.ActualStartAt != nil {
			lines = append(lines, v.styles.Muted.Render("live   "+v.formatUnix(*d.ActualStartAt)))
		}
		if d.PublishedAt != nil {
			lines = append(lines, v.styles.Muted.Render("posted "+v.formatUnix(*d.PublishedAt)))
		}
	}
	lines = append(lines, v.styles.Muted.Render(doc.WatchURL()))

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (v *View) formatUnix(sec int64) string {
	t := time.Unix(sec, 0)
	if v.zone != nil {
		t = t.In(v.zone)
	}
	return t.Format("2006-01-02 15:04 MST")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Page returns the page currently shown, or nil before the first search.
func (v *View) Page() *domain.SearchResultPage {
	return v.page
}

// Items returns the hits currently shown.
func (v *View) Items() []domain.ChapterDocument {
	return v.list.Items()
}

// SelectedIndex returns the index of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// DetailsVisible reports whether the detail pane is open.
func (v *View) DetailsVisible() bool {
	return v.showDetails
}

// Reset returns the view to an empty input.
func (v *View) Reset() {
	v.focusInput = true
	v.showDetails = false
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetItems(nil)
	v.query = ""
	v.page = nil
	v.err = nil
	v.statusbar.Clear()
}
