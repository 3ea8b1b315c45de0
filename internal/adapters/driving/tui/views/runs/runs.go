// Package runs provides the ingestion history view for the TUI.
package runs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// Limit is how many runs the view loads.
const Limit = 20

// ErrNoIngestService indicates that run history is not available.
var ErrNoIngestService = errors.New("ingest service not available")

// View lists recent ingestion runs under the index document counts.
type View struct {
	styles *styles.Styles
	ingest driving.IngestService
	index  driving.IndexAdminService
	ctx    context.Context
	zone   *time.Location

	runs     []domain.IngestRun
	stats    *driving.IndexStats
	selected int
	width    int
	height   int
	ready    bool
	err      error
	statsErr error
	loading  bool
}

// NewView creates a new runs view. Either service may be nil.
func NewView(
	s *styles.Styles,
	ingest driving.IngestService,
	index driving.IndexAdminService,
	zone *time.Location,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if zone == nil {
		zone = time.UTC
	}
	return &View{
		styles: s,
		ingest: ingest,
		index:  index,
		ctx:    context.Background(),
		zone:   zone,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads runs and stats.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return tea.Batch(v.loadRuns(), v.loadStats())
}

func (v *View) loadRuns() tea.Cmd {
	svc, ctx := v.ingest, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.RunsLoaded{Err: ErrNoIngestService}
		}
		runs, err := svc.Runs(ctx, Limit)
		return messages.RunsLoaded{Runs: runs, Err: err}
	}
}

func (v *View) loadStats() tea.Cmd {
	svc, ctx := v.index, v.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := svc.Stats(ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update handles messages for the runs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RunsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.runs = msg.Runs
			v.selected = min(v.selected, max(len(v.runs)-1, 0))
		}
		return v, nil

	case messages.StatsLoaded:
		v.statsErr = msg.Err
		if msg.Err == nil {
			v.stats = msg.Stats
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.runs)-1 {
				v.selected++
			}
		case "r":
			return v, v.Init()
		}
	}
	return v, nil
}

// View renders the runs view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Ingestion runs"))
	b.WriteString("\n\n")

	switch {
	case v.statsErr != nil:
		b.WriteString(v.styles.Warning.Render("Index stats unavailable: " + v.statsErr.Error()))
	case v.stats != nil:
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%d videos, %d chapters indexed", v.stats.Videos, v.stats.Chapters)))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.runs) == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.runs) == 0:
		b.WriteString(v.styles.Muted.Render("No runs recorded yet. Run `tssearch fetch` to ingest a channel."))
	default:
		for i := range v.runs {
			b.WriteString(v.renderRun(i, &v.runs[i]))
			b.WriteString("\n")
		}
		if r := v.SelectedRun(); r != nil && r.Error != "" {
			b.WriteString("\n")
			b.WriteString(v.styles.Error.Render(r.Error))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [r] Refresh  [esc] Back"))
	return b.String()
}

func (v *View) renderRun(index int, r *domain.IngestRun) string {
	line := fmt.Sprintf("%s  %-9s %-8s %4d videos %5d chapters",
		r.StartedAt.In(v.zone).Format("2006-01-02 15:04"),
		r.Status, r.Source, r.VideosIndexed, r.ChaptersIndexed)
	if r.Failures > 0 {
		line += fmt.Sprintf("  %d failed", r.Failures)
	}
	if d := r.Duration(); d > 0 {
		line += "  " + d.Round(time.Second).String()
	}

	if index == v.selected {
		return v.styles.Selected.Render("> " + line)
	}
	style := v.styles.Normal
	switch r.Status {
	case domain.RunFailed:
		style = v.styles.Error
	case domain.RunRunning:
		style = v.styles.Warning
	case domain.RunSucceeded:
	}
	return "  " + style.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Runs returns the loaded runs.
func (v *View) Runs() []domain.IngestRun {
	return v.runs
}

// SelectedRun returns the selected run, or nil when none are loaded.
func (v *View) SelectedRun() *domain.IngestRun {
	if v.selected < 0 || v.selected >= len(v.runs) {
		return nil
	}
	return &v.runs[v.selected]
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
