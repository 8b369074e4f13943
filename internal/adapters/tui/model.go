// Package tui hosts the page in a terminal. Every key that changes a control
// runs a fresh render pass through the page service.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"hotel_app/internal/domain"
)

type Renderer interface {
	Render(ctx context.Context, f domain.Filters) (domain.PageView, error)
}

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Width(30)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("2")).
			PaddingLeft(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

type Model struct {
	ctx     context.Context
	pages   Renderer
	filters domain.Filters
	view    domain.PageView
	err     error
}

func New(ctx context.Context, pages Renderer) Model {
	m := Model{ctx: ctx, pages: pages, filters: domain.DefaultFilters()}
	m.rerender()
	return m
}

func (m Model) Filters() domain.Filters   { return m.filters }
func (m Model) PageView() domain.PageView { return m.view }

func (m *Model) rerender() {
	pv, err := m.pages.Render(m.ctx, m.filters)
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		m.err = err
		return
	}
	m.view, m.err = pv, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	next := m.filters
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "-":
		next.Guests = domain.Clamp(next.Guests.Int() - 1)
	case "right", "l", "+":
		next.Guests = domain.Clamp(next.Guests.Int() + 1)
	case "up", "k":
		next.City = stepCity(next.City, -1)
	case "down", "j", "tab":
		next.City = stepCity(next.City, 1)
	case "r":
		next = domain.DefaultFilters()
	default:
		return m, nil
	}
	if next != m.filters {
		m.filters = next
		m.rerender()
	}
	return m, nil
}

func stepCity(c domain.City, delta int) domain.City {
	cs := domain.Cities()
	for i, x := range cs {
		if x == c {
			return cs[(i+delta+len(cs))%len(cs)]
		}
	}
	return domain.DefaultCity
}

func (m Model) View() string {
	pv := m.view
	sb := pv.Sidebar

	var side strings.Builder
	side.WriteString(headingStyle.Render(sb.Header) + "\n")
	side.WriteString(labelStyle.Render(sb.City.Label) + "\n")
	for _, c := range sb.City.Options {
		if c == sb.City.Selected {
			side.WriteString(selectedStyle.Render("● "+c.String()) + "\n")
		} else {
			side.WriteString("○ " + c.String() + "\n")
		}
	}
	side.WriteString("\n" + labelStyle.Render(sb.Guests.Label) + "\n")
	side.WriteString(slider(sb.Guests))

	var content strings.Builder
	content.WriteString(headingStyle.Render(pv.Heading) + "\n")
	content.WriteString(pv.Welcome + "\n\n")
	if m.err != nil {
		content.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		content.WriteString(successStyle.Render(pv.Success))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(side.String()), "  ", content.String())
	return body + "\n" + helpStyle.Render("←/→ guests · ↑/↓ city · r reset · q quit") + "\n"
}

func slider(s domain.SliderControl) string {
	var b strings.Builder
	for i := s.Min; i <= s.Max; i++ {
		if i == s.Value {
			b.WriteString(selectedStyle.Render("◆"))
		} else {
			b.WriteString("─")
		}
	}
	return fmt.Sprintf("%d %s %d  [%d]", s.Min, b.String(), s.Max, s.Value)
}

// Run blocks until the user quits.
func Run(ctx context.Context, pages Renderer) error {
	p := tea.NewProgram(New(ctx, pages), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
