package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/planner"
)

const (
	cardWidth = 28
	barWidth  = 30
)

var (
	colorAccent = lipgloss.Color("39")
	colorMuted  = lipgloss.Color("245")
	colorGood   = lipgloss.Color("42")
	colorBad    = lipgloss.Color("203")
	colorHeart  = lipgloss.Color("205")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorBad)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	cardFocusedStyle = cardStyle.BorderForeground(colorAccent)
	cardPickedStyle  = cardStyle.BorderForeground(colorGood)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Reverse(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			MarginTop(1)
)

// View implements tea.Model.
func (m Model) View() string {
	page := planner.Compose(m.catalog.Status(), m.state)

	var b strings.Builder
	b.WriteString(titleStyle.Render("✈ TravelVista"))
	b.WriteString(mutedStyle.Render("  plan your next trip"))
	b.WriteString("\n\n")

	b.WriteString(m.viewSearch(page.Search))
	b.WriteString("\n")

	switch {
	case page.Loading:
		b.WriteString(mutedStyle.Render("Loading destinations…"))
	case len(page.Cards) == 0:
		b.WriteString(mutedStyle.Render("No destinations available."))
	default:
		b.WriteString(m.viewGrid(page.Cards))
	}
	b.WriteString("\n")

	if page.Trip != nil {
		b.WriteString(m.viewTrip(page.Trip))
		b.WriteString("\n")
	}

	switch m.focus {
	case focusTitle, focusBudget:
		b.WriteString("\n" + m.editor.View() + "\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewSearch(sv planner.SearchView) string {
	input := m.search.View()
	if m.focus != focusSearch && sv.Query == "" {
		input = mutedStyle.Render("Press / to search")
	}
	if !sv.Open {
		return input + "\n"
	}

	var rows []string
	if len(sv.Results) == 0 {
		rows = append(rows, mutedStyle.Render("No destinations found"))
	}
	for i, hit := range sv.Results {
		row := fmt.Sprintf("%s, %s  %s", hit.Name, hit.Country, mutedStyle.Render(hit.DailyCost))
		if hit.Region != "" {
			row += mutedStyle.Render("  " + hit.Region)
		}
		if m.focus == focusSearch && i == m.result {
			row = highlightStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return input + "\n" + dropdownStyle.Render(strings.Join(rows, "\n")) + "\n"
}

func (m Model) viewGrid(cards []planner.Card) string {
	cols := m.columns()
	var (
		lines []string
		row   []string
	)
	for i, c := range cards {
		row = append(row, m.viewCard(i, c))
		if len(row) == cols || i == len(cards)-1 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewCard(i int, c planner.Card) string {
	name := lipgloss.NewStyle().Bold(true).Render(c.Name)
	if c.Favorite {
		name += lipgloss.NewStyle().Foreground(colorHeart).Render(" ♥")
	}
	body := strings.Join([]string{
		name,
		mutedStyle.Render(c.Country) + "  ★ " + c.Rating,
		c.DailyCost,
		mutedStyle.Render(strings.Join(c.Activities, " · ")),
	}, "\n")

	style := cardStyle
	if m.state.Selection.Contains(c.ID) {
		style = cardPickedStyle
	}
	if m.focus == focusGrid && i == m.cursor {
		style = cardFocusedStyle
	}
	return style.Render(body)
}

func (m Model) viewTrip(t *planner.TripPanel) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	if t.StartDate != nil || t.EndDate != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s → %s", dateOrBlank(t.StartDate), dateOrBlank(t.EndDate))))
	}
	b.WriteString("\n\n")

	for _, e := range t.Entries {
		fmt.Fprintf(&b, "%d. %s, %s  %s\n", e.Position, e.Name, e.Country,
			mutedStyle.Render(fmt.Sprintf("%d days · %s", e.Days, e.CostText)))
	}

	fmt.Fprintf(&b, "\nEstimated total: %s   Budget: %s\n", t.EstimatedTotal, t.BudgetDisplay)
	if t.BudgetMessage != "" {
		color := colorGood
		if t.OverBudget {
			color = colorBad
		}
		bar := progressBar(t.BudgetFill, barWidth)
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(bar + "  " + t.BudgetMessage))
	}
	return panelStyle.Render(b.String())
}

// progressBar draws fill (0..1) as a fixed-width bar.
func progressBar(fill float64, width int) string {
	n := int(fill*float64(width) + 0.5)
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func dateOrBlank(s *string) string {
	if s == nil {
		return "…"
	}
	return *s
}

// validationMessage strips the sentinel prefix from a validation error.
func validationMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, domain.ErrValidation) {
		msg = strings.TrimPrefix(msg, domain.ErrValidation.Error()+": ")
	}
	return msg
}
