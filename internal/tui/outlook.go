package tui

import (
	"fmt"
	"strings"
	"time"

	"runboard/internal/analysis"
	"runboard/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OutlookModel is the race outlook screen model
type OutlookModel struct {
	queryService *service.QueryService
	units        Units
	period       analysis.Period
	data         *service.OutlookData
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewOutlookModel creates a new outlook model
func NewOutlookModel(qs *service.QueryService, units Units, width, height int) OutlookModel {
	m := OutlookModel{
		queryService: qs,
		units:        units,
		period:       analysis.Period{Mode: analysis.PeriodAll},
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the outlook screen
func (m OutlookModel) Init() tea.Cmd {
	return m.loadOutlook
}

type outlookLoadedMsg struct {
	data *service.OutlookData
	err  error
}

func (m OutlookModel) loadOutlook() tea.Msg {
	data, err := m.queryService.Outlook(m.period, time.Now())
	return outlookLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m OutlookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outlookLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			m.period = nextPeriod(m.period, time.Now())
			m.loading = true
			return m, m.loadOutlook
		case "r":
			m.loading = true
			return m, m.loadOutlook
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// nextPeriod cycles all -> this year -> this month -> all
func nextPeriod(p analysis.Period, now time.Time) analysis.Period {
	switch p.Mode {
	case analysis.PeriodAll:
		return analysis.Period{Mode: analysis.PeriodYear, Year: now.Year()}
	case analysis.PeriodYear:
		return analysis.Period{Mode: analysis.PeriodMonth, Year: now.Year(), Month: now.Month()}
	default:
		return analysis.Period{Mode: analysis.PeriodAll}
	}
}

// View renders the outlook screen
func (m OutlookModel) View() string {
	if m.loading {
		return "\n  Computing race outlook..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return m.renderContent()
	}
	return m.viewport.View()
}

func (m OutlookModel) renderContent() string {
	if m.data == nil {
		return "\n  No data available."
	}

	var sections []string

	title := cardTitleStyle.Render("Race Outlook - " + m.data.PeriodLabel)
	sections = append(sections, title)

	if !m.data.HasPredictions {
		empty := "No runs in this period."
		help := statusStyle.Render("Press 'p' to change period, 'r' to refresh")
		sections = append(sections, empty, help)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderReadinessCard())
	sections = append(sections, m.renderPredictionsTable())
	sections = append(sections, m.renderSourceCard())

	help := statusStyle.Render("Press 'p' to change period, 'r' to refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OutlookModel) renderReadinessCard() string {
	title := cardTitleStyle.Render("Readiness")

	bandStyle := statusStyle
	switch m.data.ReadinessBand {
	case "ready":
		bandStyle = successStyle
	case "building":
		bandStyle = warningStyle
	}

	bar := RenderProgressBar(float64(m.data.Readiness)/100, 30)

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Left,
			bar,
			fmt.Sprintf("  %d/100 ", m.data.Readiness),
			bandStyle.Render(strings.ToUpper(m.data.ReadinessBand)),
		),
		"",
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", m.data.CTL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.1f", m.data.TSB), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m OutlookModel) renderPredictionsTable() string {
	title := cardTitleStyle.Render("Predicted Times")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %9s  %10s  %8s",
		"Distance", "Time", "Pace", "vs Prev"))

	rows := []string{header}
	for _, p := range m.data.Predictions {
		delta := p.Delta
		if delta == "" {
			delta = "-"
		}

		row := fmt.Sprintf("%-14s  %9s  %7s/km  %8s",
			p.TargetLabel, p.PredictedTime, p.PredictedPace, delta)

		styled := tableRowStyle.Render(row)
		if p.Delta != "" && p.IsFaster {
			styled = tableRowStyle.Inherit(trendUpStyle).Render(row)
		} else if p.Delta != "" && !p.IsFaster {
			styled = tableRowStyle.Inherit(trendDownStyle).Render(row)
		}
		rows = append(rows, styled)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m OutlookModel) renderSourceCard() string {
	title := cardTitleStyle.Render("Based On")

	lines := []string{
		RenderMetric("Period", m.data.PeriodStart+" - "+m.data.PeriodEnd, ""),
	}

	if ref := m.data.ReferenceRun; ref != nil {
		when := ref.StartDateLocal
		if t := analysis.ParseLocalDate(ref.StartDateLocal); !t.IsZero() {
			when = t.Format("Jan 02, 2006")
		}
		lines = append(lines,
			RenderMetric("Longest run", truncateName(ref.Name, 24), ""),
			RenderMetric("", fmt.Sprintf("%s on %s", m.units.FormatDistance(ref.Distance), when), ""),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}
