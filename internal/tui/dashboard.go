package tui

import (
	"fmt"
	"time"

	"runboard/internal/analysis"
	"runboard/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.Dashboard(time.Now())
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Import FIT files with -import <dir>."
	}

	var sections []string

	fitnessCard := m.renderFitnessCard()
	weekCard := m.renderWeekCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, fitnessCard, "  ", weekCard)
	sections = append(sections, topRow)

	sections = append(sections, m.renderHealthCard())

	if len(m.data.CTLHistory) > 2 {
		sections = append(sections, m.renderLoadChart())
	}

	sections = append(sections, m.renderWeeklyChart())
	sections = append(sections, m.renderRecentRuns())

	help := statusStyle.Render("Press 'r' to refresh, '2' for race outlook")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Training Load")

	if !m.data.HasFitness {
		return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, "No runs yet"))
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", m.data.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", m.data.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.1f", m.data.TSB), ""),
		"",
		mutedStyle.Render(m.data.FormDescription),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Runs", fmt.Sprintf("%d", m.data.WeekRunCount), ""),
		RenderMetric("Distance", m.units.FormatDistanceKm(m.data.WeekDistanceKm), ""),
		RenderMetric("Time", formatDuration(m.data.WeekTime), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderHealthCard() string {
	title := cardTitleStyle.Render("Training Health")

	acwr := "-"
	acwrTrend := ""
	if m.data.ACWR != nil {
		acwr = fmt.Sprintf("%.2f", *m.data.ACWR)
		acwrTrend = bandTrend(m.data.ACWRBand)
	}

	ramp := m.units.FormatDistanceKm(m.data.RampKm)
	if m.data.RampPercent != nil {
		ramp = fmt.Sprintf("%s (%+.0f%%)", ramp, *m.data.RampPercent)
	}

	longRun := "-"
	if m.data.LongRunRatio != nil {
		longRun = fmt.Sprintf("%.0f%%", *m.data.LongRunRatio)
	}

	efficiency := "-"
	if m.data.Efficiency != nil {
		efficiency = fmt.Sprintf("%.2f m/beat", *m.data.Efficiency)
	}

	gapTrend := "-"
	gapArrow := ""
	if m.data.GAPTrend != nil {
		gapTrend = fmt.Sprintf("%+.0f s/km", *m.data.GAPTrend)
		if *m.data.GAPTrend < 0 {
			gapArrow = "↑ faster"
		} else if *m.data.GAPTrend > 0 {
			gapArrow = "↓ slower"
		}
	}

	lines := []string{
		RenderMetric("ACWR", acwr, acwrTrend),
		RenderMetric("Weekly ramp", ramp, ""),
		RenderMetric("Consistency", fmt.Sprintf("%d/100", m.data.Consistency), ""),
		RenderMetric("Long run share", longRun, ""),
		RenderMetric("Efficiency", efficiency, ""),
		RenderMetric("GAP trend", gapTrend, gapArrow),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(54).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// bandTrend maps an ACWR band to a colored annotation
func bandTrend(band string) string {
	switch band {
	case "high":
		return "↓ " + band
	case "caution":
		return "↓ " + band
	case "balanced":
		return "↑ " + band
	default:
		return band
	}
}

func (m DashboardModel) renderLoadChart() string {
	title := cardTitleStyle.Render("Fitness & Fatigue - Last 90 Days")

	graph := asciigraph.PlotMany(
		[][]float64{m.data.CTLHistory, m.data.ATLHistory},
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)

	legend := statusStyle.Render("CTL (blue)  ATL (red)")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderWeeklyChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Weekly Distance (%s) - Last 12 Weeks", m.units.DistanceLabel()))

	values := m.data.WeeklyKm
	if m.units.IsMiles() {
		values = make([]float64, len(m.data.WeeklyKm))
		for i, km := range m.data.WeeklyKm {
			values[i] = km * metersPerKm / metersPerMile
		}
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	labels := ""
	if n := len(m.data.WeeklyLabels); n > 0 {
		labels = statusStyle.Render(m.data.WeeklyLabels[0] + " .. " + m.data.WeeklyLabels[n-1])
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, labels))
}

func (m DashboardModel) renderRecentRuns() string {
	title := cardTitleStyle.Render("Recent Runs")

	if len(m.data.RecentRuns) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No runs yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-20s  %9s  %8s  %5s",
		"Date", "Name", "Distance", "Pace", "HR"))

	rows := []string{header}
	for i, a := range m.data.RecentRuns {
		if i >= 5 {
			break
		}

		hr := "-"
		if a.AverageHeartrate != nil {
			hr = fmt.Sprintf("%.0f", *a.AverageHeartrate)
		}

		date := a.StartDateLocal
		if t := analysis.ParseLocalDate(a.StartDateLocal); !t.IsZero() {
			date = t.Format("Jan 02")
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-20s  %9s  %8s  %5s",
			date,
			truncateName(a.Name, 20),
			m.units.FormatDistance(a.Distance),
			m.units.FormatPace(int(a.MovingTime), a.Distance),
			hr,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
