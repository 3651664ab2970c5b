package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/medistock/internal/report"
)

const dashboardDays = 7

// DashboardModel shows the stat cards and the weekly sales chart.
type DashboardModel struct {
	reportService *report.Service

	summary report.Summary
	daily   []report.DayTotal
	loading bool
	err     error
}

func NewDashboardModel(reportSvc *report.Service) DashboardModel {
	return DashboardModel{reportService: reportSvc, loading: true}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.summary = msg.summary
		m.daily = msg.daily
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	weekUnits := 0
	for _, day := range m.daily {
		weekUnits += day.Quantity
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Items", fmt.Sprintf("%d", m.summary.TotalItems)),
		statCard("Total Stock", fmt.Sprintf("%d", m.summary.TotalStock)),
		statCard(fmt.Sprintf("Units Sold (%dd)", dashboardDays), fmt.Sprintf("%d", weekUnits)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		lipgloss.NewStyle().Bold(true).Render("Weekly Sales"),
		m.renderChart(),
		"",
		lipgloss.NewStyle().Faint(true).Render("r: refresh | Esc: back"),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func statCard(title, value string) string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		Margin(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(fmt.Sprintf("%s\n%s",
			lipgloss.NewStyle().Faint(true).Render(title),
			lipgloss.NewStyle().Bold(true).Render(value),
		))
}

func (m DashboardModel) renderChart() string {
	maxQty := 1
	for _, day := range m.daily {
		maxQty = max(maxQty, day.Quantity)
	}

	const barWidth = 30

	var sb strings.Builder

	for _, day := range m.daily {
		bar := strings.Repeat("█", day.Quantity*barWidth/maxQty)
		sb.WriteString(fmt.Sprintf("%s %s %d\n",
			day.Date.Format("Jan 02"),
			lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Render(bar),
			day.Quantity,
		))
	}

	return sb.String()
}

type dashboardLoadedMsg struct {
	summary report.Summary
	daily   []report.DayTotal
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		summary, err := m.reportService.Summary(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		daily, err := m.reportService.DailySales(ctx, time.Now(), dashboardDays)

		return dashboardLoadedMsg{summary: summary, daily: daily, err: err}
	}
}
