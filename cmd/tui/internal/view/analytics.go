package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/analytics"
)

var frameLabels = map[analytics.TimeFrame]string{
	analytics.Week:        "Last 7 days",
	analytics.Month:       "Last 30 days",
	analytics.ThreeMonths: "Last 3 months",
	analytics.SixMonths:   "Last 6 months",
	analytics.Year:        "Last year",
}

type AnalyticsModel struct {
	CommonModel
	svc *analytics.Service

	cursor  int
	summary *analytics.Summary
	loading bool
	err     error
}

func NewAnalyticsModel(common CommonModel, svc *analytics.Service) AnalyticsModel {
	return AnalyticsModel{CommonModel: common, svc: svc, cursor: 1, loading: true}
}

func (m AnalyticsModel) Title() string     { return "Analytics" }
func (m AnalyticsModel) ShortHelp() string { return "Esc: back | ←/→: time frame" }

type summaryLoadedMsg struct {
	summary *analytics.Summary
	err     error
}

func (m AnalyticsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AnalyticsModel) loadCmd() tea.Cmd {
	frame := analytics.TimeFrames[m.cursor]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.svc.Summary(ctx, m.Username, frame)

		return summaryLoadedMsg{summary: s, err: err}
	}
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.summary = msg.summary
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyLeft:
			if m.cursor > 0 {
				m.cursor--
				m.loading = true

				return m, m.loadCmd()
			}
		case tea.KeyRight:
			if m.cursor < len(analytics.TimeFrames)-1 {
				m.cursor++
				m.loading = true

				return m, m.loadCmd()
			}
		}
	}

	return m, nil
}

func renderBreakdown(title string, b analytics.Breakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", titleStyle.Render(title), FormatAmount(b.Total))

	if len(b.Groups) == 0 {
		sb.WriteString(faintStyle.Render("  none") + "\n")
	}

	for _, g := range b.Groups {
		fmt.Fprintf(&sb, "  %-22s %10s\n", g.Label, FormatAmount(g.Amount))
	}

	return sb.String()
}

func (m AnalyticsModel) View() string {
	var tabs []string

	for i, f := range analytics.TimeFrames {
		label := frameLabels[f]
		if i == m.cursor {
			label = activeStyle("[" + label + "]")
		}

		tabs = append(tabs, label)
	}

	header := strings.Join(tabs, "  ")

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n\nLoading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(header) + errorView(m.err)
	}

	s := m.summary
	net := goodStyle.Render(FormatAmount(s.Net))
	if s.Net < 0 {
		net = errorStyle.Render(FormatAmount(s.Net))
	}

	left := renderBreakdown("Income", s.Income) + "\n" + renderBreakdown("Expenses", s.Expenses)
	right := renderBreakdown("Loans taken", s.LoansTaken) + "\n" + renderBreakdown("Repayments", s.Repayments)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		faintStyle.Render(fmt.Sprintf("%s to %s", FormatDate(s.StartDate), FormatDate(s.EndDate))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(left), right),
		"Net balance: "+net,
	))
}
