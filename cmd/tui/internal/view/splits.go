package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/split"
)

type splitsState int

const (
	splitsStateBrowse splitsState = iota
	splitsStateAdd
)

type SplitsModel struct {
	CommonModel
	splits *split.Service

	state   splitsState
	table   table.Model
	listing *split.Listing
	rows    []*split.Expense
	form    *huh.Form

	loading bool
	err     error
	status  string

	formAmount       string
	formDescription  string
	formParticipants string
}

func NewSplitsModel(common CommonModel, splits *split.Service) SplitsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Created by", Width: 14},
			{Title: "Description", Width: 26},
			{Title: "Total", Width: 10},
			{Title: "Each", Width: 10},
			{Title: "With", Width: 24},
			{Title: "Settled", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return SplitsModel{CommonModel: common, splits: splits, table: t, loading: true}
}

func (m SplitsModel) Title() string { return "Split Expenses" }

func (m SplitsModel) ShortHelp() string {
	if m.state == splitsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | s: settle | r: refresh"
}

func (m SplitsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type splitsLoadedMsg struct {
	listing *split.Listing
	err     error
}

type splitSavedMsg struct {
	status string
	err    error
}

func (m SplitsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case splitsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.listing = msg.listing
			m.refreshTable()
		}

		return m, nil

	case splitSavedMsg:
		m.state = splitsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()
	}

	if m.state == splitsStateAdd {
		return m.updateAdd(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "s":
			return m, m.settleCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SplitsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formAmount, m.formDescription, m.formParticipants = "", "", ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDescription),
			huh.NewInput().
				Key("participants").
				Title("Friends").
				Description("Usernames separated by commas").
				Value(&m.formParticipants).
				Validate(func(s string) error {
					if len(parseUsernames(s)) == 0 {
						return fmt.Errorf("at least one friend is required")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = splitsStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m SplitsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = splitsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func parseUsernames(s string) []string {
	var out []string

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func (m SplitsModel) createCmd() tea.Cmd {
	amount, _ := ParseAmount(m.form.GetString("amount"))
	params := split.CreateParams{
		Amount:       amount,
		Description:  strings.TrimSpace(m.form.GetString("description")),
		Participants: parseUsernames(m.form.GetString("participants")),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		exp, err := m.splits.Create(ctx, m.Username, params)
		if err != nil {
			return splitSavedMsg{err: err}
		}

		return splitSavedMsg{status: fmt.Sprintf("Split %s: %s each.", exp.Description, FormatAmount(exp.AmountPerPerson))}
	}
}

func (m SplitsModel) settleCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	exp := m.rows[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.splits.Settle(ctx, exp.ID, m.Username); err != nil {
			return splitSavedMsg{err: err}
		}

		return splitSavedMsg{status: fmt.Sprintf("Settled %s.", exp.Description)}
	}
}

func (m *SplitsModel) refreshTable() {
	m.rows = append(slices.Clone(m.listing.Created), m.listing.Involved...)

	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		settled := "no"
		if e.Settled {
			settled = "yes"
		}

		rows = append(rows, table.Row{
			e.CreatedBy,
			e.Description,
			FormatAmount(e.TotalAmount),
			FormatAmount(e.AmountPerPerson),
			strings.Join(e.Participants, ", "),
			settled,
		})
	}

	m.table.SetRows(rows)
}

func formatBalances(title string, balances map[string]int64) string {
	if len(balances) == 0 {
		return title + ": nothing\n"
	}

	var sb strings.Builder

	sb.WriteString(title + ":\n")

	for _, name := range slices.Sorted(maps.Keys(balances)) {
		fmt.Fprintf(&sb, "  %-14s %s\n", name, FormatAmount(balances[name]))
	}

	return sb.String()
}

func (m SplitsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		l, err := m.splits.List(ctx, m.Username)

		return splitsLoadedMsg{listing: l, err: err}
	}
}

func (m SplitsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading split expenses...")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	balances := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(36).Render(formatBalances("Owed to you", m.listing.OwedToYou)),
		formatBalances("You owe", m.listing.YouOwe),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		balances,
		lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Render(m.table.View()),
	)

	if m.state == splitsStateAdd && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render("New Split\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
