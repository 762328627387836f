package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
)

var typeFilters = []transaction.Type{
	"",
	transaction.TypeDebit,
	transaction.TypeIncome,
	transaction.TypeLoanTaken,
	transaction.TypeLoanRepayment,
}

type LedgerModel struct {
	CommonModel
	ledger *transaction.Service
	engine *gamification.Service
	clock  clock.Clock

	state ledgerState
	table table.Model
	recs  []*transaction.Record
	form  *huh.Form

	typeFilterIdx int
	dateFilterIdx int

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formType   transaction.Type
	formAmount string
	formLabel  string
	formDate   string
	formOnTime bool
}

func NewLedgerModel(common CommonModel, ledger *transaction.Service, engine *gamification.Service, clk clock.Clock) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Label", Width: 30},
		{Title: "On time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LedgerModel{
		CommonModel: common,
		ledger:      ledger,
		engine:      engine,
		clock:       clk,
		table:       t,
		loading:     true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | t: type filter | d: date filter | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

type ledgerLoadedMsg struct {
	recs []*transaction.Record
	err  error
}

type ledgerPostedMsg struct {
	res *gamification.PostResult
	err error
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.recs = msg.recs
		m.refreshTable()

		return m, nil

	case ledgerPostedMsg:
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = describeOutcome(msg.res)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.applyFilter()

			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formType = transaction.TypeDebit
	m.formAmount = ""
	m.formLabel = ""
	m.formDate = FormatDate(m.clock.Now())
	m.formOnTime = true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeDebit),
					huh.NewOption("Income", transaction.TypeIncome),
					huh.NewOption("Loan taken", transaction.TypeLoanTaken),
					huh.NewOption("Loan repayment", transaction.TypeLoanRepayment),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("label").
				Title("Category, source or lender").
				Value(&m.formLabel).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewConfirm().
				Key("on_time").
				Title("Repaid on time?").
				Description("Only used for loan repayments").
				Value(&m.formOnTime),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgerStateBrowse
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

	return m, m.postCmd()
}

func (m LedgerModel) postCmd() tea.Cmd {
	amount, err := ParseAmount(m.form.GetString("amount"))
	if err != nil {
		return func() tea.Msg { return ledgerPostedMsg{err: err} }
	}

	date, _ := time.Parse(time.DateOnly, m.form.GetString("date"))
	onTime := m.form.GetBool("on_time")
	typ, _ := m.form.Get("type").(transaction.Type)

	details, err := transaction.NewDetails(typ, strings.TrimSpace(m.form.GetString("label")), &onTime, nil)
	if err != nil {
		return func() tea.Msg { return ledgerPostedMsg{err: err} }
	}

	rec := &transaction.Record{Date: date, Amount: amount, Details: details}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.engine.Record(ctx, m.Username, rec)

		return ledgerPostedMsg{res: res, err: err}
	}
}

func describeOutcome(res *gamification.PostResult) string {
	parts := []string{"Saved."}

	if res.Outcome.TransactionBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d for logging it.", res.Outcome.TransactionBonus))
	}

	if res.Outcome.Penalty != 0 {
		parts = append(parts, fmt.Sprintf("%d: %s is over its limit.", res.Outcome.Penalty, res.Outcome.BreachedCategory))
	}

	if res.Outcome.TimelyRepaymentBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d for repaying on time.", res.Outcome.TimelyRepaymentBonus))
	}

	if res.Weekly.Awarded != 0 {
		parts = append(parts, fmt.Sprintf("+%d weekly streak.", res.Weekly.Awarded))
	}

	for _, a := range res.Unlocked {
		parts = append(parts, "Unlocked "+a.Name+"!")
	}

	parts = append(parts, fmt.Sprintf("Balance: %d points.", res.Points))

	return strings.Join(parts, " ")
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	typeLabel := "All"
	if t := typeFilters[m.typeFilterIdx]; t != "" {
		typeLabel = string(t)
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [d] Date: %s",
		activeStyle(typeLabel),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ledgerStateAdd && m.form != nil {
		panel := panelStyle.Width(48).Render("New Transaction\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) applyFilter() {
	m.filter.Type = nil
	if t := typeFilters[m.typeFilterIdx]; t != "" {
		m.filter.Type = &t
	}

	today := clock.Date(m.clock.Now())

	switch m.dateFilterIdx {
	case 1:
		s, e := timeframeToDateRange(TimeframeThisMonth, today)
		m.filter.StartDate, m.filter.EndDate = &s, &e
	case 2:
		s, e := timeframeToDateRange(TimeframeLastMonth, today)
		m.filter.StartDate, m.filter.EndDate = &s, &e
	default:
		m.filter.StartDate, m.filter.EndDate = nil, nil
	}
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.recs))

	for _, rec := range m.recs {
		onTime := ""
		if r, ok := rec.Details.(transaction.LoanRepayment); ok {
			onTime = "no"
			if r.PaidOnTime {
				onTime = "yes"
			}
		}

		rows = append(rows, table.Row{
			FormatDate(rec.Date),
			string(rec.Type()),
			FormatAmount(rec.Amount),
			rec.Label(),
			onTime,
		})
	}

	m.table.SetRows(rows)
}

func (m LedgerModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		recs, err := m.ledger.List(ctx, m.Username, filter)

		return ledgerLoadedMsg{recs: recs, err: err}
	}
}
