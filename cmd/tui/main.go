package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finwise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finwise/internal/account"
	accountStore "github.com/MrJamesThe3rd/finwise/internal/account/store"
	"github.com/MrJamesThe3rd/finwise/internal/analytics"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/config"
	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/export"
	"github.com/MrJamesThe3rd/finwise/internal/friend"
	friendStore "github.com/MrJamesThe3rd/finwise/internal/friend/store"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	gameStore "github.com/MrJamesThe3rd/finwise/internal/gamification/store"
	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/logging"
	"github.com/MrJamesThe3rd/finwise/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finwise/internal/matching/store"
	"github.com/MrJamesThe3rd/finwise/internal/split"
	splitStore "github.com/MrJamesThe3rd/finwise/internal/split/store"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finwise/internal/transaction/store"
)

type services struct {
	accounts     *account.Service
	transactions *transaction.Service
	game         *gamification.Service
	splits       *split.Service
	imports      *importer.Service
	analytics    *analytics.Service
	exports      *export.Service
	clock        clock.Clock
}

// screen is the part of every view the root model needs.
type screen interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type model struct {
	svc    services
	common view.CommonModel

	login   view.LoginModel
	current screen
}

func initialModel(svc services) model {
	return model{svc: svc, login: view.NewLoginModel(svc.accounts)}
}

func (m model) Init() tea.Cmd {
	return m.login.Init()
}

func (m model) open(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		m.current = view.NewRewardsModel(m.common, m.svc.game)
	case "2":
		m.current = view.NewLedgerModel(m.common, m.svc.transactions, m.svc.game, m.svc.clock)
	case "3":
		m.current = view.NewImportModel(m.common, m.svc.imports)
	case "4":
		m.current = view.NewSplitsModel(m.common, m.svc.splits)
	case "5":
		m.current = view.NewAnalyticsModel(m.common, m.svc.analytics)
	case "6":
		m.current = view.NewExportModel(m.common, m.svc.exports, m.svc.clock)
	default:
		return m, nil
	}

	return m, m.current.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.common.Width, m.common.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.common.Username != "" && m.current == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			return m.open(msg.String())
		}
	case view.LoggedInMsg:
		m.common.Username = msg.Account.Username
		slog.Info("signed in", "username", msg.Account.Username)

		return m, nil
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.common.Username == "" {
		next, cmd := m.login.Update(msg)
		m.login = next.(view.LoginModel)

		return m, cmd
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	m.current = next.(screen)

	return m, cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

func (m model) View() string {
	if m.common.Username == "" {
		return m.login.View()
	}

	if m.current == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"FinWise · " + m.common.Username + "\n\n" +
				"1. Rewards\n" +
				"2. Ledger\n" +
				"3. Import CSV\n" +
				"4. Split Expenses\n" +
				"5. Analytics\n" +
				"6. Export\n\n" +
				"q. Quit",
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(m.current.Title()),
		m.current.View(),
		helpStyle.Render(m.current.ShortHelp()),
	)
}

// logOutput keeps slog off the terminal the TUI draws on.
func logOutput() (io.Writer, func()) {
	path := os.Getenv("FINWISE_TUI_LOG")
	if path == "" {
		return io.Discard, func() {}
	}

	f, err := tea.LogToFile(path, "")
	if err != nil {
		return io.Discard, func() {}
	}

	return f, func() { _ = f.Close() }
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	out, closeLog := logOutput()
	defer closeLog()

	slog.SetDefault(logging.New(out, cfg.Log.Level, cfg.Log.Format))

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	clk := clock.System{}
	policy := gamification.Policy{
		FirstNBonusThreshold: cfg.Policy.FirstNBonusThreshold,
		PenaltyEnabled:       cfg.Policy.PenaltyEnabled,
		AchievementsEnabled:  cfg.Policy.AchievementsEnabled,
	}

	txSvc := transaction.NewService(txStore.New(db))
	gameSvc := gamification.NewService(gameStore.New(db), clk, policy)
	matchSvc := matching.NewService(matchingStore.New(db))

	svc := services{
		accounts:     account.NewService(accountStore.New(db)),
		transactions: txSvc,
		game:         gameSvc,
		splits:       split.NewService(splitStore.New(db), friend.NewService(friendStore.New(db)), clk),
		imports:      importer.NewService(matchSvc, gameSvc),
		analytics:    analytics.NewService(txSvc, clk),
		exports:      export.NewService(txSvc, clk),
		clock:        clk,
	}

	p := tea.NewProgram(initialModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
