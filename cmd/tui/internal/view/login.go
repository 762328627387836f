package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/account"
)

// LoggedInMsg carries the account that signed in.
type LoggedInMsg struct {
	Account *account.Account
}

type loginResultMsg struct {
	acc *account.Account
	err error
}

type LoginModel struct {
	accounts *account.Service

	form       *huh.Form
	identifier string
	password   string
	checking   bool
	err        error
}

func NewLoginModel(accounts *account.Service) LoginModel {
	m := LoginModel{accounts: accounts}
	m.form = m.buildForm()

	return m
}

func (m *LoginModel) buildForm() *huh.Form {
	m.password = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("identifier").
				Title("Username or email").
				Value(&m.identifier).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("required")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Sign In" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		m.checking = false

		if res.err != nil {
			m.err = res.err
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Account: res.acc} }
	}

	if m.checking {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.checking = true

	return m, m.authenticateCmd(strings.TrimSpace(m.form.GetString("identifier")), m.form.GetString("password"))
}

func (m LoginModel) authenticateCmd(identifier, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		acc, err := m.accounts.Authenticate(ctx, identifier, password)

		return loginResultMsg{acc: acc, err: err}
	}
}

func (m LoginModel) View() string {
	body := titleStyle.Render("FinWise") + "\n\n"

	if m.checking {
		body += "Checking credentials..."
	} else {
		body += m.form.View()
	}

	if m.err != nil {
		body += "\n" + errorStyle.Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}
