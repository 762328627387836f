package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/export"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type exportStep int

const (
	exportStepRange exportStep = iota
	exportStepDestination
	exportStepWriting
	exportStepDone
)

const (
	exportTimeout    = 2 * time.Minute
	defaultExportDir = "./exports"
)

type ExportModel struct {
	CommonModel
	exports *export.Service

	step    exportStep
	picker  TimeframePicker
	filter  transaction.ListFilter
	dest    *huh.Form
	spinner spinner.Model

	written string
	summary string
	err     error
}

func NewExportModel(common CommonModel, svc *export.Service, clk clock.Clock) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return ExportModel{
		CommonModel: common,
		exports:     svc,
		picker:      NewTimeframePicker(TimeframeThisMonth, clk),
		spinner:     s,
	}
}

func (m ExportModel) Title() string { return "Export Ledger" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case exportStepWriting:
		return "Writing archive..."
	case exportStepDone:
		return "Esc: back"
	case exportStepDestination:
		return "Enter: export | Esc: change range"
	}

	return "Enter: select | Esc: back"
}

func (m ExportModel) Init() tea.Cmd {
	return m.picker.Init()
}

type exportResultMsg struct {
	summary string
	path    string
	err     error
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sel, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = transaction.ListFilter{}
		if !sel.All {
			m.filter.StartDate = &sel.Start
			m.filter.EndDate = &sel.End
		}

		m.step = exportStepDestination
		m.dest = destinationForm()

		return m, m.dest.Init()
	}

	if res, ok := msg.(exportResultMsg); ok {
		m.step = exportStepDone
		m.summary, m.written, m.err = res.summary, res.path, res.err

		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	esc := isKey && keyMsg.Type == tea.KeyEsc

	switch m.step {
	case exportStepRange:
		if esc {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case exportStepDestination:
		if esc {
			m.step = exportStepRange
			m.picker.Reset()

			return m, m.picker.Init()
		}

		form, cmd := m.dest.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.dest = f
		}

		if m.dest.State != huh.StateCompleted {
			return m, cmd
		}

		dir := strings.TrimSpace(m.dest.GetString("dir"))
		if dir == "" {
			dir = defaultExportDir
		}

		m.step = exportStepWriting

		return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.filter, dir))

	case exportStepWriting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case exportStepDone:
		if esc {
			return m, Back
		}
	}

	return m, nil
}

func destinationForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Save to").
				Description("Created when missing").
				Placeholder(defaultExportDir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) exportCmd(filter transaction.ListFilter, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		b, err := m.exports.Export(ctx, m.Username, filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := writeBundle(b, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{summary: b.Summary(), path: path}
	}
}

func writeBundle(b *export.Bundle, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, b.FileName())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	if err := b.WriteArchive(f); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}

	return path, f.Close()
}

func (m ExportModel) View() string {
	var body string

	switch m.step {
	case exportStepRange:
		body = m.picker.View()
	case exportStepDestination:
		body = m.dest.View()
	case exportStepWriting:
		body = m.spinner.View() + " Writing archive..."
	case exportStepDone:
		if m.err != nil {
			return errorView(m.err)
		}

		body = lipgloss.JoinVertical(lipgloss.Left,
			goodStyle.Bold(true).Render("Export complete"),
			faintStyle.Render("Saved to "+m.written),
			"",
			m.summary,
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}
