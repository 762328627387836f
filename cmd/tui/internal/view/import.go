package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	records    list.Model

	status string
	err    error
}

func NewImportModel(common CommonModel, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		CommonModel:   common,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: import another file"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult {
			var cmd tea.Cmd
			m.records, cmd = m.records.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions from a %s file (%s), skipped %d already in the ledger.",
			len(msg.result.Imported), msg.result.Format, msg.result.Charset, len(msg.result.Duplicates))
		m.records = newRecordList(msg.result)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a ledger export or bank statement:\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(goodStyle.Render(m.status) + "\n\n" + m.records.View())
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importService.Import(ctx, m.Username, f)

		return importResultMsg{result: result, err: err}
	}
}

// Record list

type recordItem struct {
	rec       *transaction.Record
	duplicate bool
}

func (i recordItem) Title() string       { return "" }
func (i recordItem) Description() string { return "" }
func (i recordItem) FilterValue() string { return i.rec.Label() }

func newRecordList(res *importer.Result) list.Model {
	items := make([]list.Item, 0, len(res.Imported)+len(res.Duplicates))

	for _, rec := range res.Imported {
		items = append(items, recordItem{rec: rec})
	}

	for _, rec := range res.Duplicates {
		items = append(items, recordItem{rec: rec, duplicate: true})
	}

	l := list.New(items, recordDelegate{}, 80, 20)
	l.Title = "Records"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

type recordDelegate struct{}

func (d recordDelegate) Height() int                             { return 1 }
func (d recordDelegate) Spacing() int                            { return 0 }
func (d recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d recordDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(recordItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%s  %-15s %10s  %s",
		cursor,
		FormatDate(item.rec.Date),
		item.rec.Type(),
		FormatAmount(item.rec.Amount),
		item.rec.Label(),
	)

	if item.duplicate {
		line = faintStyle.Render(line + "  (skipped)")
	}

	fmt.Fprintln(w, line)
}
