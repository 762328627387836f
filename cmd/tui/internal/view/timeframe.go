package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisWeek  Timeframe = 0
	TimeframeLastWeek  Timeframe = 1
	TimeframeThisMonth Timeframe = 2
	TimeframeLastMonth Timeframe = 3
	TimeframeAll       Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// timeframeToDateRange resolves a predefined frame relative to now. Weeks start on Monday.
func timeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	today := clock.Date(now)

	switch tf {
	case TimeframeThisWeek:
		return clock.WeekStart(today), today
	case TimeframeLastWeek:
		start := clock.WeekStart(today).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 6)
	case TimeframeThisMonth:
		return clock.MonthStart(today), today
	case TimeframeLastMonth:
		start := clock.MonthStart(today).AddDate(0, -1, 0)
		return start, start.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// normalizeDateRange drops the time of day. Ledger dates are plain dates, so
// both bounds stay inclusive.
func normalizeDateRange(start, end time.Time) (time.Time, time.Time) {
	return clock.Date(start), clock.Date(end)
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	clock    clock.Clock
	minFrame Timeframe
	// frame is shared by copies of the picker so the form's hide func sees
	// the current selection.
	frame *Timeframe
	form  *huh.Form
	err   error
}

// NewTimeframePicker offers the frames from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe, clk clock.Clock) TimeframePicker {
	m := TimeframePicker{clock: clk, minFrame: minFrame, frame: new(Timeframe)}
	m.form = m.buildForm()

	return m
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func (m TimeframePicker) buildForm() *huh.Form {
	*m.frame = m.minFrame

	var opts []huh.Option[Timeframe]
	for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
		opts = append(opts, huh.NewOption(tf.String(), tf))
	}

	frame := m.frame

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Key("frame").
				Title("Timeframe").
				Options(opts...).
				Value(frame),
		),
		huh.NewGroup(
			huh.NewInput().Key("start").Title("Start date").Placeholder("YYYY-MM-DD").Validate(validDate),
			huh.NewInput().Key("end").Title("End date").Placeholder("YYYY-MM-DD").Validate(validDate),
		).WithHideFunc(func() bool { return *frame != TimeframeCustom }),
	).WithWidth(40).WithShowHelp(false)
}

func (m TimeframePicker) Init() tea.Cmd {
	return m.form.Init()
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sel, err := m.selection()
	if err != nil {
		m.err = err
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	m.err = nil

	return m, func() tea.Msg { return sel }
}

func (m TimeframePicker) selection() (TimeframeSelectedMsg, error) {
	switch *m.frame {
	case TimeframeAll:
		return TimeframeSelectedMsg{All: true}, nil
	case TimeframeCustom:
		start, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("start")))
		end, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("end")))

		if end.Before(start) {
			return TimeframeSelectedMsg{}, fmt.Errorf("end date is before start date")
		}

		start, end = normalizeDateRange(start, end)

		return TimeframeSelectedMsg{Start: start, End: end}, nil
	}

	start, end := timeframeToDateRange(*m.frame, m.clock.Now())

	return TimeframeSelectedMsg{Start: start, End: end}, nil
}

func (m TimeframePicker) View() string {
	if m.err != nil {
		return m.form.View() + "\n" + errorStyle.Render("Error: "+m.err.Error())
	}

	return m.form.View()
}

// IsSelecting reports whether the picker is still waiting for a choice.
func (m TimeframePicker) IsSelecting() bool {
	return m.form.State == huh.StateNormal
}

// Reset starts the selection over.
func (m *TimeframePicker) Reset() {
	m.err = nil
	m.form = m.buildForm()
}
