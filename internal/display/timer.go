package display

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/airfryer/internal/domain"
)

// Controls is the slice of the countdown the timer screen drives.
// *timer.Countdown satisfies it.
type Controls interface {
	Snapshot() domain.TimerState
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Reset(ctx context.Context) error
	Dismiss(ctx context.Context) error
}

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Dismiss, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "s"),
		key.WithHelp("space", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("d", "enter"),
		key.WithHelp("d", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Messages.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type timerModel struct {
	ctx    context.Context
	ctrl   Controls
	header string
	state  domain.TimerState
	bar    progress.Model
	help   help.Model
	width  int
}

func newTimerModel(ctx context.Context, ctrl Controls, header string) timerModel {
	return timerModel{
		ctx:    ctx,
		ctrl:   ctrl,
		header: header,
		state:  ctrl.Snapshot(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:   help.New(),
	}
}

func (m timerModel) Init() tea.Cmd {
	return tickCmd()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			return m.apply(m.toggle)
		case key.Matches(msg, keys.Reset):
			return m.apply(m.ctrl.Reset)
		case key.Matches(msg, keys.Dismiss):
			if m.state.Status != domain.TimerFinished {
				return m, nil
			}
			return m.apply(m.ctrl.Dismiss)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-4, 10), 60)
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.state = m.ctrl.Snapshot()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}
	return m, nil
}

// apply runs a control action and refreshes the snapshot. Rejected
// transitions are shown above the timer instead of aborting.
func (m timerModel) apply(action func(context.Context) error) (tea.Model, tea.Cmd) {
	err := action(m.ctx)
	m.state = m.ctrl.Snapshot()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return m, tea.Println(secondaryStyle.Render("  " + err.Error()))
		}
		return m, tea.Println(urgentStyle.Render("  " + err.Error()))
	}
	return m, nil
}

func (m timerModel) toggle(ctx context.Context) error {
	switch m.state.Status {
	case domain.TimerRunning:
		return m.ctrl.Pause(ctx)
	case domain.TimerPaused:
		return m.ctrl.Resume(ctx)
	default:
		return m.ctrl.Start(ctx)
	}
}

func (m timerModel) titleStr() string {
	label := m.state.Label
	if label == "" {
		label = "Air fryer"
	}
	if m.state.Status == domain.TimerFinished {
		return label + ": DONE!"
	}
	return label + ": " + fmtDuration(m.state.Remaining)
}

// fraction is the share of the countdown already elapsed.
func (m timerModel) fraction() float64 {
	if m.state.Duration <= 0 || m.state.Status == domain.TimerFinished {
		return 1
	}
	done := m.state.Duration - m.state.Remaining
	if done < 0 {
		return 0
	}
	return float64(done) / float64(m.state.Duration)
}

func (m timerModel) View() string {
	var b strings.Builder

	if m.header != "" {
		b.WriteString(m.header)
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderBar())
	b.WriteString("\n\n")
	b.WriteString("  " + m.bar.ViewAs(m.fraction()))
	b.WriteString("\n\n")
	b.WriteString("  " + m.help.ShortHelpView(keys.ShortHelp()))
	b.WriteByte('\n')
	return b.String()
}

func (m timerModel) renderBar() string {
	label := m.state.Label
	if label == "" {
		label = "timer"
	}

	var status string
	switch m.state.Status {
	case domain.TimerFinished:
		status = timerDoneStyle.Render("DONE!")
		if !m.state.Dismissed {
			status += sepStyle.Render("  │  ") + urgentStyle.Render("press d to dismiss")
		}
	case domain.TimerPaused:
		status = timerPausedStyle.Render(fmtDuration(m.state.Remaining) + " paused")
	case domain.TimerIdle:
		status = timerPausedStyle.Render(fmtDuration(m.state.Remaining) + " ready")
	default:
		status = timerRunStyle.Render(fmtDuration(m.state.Remaining))
	}

	content := " " + labelStyle.Render(label+": ") + status + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}
