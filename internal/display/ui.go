package display

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// UI runs the interactive cook-along timer.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Printf] at any time; output lands above the timer so concurrent
// notifications never garble the display.
type UI struct {
	program *tea.Program
	ctrl    Controls
	header  string
	started atomic.Bool
	done    atomic.Bool
}

// NewUI creates the display for ctrl. header is rendered above the timer,
// typically the conversion result card.
func NewUI(ctrl Controls, header string) *UI {
	return &UI{ctrl: ctrl, header: header}
}

// Printf prints formatted text on its own line above the timer.
// If the program isn't running, falls back to fmt.Printf.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.started.Load() && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	u.program = tea.NewProgram(newTimerModel(ctx, u.ctrl, u.header), tea.WithContext(ctx))
	u.started.Store(true)

	_, err := u.program.Run()
	u.done.Store(true)
	if ctx.Err() != nil {
		// Cancellation is a normal way to leave.
		return nil
	}
	return err
}
