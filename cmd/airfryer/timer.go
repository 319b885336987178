package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/airfryer/internal/alarm"
	"github.com/hammamikhairi/airfryer/internal/conversation"
	"github.com/hammamikhairi/airfryer/internal/display"
	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/engine"
	"github.com/hammamikhairi/airfryer/internal/sound"
	"github.com/hammamikhairi/airfryer/internal/storage"
	"github.com/hammamikhairi/airfryer/internal/timer"
)

// cookAlongID is the store key of the single cook-along timer.
const cookAlongID = "cook-along"

var timerCmd = &cobra.Command{
	Use:   "timer [phrase]",
	Short: "Run the cook-along countdown",
	Long: `Runs the cook-along countdown. Pass a conversion (phrase or flags) to
time its air-fryer result, or --minutes for a plain timer. With neither, the
persisted timer from a previous run is resumed.`,
	RunE: runTimer,
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewFileStore(cli.cfg.StateDir, cli.log.Named("store"))
		if err != nil {
			return err
		}
		sched := alarm.NewScheduler(domain.SystemClock{}, cli.log.Named("alarm"))
		defer sched.Close()

		// Restoring finishes a timer that expired while nothing was running.
		notifier := conversation.NewCLINotifier(cli.log, nil, conversation.WithBell())
		c, err := timer.Restore(cmd.Context(), store, cookAlongID, sched, notifier, cli.log.Named("timer"))
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println("no timer")
			return nil
		}
		if c == nil {
			return err
		}
		fmt.Println(display.RenderStatus(c.Snapshot()))
		return nil
	},
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the persisted timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewFileStore(cli.cfg.StateDir, cli.log.Named("store"))
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), cookAlongID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		fmt.Printf("timer cleared (%s)\n", store.Path())
		return nil
	},
}

func init() {
	addConversionFlags(timerCmd)
	timerCmd.Flags().Int("minutes", 0, "plain countdown length in minutes")
	timerCmd.Flags().Bool("headless", false, "print notifications instead of running the interactive timer")
	timerCmd.AddCommand(timerStatusCmd, timerResetCmd)
}

func runTimer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, log := cli.cfg, cli.log
	headless, _ := cmd.Flags().GetBool("headless")

	store, err := storage.NewFileStore(cfg.StateDir, log.Named("store"))
	if err != nil {
		return err
	}
	sched := alarm.NewScheduler(domain.SystemClock{}, log.Named("alarm"))
	defer sched.Close()

	collector, stopMetrics := cli.metrics(ctx)
	defer stopMetrics()

	// Notifications print above the interactive timer once it is up.
	var ui atomic.Pointer[display.UI]
	printFn := func(format string, a ...interface{}) {
		if u := ui.Load(); u != nil {
			u.Printf(format, a...)
			return
		}
		fmt.Printf(format+"\n", a...)
	}

	var notifier domain.Notifier = conversation.NewCLINotifier(log, printFn, conversation.WithBell())
	if cfg.Sound {
		player, err := sound.NewPlayer(cfg.AlarmTone, log.Named("sound"))
		if err != nil {
			log.Error("audio player init failed, alarm tone disabled: %v", err)
		} else {
			defer player.Stop()
			notifier = sound.NewAlarmNotifier(notifier, player, log.Named("sound"))
		}
	}

	tlog := log.Named("timer")
	opts := []timer.CountdownOption{timer.WithStore(store), timer.WithRecorder(collector)}
	countdown, err := timer.Restore(ctx, store, cookAlongID, sched, notifier, tlog, opts...)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		countdown = timer.NewCountdown(cookAlongID, "", 0, sched, notifier, tlog, opts...)
	case countdown == nil:
		return err
	case err != nil:
		log.Warn("restoring timer: %v", err)
	}

	header, err := retarget(ctx, cmd, args, countdown, collector)
	if err != nil {
		return err
	}
	if countdown.Snapshot().Duration <= 0 {
		return errors.New("nothing to time: pass a conversion or --minutes")
	}

	if !headless {
		ui.Store(display.NewUI(countdown, header))
	}

	supervisor := timer.New(notifier, log.Named("supervisor"),
		timer.WithTickInterval(cfg.TickInterval),
		timer.WithNotifyCooldown(cfg.NotifyCooldown),
		timer.WithMaxEscalation(cfg.MaxEscalation),
		timer.WithAlmostDoneThreshold(cfg.AlmostDoneThreshold),
		timer.WithReminderInterval(cfg.ReminderInterval),
	)
	supervisor.Watch(countdown)
	supervisor.Start(ctx)
	defer supervisor.Stop()

	if headless {
		return runHeadless(ctx, countdown, header)
	}

	return ui.Load().Run(ctx)
}

// retarget points the countdown at what the user asked for, if anything.
// It returns the header shown above the timer.
func retarget(ctx context.Context, cmd *cobra.Command, args []string, c *timer.Countdown, rec engine.Recorder) (string, error) {
	if cmd.Flags().Changed("minutes") {
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes <= 0 {
			return "", fmt.Errorf("--minutes must be positive, got %d", minutes)
		}
		label := fmt.Sprintf("%d-minute timer", minutes)
		return "", c.Retarget(ctx, time.Duration(minutes)*time.Minute, label)
	}

	in, ok, err := conversionInput(cmd, args)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	// The engine resets the countdown to the new result's air-fryer time.
	eng := engine.New(cli.log.Named("engine"), engine.WithTimer(c), engine.WithRecorder(rec))
	res, err := eng.Convert(ctx, in)
	if err != nil {
		return "", reportConversionError(err)
	}
	return display.RenderResult(*res), nil
}

// runHeadless starts the countdown and prints until it finishes and the
// reminders run out, or ctx is cancelled. An interrupted timer stays
// persisted and resumes on the next run.
func runHeadless(ctx context.Context, c *timer.Countdown, header string) error {
	if header != "" {
		fmt.Println(header)
	}

	switch c.Snapshot().Status {
	case domain.TimerIdle, domain.TimerFinished:
		if err := c.Start(ctx); err != nil {
			return err
		}
	case domain.TimerPaused:
		if err := c.Resume(ctx); err != nil {
			return err
		}
	}
	fmt.Println(display.RenderStatus(c.Snapshot()))

	poll := time.NewTicker(cli.cfg.TickInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			s := c.Snapshot()
			if s.Status == domain.TimerFinished &&
				(s.Dismissed || s.EscalationLevel > cli.cfg.MaxEscalation) {
				return c.Dismiss(ctx)
			}
		}
	}
}
