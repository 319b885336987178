package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/airfryer/internal/config"
	"github.com/hammamikhairi/airfryer/internal/display"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// errRejected marks a command that already told the user what went wrong.
var errRejected = errors.New("rejected")

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	logFile io.Closer
}

var (
	cfgFile string
	v       = viper.New()
	cli     = &app{}
)

var rootCmd = &cobra.Command{
	Use:   "airfryer",
	Short: "Convert oven recipes to air-fryer settings",
	Long: `airfryer translates an oven temperature and cooking time into air-fryer
settings for a food category, checks the inputs for safety, and runs a
cook-along countdown that keeps going if the terminal is closed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cli.close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(display.RenderBanner("oven recipes, air-fryer speed"))
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.airfryer.yaml)")
	rootCmd.PersistentFlags().String("unit", "F", "default temperature unit (F or C)")
	rootCmd.PersistentFlags().String("log-level", "normal", "log level: off, normal or verbose")
	rootCmd.PersistentFlags().String("log-file", ".airfryer-logs/airfryer.log", "file to write logs to (use \"stderr\" to log to console)")
	rootCmd.PersistentFlags().String("state-dir", ".airfryer-state", "directory holding the persisted timer")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	bindFlag("unit", "unit")
	bindFlag("log_level", "log-level")
	bindFlag("log_file", "log-file")
	bindFlag("state_dir", "state-dir")
	bindFlag("metrics_addr", "metrics-addr")

	rootCmd.AddCommand(convertCmd, categoriesCmd, timerCmd)
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// setup loads .env, the config, and opens the log sink.
func (a *app) setup() error {
	_ = godotenv.Load()

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Direct logs to a file by default so the terminal stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if f, err := openLogFile(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			a.logFile = f
		}
	}

	// Third-party libraries log through the standard package; keep them
	// in the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	a.log = logger.New(cfg.Level(), logOut)
	a.log.Debug("config loaded (file=%q, unit=%s)", v.ConfigFileUsed(), cfg.Unit)
	return nil
}

// openLogFile opens path for appending, creating its directory first.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cli.close()
	if err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
