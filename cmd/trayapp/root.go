package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/JasnRathore/traysession"
)

const envPrefix = "TRAYAPP"

var (
	Debug   bool
	Console bool
	URL     string
)

var rootCmd = &cobra.Command{
	Use:   "trayapp",
	Short: "Run an application from the system tray",
	Long: `Run an application from the system tray.

Settings are read from appsettings.local.json or appsettings.json in the
working directory. NotifyIconPath and NotifyIconText are required;
MainWindowURL, MainWindowTitle, MainWindowWidth and MainWindowHeight
describe the main window.`,
	SilenceUsage:     true,
	PersistentPreRun: initLog,
	RunE:             run,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&Console, "console", false, "log to stderr instead of a file")
	rootCmd.Flags().StringVar(&URL, "url", "", "main window url, overrides MainWindowURL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("trayapp failed")
		os.Exit(1)
	}
}

type app struct {
	ctrl *traysession.Controller
}

func (a *app) newWindow() (traysession.Window, error) {
	s := a.ctrl.Settings()
	url := URL
	if url == "" {
		url = s.GetString("MainWindowURL")
	}
	return mainWindow(s, url)()
}

func (a *app) openSettings() {
	path := a.ctrl.Settings().Path()
	if err := open.Run(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to open settings")
	}
}

func run(cmd *cobra.Command, args []string) error {
	a := &app{}
	ctrl, err := traysession.New(traysession.Options{
		Title:     "Tray App",
		EnvPrefix: envPrefix,
	}, a.newWindow)
	if err != nil {
		return err
	}
	a.ctrl = ctrl

	if ctrl.Settings().Path() != "" {
		ctrl.AddMenuItem(traysession.MenuItem{
			Title:   "Open Settings",
			Tooltip: "Open the settings file",
			Handler: a.openSettings,
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("settings", ctrl.Settings().Path()).Msg("starting tray")
	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
