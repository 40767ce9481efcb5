package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wavelet/internal/app"
	"github.com/llehouerou/wavelet/internal/config"
	"github.com/llehouerou/wavelet/internal/engine"
	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/icons"
	"github.com/llehouerou/wavelet/internal/loader"
	"github.com/llehouerou/wavelet/internal/logging"
	"github.com/llehouerou/wavelet/internal/state"
	"github.com/llehouerou/wavelet/internal/stderr"
	"github.com/llehouerou/wavelet/internal/transport"
)

// Version is set at build time.
var Version = "dev"

var (
	configFile string
	iconStyle  string
	debug      bool
	autoplay   bool

	rootCmd = &cobra.Command{
		Use:           "wavelet [source]",
		Short:         "Play one audio file or URL in a terminal player bar",
		Long:          "wavelet fetches an audio source (http(s) URL, file:// URL or local path),\ndecodes it into memory and shows a one-line player with play/pause, mute,\nseek and elapsed time.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          execute,
	}
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("icons") {
		cfg.Icons = iconStyle
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("autoplay") {
		cfg.Autoplay = autoplay
	}
	cfg.Normalize()
	return cfg, nil
}

func setupLogger(cfg *config.Config) (*log.Logger, func()) {
	path, err := logging.DefaultPath()
	if err == nil {
		logger, f, err := logging.Setup(path, logging.ParseLevel(cfg.LogLevel))
		if err == nil {
			return logger, func() { _ = f.Close() }
		}
	}
	// No writable state dir: keep the TUI clean and drop logs.
	return logging.Discard(), func() {}
}

func execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	icons.Init(cfg.Icons)

	logger, closeLog := setupLogger(cfg)
	defer closeLog()

	// Capture ALSA noise before the device is opened.
	if err := stderr.Start(logger); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpInitialize, fmt.Errorf("capture stderr: %w", err)))
	}
	defer stderr.Stop()

	var source string
	if len(args) == 1 {
		source = args[0]
	}

	var eng transport.Engine
	if ctx, err := engine.Open(engine.DefaultSampleRate, engine.DefaultBuffer); err != nil {
		logger.Error(errmsg.Format(errmsg.OpEngineOpen, err))
	} else {
		eng = ctx
	}

	var store state.Interface
	if mgr, err := state.Open(); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpStateOpen, err))
	} else {
		store = mgr
	}

	m := app.New(cfg, source, app.Deps{
		Engine: eng,
		Store:  store,
		Loader: loader.New(cfg.FetchTimeout, logger),
		Logger: logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	// The quit key already released everything; a run error or kill did not.
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func init() {
	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/wavelet/config.toml)")
	rootCmd.Flags().StringVar(&iconStyle, "icons", "", `icon style: "nerd", "unicode" or "none"`)
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.Flags().BoolVar(&autoplay, "autoplay", false, "start playing as soon as the source is loaded")

	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		os.Exit(1)
	}
}
