package logtui

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gempir/loggy/internal/config"
	"github.com/gempir/loggy/internal/logging"
)

func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	var (
		configFile      string
		baseURL         string
		theme           string
		noEmotes        bool
		logFile         string
		logLevel        string
		refreshInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:           "loggy",
		Short:         "chat log viewer",
		Long:          "Bubbletea-based terminal viewer for justlog chat archives.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			// Flags beat config file and env.
			if cmd.Flags().Changed("base-url") {
				cfg.API.BaseURL = baseURL
			}
			if cmd.Flags().Changed("theme") {
				cfg.TUI.Theme = theme
			}
			if noEmotes {
				cfg.Emotes.Enabled = false
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Logging.File = logFile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("refresh-interval") {
				cfg.TUI.RefreshInterval = refreshInterval
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// The TUI owns the terminal, so logs go to a file or nowhere.
			logging.InitFile(cfg.Logging.File, cfg.Logging.Level)

			return Run(cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (default: ~/.config/loggy/config.yaml)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "log server base URL")
	cmd.Flags().StringVar(&theme, "theme", string(ThemeDefault), "theme: default|high-contrast")
	cmd.Flags().BoolVar(&noEmotes, "no-emotes", false, "disable third-party emote rendering")
	cmd.Flags().StringVar(&logFile, "log-file", "", "debug log file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	cmd.Flags().DurationVar(&refreshInterval, "refresh-interval", 30*time.Second, "re-fetch interval for today's log")
	return cmd
}
