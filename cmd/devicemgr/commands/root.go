package commands

import (
	"github.com/spf13/cobra"

	"github.com/rusenback/devicemgr/internal/config"
)

// Root returns the root cobra command with all subcommands attached.
// Without a subcommand it starts the interactive device manager.
func Root() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "devicemgr",
		Short: "Samsung Galaxy S23 device manager",
		Long: "devicemgr detects Android devices through adb and fastboot, reboots them into\n" +
			"recovery, download or bootloader mode and runs diagnostic commands.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ToolsDir, "tools-dir", cfg.ToolsDir, "directory holding adb and fastboot")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "how long to wait for each command")
	flags.DurationVar(&cfg.AutoDetectInterval, "auto-detect-interval", cfg.AutoDetectInterval, "rescan interval when auto-detect is on")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write diagnostics to this file")
	flags.IntVar(&cfg.HistorySize, "history", cfg.HistorySize, "commands shown in the history panel")

	cmd.AddCommand(scanCmd(&cfg))
	cmd.AddCommand(execCmd(&cfg))
	cmd.AddCommand(modelsCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
