package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rusenback/devicemgr/internal/config"
	"github.com/rusenback/devicemgr/internal/device"
)

func execCmd(cfg *config.Config) *cobra.Command {
	var serial string
	cmd := &cobra.Command{
		Use:       "exec <quick command>",
		Short:     "Run one of the quick diagnostic commands",
		Long:      "Run one of the quick diagnostic commands:\n  " + strings.Join(device.QuickCommands, "\n  "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: device.QuickCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			quick := strings.TrimSpace(args[0])
			if !isQuickCommand(quick) {
				return fmt.Errorf("%q is not a quick command; run 'devicemgr exec --help' to list them", quick)
			}

			a, err := buildApp(*cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			stop := a.printLog(cmd.Context(), cmd.OutOrStdout())
			a.client.Execute(cmd.Context(), serial, quick)
			stop()
			return nil
		},
	}
	cmd.Flags().StringVarP(&serial, "serial", "s", "", "run against this device serial")
	return cmd
}

func isQuickCommand(s string) bool {
	for _, q := range device.QuickCommands {
		if q == s {
			return true
		}
	}
	return false
}
