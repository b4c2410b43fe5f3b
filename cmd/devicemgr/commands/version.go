package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rusenback/devicemgr/internal/tui"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devicemgr %s\n", tui.Version)
		},
	}
}
