package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rusenback/devicemgr/internal/device"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the known Galaxy S23 models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			color.New(color.Bold).Fprintf(w, "%-10s %-9s %s\n", "MODEL", "CODENAME", "NAME")
			for _, m := range device.KnownModels() {
				fmt.Fprintf(w, "%-10s %-9s %s\n", m.ID, m.Codename, m.Name)
			}
		},
	}
}
