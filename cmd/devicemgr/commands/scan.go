package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rusenback/devicemgr/internal/config"
)

func scanCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Detect connected devices once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			stop := a.printLog(cmd.Context(), cmd.OutOrStdout())
			for _, line := range a.client.Tools().Warnings() {
				a.sink.Post(line)
			}
			report := a.client.Scan(cmd.Context())
			stop()
			if report.Cancelled {
				return errors.New("scan cancelled")
			}

			w := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			bold.Fprintln(w, "\nDevices:")
			for _, row := range report.Rows() {
				fmt.Fprintf(w, "  %s\n", row)
			}
			return nil
		},
	}
}
