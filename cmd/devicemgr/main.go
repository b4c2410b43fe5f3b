// cmd/devicemgr/main.go
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rusenback/devicemgr/cmd/devicemgr/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
