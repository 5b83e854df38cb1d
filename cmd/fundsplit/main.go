package main

import (
	"context"
	"log"
	"os"

	"fundsplit/pkg/commands"
	devcontext "fundsplit/pkg/context"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx := devcontext.WithShutdown(context.Background())

	app := commands.NewApp(Version)

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
