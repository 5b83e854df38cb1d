package commands

import (
	"fundsplit/pkg/common"
	"fundsplit/pkg/hooks"

	"github.com/urfave/cli/v2"
)

// NewApp builds the fundsplit CLI with every command wrapped in the standard middleware.
func NewApp(version string) *cli.App {
	app := &cli.App{
		Name:    "fundsplit",
		Usage:   "Send the same amount of ETH to a list of addresses and report their balances",
		Version: version,
		Flags:   common.GlobalFlags,
		Commands: []*cli.Command{
			NewDropCommand(),
			NewBalancesCommand(),
		},
		UseShortOptionHandling: true,
		CustomAppHelpTemplate:  appHelpTemplate,
	}

	chain := hooks.NewActionChain()
	chain.Use(hooks.WithEnvLoader)
	chain.Use(hooks.WithLogger)
	chain.Use(hooks.WithSettings)
	chain.Use(hooks.WithTelemetry)
	chain.Use(hooks.WithProcessConfig)

	hooks.ApplyMiddleware(app.Commands, chain)

	return app
}
