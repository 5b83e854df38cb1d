package commands

import (
	"errors"
	"fmt"

	"fundsplit/pkg/balances"
	"fundsplit/pkg/chain"
	"fundsplit/pkg/common"
	"fundsplit/pkg/hooks"
	"fundsplit/pkg/telemetry"

	"github.com/urfave/cli/v2"
)

// NewBalancesCommand defines the "balances" command. It only reads balances.
func NewBalancesCommand() *cli.Command {
	return &cli.Command{
		Name:  "balances",
		Usage: "Print the ETH balance of every address in the input file",
		Flags: append([]cli.Flag{
			inputFileFlag,
		}, common.GlobalFlags...),
		Action: balancesAction,
	}
}

func balancesAction(cCtx *cli.Context) error {
	ctx := cCtx.Context
	logger := common.LoggerFromContext(ctx)

	provider, ok := chain.ProviderFromContext(ctx)
	if !ok {
		return errors.New("chain provider not configured")
	}

	list, err := loadRecipients(cCtx, common.SettingsFromContext(ctx), logger)
	if err != nil {
		return err
	}

	logger.Title("📦 Balances:")
	failed := balances.NewReporter(provider, logger).Report(ctx, list.Addresses)

	if metrics, mErr := telemetry.MetricsFromContext(ctx); mErr == nil {
		metrics.AddMetric(hooks.FormatMetricName("balances", "Recipients"), float64(len(list.Addresses)))
		metrics.AddMetric(hooks.FormatMetricName("balances", "BalanceErrors"), float64(failed))
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("balances interrupted: %w", err)
	}
	return nil
}
