package commands

import (
	"errors"
	"fmt"

	"fundsplit/pkg/balances"
	"fundsplit/pkg/chain"
	"fundsplit/pkg/common"
	"fundsplit/pkg/common/iface"
	"fundsplit/pkg/hooks"
	"fundsplit/pkg/telemetry"
	"fundsplit/pkg/transfer"

	"github.com/urfave/cli/v2"
)

// NewDropCommand defines the "drop" command: send the same amount to every
// recipient, then print their balances.
func NewDropCommand() *cli.Command {
	return &cli.Command{
		Name:  "drop",
		Usage: "Send the same amount of ETH to every address in the input file, then print their balances",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "amount",
				Aliases: []string{"a"},
				Usage:   "Amount of ETH to send to each recipient",
				Value:   common.DefaultAmount,
			},
			inputFileFlag,
			&cli.Uint64Flag{
				Name:  "confirmations",
				Usage: "Blocks to wait for, counting the including block",
				Value: common.DefaultConfirmations,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for each transfer to confirm",
				Value: common.DefaultConfirmationTimeout,
			},
			&cli.DurationFlag{
				Name:  "pause",
				Usage: "Pause between recipients",
				Value: common.DefaultPause,
			},
		}, common.GlobalFlags...),
		Action: dropAction,
	}
}

func dropAction(cCtx *cli.Context) error {
	ctx := cCtx.Context
	logger := common.LoggerFromContext(ctx)
	settings := common.SettingsFromContext(ctx)

	provider, ok := chain.ProviderFromContext(ctx)
	if !ok {
		return errors.New("chain provider not configured")
	}
	env, ok := common.EnvConfigFromContext(ctx)
	if !ok {
		return errors.New("sender identity not configured")
	}

	cfg, err := transferConfig(cCtx, settings)
	if err != nil {
		return err
	}
	logger.DebugWithActor(iface.ActorConfig, "amount=%s wei confirmations=%d timeout=%s pause=%s",
		cfg.Amount, cfg.Confirmations, cfg.Timeout, cfg.Pause)

	list, err := loadRecipients(cCtx, settings, logger)
	if err != nil {
		return err
	}

	logger.Title("🚀 Sending %s %s to %d recipients...", common.FormatEther(cfg.Amount), common.NativeSymbol, len(list.Addresses))

	executor := transfer.NewExecutor(provider, env.Identity.Address(), cfg, logger)
	_, summary := executor.Run(ctx, list.Addresses)

	logger.Title("📦 Final Balances:")
	balanceErrors := balances.NewReporter(provider, logger).Report(ctx, list.Addresses)

	logger.Info("Done: %d sent, %d failed", summary.Sent, summary.Failed)

	if metrics, mErr := telemetry.MetricsFromContext(ctx); mErr == nil {
		metrics.AddMetric(hooks.FormatMetricName("drop", "Recipients"), float64(len(list.Addresses)))
		metrics.AddMetric(hooks.FormatMetricName("drop", "Skipped"), float64(len(list.Skipped)))
		metrics.AddMetric(hooks.FormatMetricName("drop", "Sent"), float64(summary.Sent))
		metrics.AddMetric(hooks.FormatMetricName("drop", "Failed"), float64(summary.Failed))
		metrics.AddMetric(hooks.FormatMetricName("drop", "BalanceErrors"), float64(balanceErrors))
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("drop interrupted: %w", err)
	}
	return nil
}

// transferConfig resolves each transfer setting from its flag when given, else from settings.
func transferConfig(cCtx *cli.Context, settings *common.Settings) (transfer.Config, error) {
	ts := settings.Transfer

	amountText := ts.Amount
	if cCtx.IsSet("amount") {
		amountText = cCtx.String("amount")
	}
	amount, err := common.ParseEther(amountText)
	if err != nil {
		return transfer.Config{}, err
	}

	confirmations := ts.Confirmations
	if cCtx.IsSet("confirmations") {
		confirmations = cCtx.Uint64("confirmations")
	}

	timeout := ts.Timeout
	if cCtx.IsSet("timeout") {
		timeout = cCtx.Duration("timeout")
	}
	if timeout <= 0 {
		return transfer.Config{}, fmt.Errorf("--timeout must be positive, got %s", timeout)
	}

	pause := ts.Pause
	if cCtx.IsSet("pause") {
		pause = cCtx.Duration("pause")
	}
	if pause < 0 {
		return transfer.Config{}, fmt.Errorf("--pause must not be negative, got %s", pause)
	}

	return transfer.Config{
		Amount:        amount,
		Confirmations: confirmations,
		Timeout:       timeout,
		Pause:         pause,
	}, nil
}
