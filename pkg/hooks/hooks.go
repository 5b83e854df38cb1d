package hooks

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"fundsplit/pkg/chain"
	"fundsplit/pkg/common"
	"fundsplit/pkg/common/iface"
	devcontext "fundsplit/pkg/context"
	"fundsplit/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// EnvFile is the name of the environment file
const EnvFile = ".env"

// ProviderFactory opens a chain.Provider for the process configuration. The
// returned close func is called once the command has finished.
type ProviderFactory func(ctx context.Context, env *common.EnvConfig, settings *common.Settings) (chain.Provider, func(), error)

// NewProvider is overridden in tests.
var NewProvider ProviderFactory = dialProvider

func dialProvider(ctx context.Context, env *common.EnvConfig, settings *common.Settings) (chain.Provider, func(), error) {
	p, err := chain.DialEthProvider(ctx, env.RPCURL, env.Identity, chain.EthProviderOptions{
		PollInterval: settings.Transfer.PollInterval,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func FormatMetricName(command, action string) string {
	return fmt.Sprintf("cli.%s.%s", command, action)
}

type ActionChain struct {
	Processors []func(action cli.ActionFunc) cli.ActionFunc
}

// NewActionChain creates a new action chain
func NewActionChain() *ActionChain {
	return &ActionChain{
		Processors: make([]func(action cli.ActionFunc) cli.ActionFunc, 0),
	}
}

// Use appends a new processor to the chain
func (ac *ActionChain) Use(processor func(action cli.ActionFunc) cli.ActionFunc) {
	ac.Processors = append(ac.Processors, processor)
}

// Wrap applies all processors so that the first one added runs outermost
func (ac *ActionChain) Wrap(action cli.ActionFunc) cli.ActionFunc {
	for i := len(ac.Processors) - 1; i >= 0; i-- {
		action = ac.Processors[i](action)
	}
	return action
}

// ApplyMiddleware applies a list of middleware functions to commands
func ApplyMiddleware(commands []*cli.Command, chain *ActionChain) {
	for _, cmd := range commands {
		if cmd.Action != nil {
			cmd.Action = chain.Wrap(cmd.Action)
		}
		if len(cmd.Subcommands) > 0 {
			ApplyMiddleware(cmd.Subcommands, chain)
		}
	}
}

// WithEnvLoader loads .env from the working directory when present and records
// the app environment. Variables already set in the process take precedence.
func WithEnvLoader(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		cCtx.Context = devcontext.WithAppEnvironment(cCtx.Context, devcontext.NewAppEnvironment(
			cCtx.App.Version,
			runtime.GOOS,
			runtime.GOARCH,
		))

		if err := loadEnvFile(); err != nil {
			return err
		}

		return action(cCtx)
	}
}

// loadEnvFile loads environment variables from .env file if it exists
// Silently succeeds if no .env file is found
func loadEnvFile() error {
	if _, err := os.Stat(EnvFile); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(EnvFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}
	return nil
}

// WithLogger builds the logger from the global flags and stores it in the context.
func WithLogger(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		log, err := common.NewLogger(
			common.GlobalString(cCtx, "log-format"),
			cCtx.App.Writer,
			cCtx.App.ErrWriter,
			common.GlobalBool(cCtx, "verbose"),
		)
		if err != nil {
			return err
		}
		cCtx.Context = common.WithLogger(cCtx.Context, log)

		err = action(cCtx)

		if s, ok := log.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		return err
	}
}

// WithSettings loads the settings file named by --config (or the implicit default).
func WithSettings(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		settings, err := common.LoadSettings(common.GlobalString(cCtx, "config"))
		if err != nil {
			return err
		}

		if settings.Source != "" {
			common.LoggerFromContext(cCtx.Context).DebugWithActor(iface.ActorConfig, "Loaded settings from %s", settings.Source)
		}
		cCtx.Context = common.WithSettings(cCtx.Context, settings)
		return action(cCtx)
	}
}

// WithProcessConfig validates RPC_URL and MAIN_PRIVATE_KEY and opens the chain
// provider for commands that need one. Nothing runs if either is invalid.
func WithProcessConfig(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		req := findCommandRequirement(cCtx.Command.Name)
		if req == nil || !req.NeedsProvider {
			return action(cCtx)
		}

		logger := common.LoggerFromContext(cCtx.Context)
		settings := common.SettingsFromContext(cCtx.Context)

		rate := settings.RPC.Rate
		if common.GlobalIsSet(cCtx, "rpc-rate") {
			rate = common.GlobalFloat64(cCtx, "rpc-rate")
		}
		if rate < 0 {
			return fmt.Errorf("--rpc-rate must not be negative, got %v", rate)
		}

		env, err := common.LoadEnvConfig()
		if err != nil {
			return requirementError(cCtx, err)
		}
		cCtx.Context = common.WithEnvConfig(cCtx.Context, env)

		provider, closeProvider, err := NewProvider(cCtx.Context, env, settings)
		if err != nil {
			return requirementError(cCtx, err)
		}
		if closeProvider != nil {
			defer closeProvider()
		}

		if rate > 0 {
			logger.DebugWithActor(iface.ActorChain, "Limiting RPC requests to %v/s (burst %d)", rate, settings.RPC.Burst)
		}
		provider = chain.WithRateLimit(provider, rate, settings.RPC.Burst)

		logger.DebugWithActor(iface.ActorConfig, "Signing as %s", env.Identity.Address().Hex())
		cCtx.Context = chain.WithProvider(cCtx.Context, provider)
		return action(cCtx)
	}
}

// WithTelemetry records command count, result and duration into the metrics
// context and emits them through the telemetry client when the command returns.
func WithTelemetry(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		command := cCtx.Command.Name

		setupTelemetryContext(cCtx, command)

		err := action(cCtx)

		emitTelemetryMetrics(cCtx, command, err)

		return err
	}
}

func setupTelemetryContext(cCtx *cli.Context, command string) {
	client := telemetry.NewLogClient(common.LoggerFromContext(cCtx.Context))
	cCtx.Context = telemetry.WithContext(cCtx.Context, client)

	metrics := telemetry.NewMetricsContext(cCtx.App.Name, command)
	cCtx.Context = telemetry.WithMetricsContext(cCtx.Context, metrics)

	if appEnv, ok := devcontext.AppEnvironmentFromContext(cCtx.Context); ok {
		metrics.Properties["cli_version"] = appEnv.CLIVersion
		metrics.Properties["os"] = appEnv.OS
		metrics.Properties["arch"] = appEnv.Arch
	}

	metrics.AddMetric(FormatMetricName(command, "Count"), 1)
}

func emitTelemetryMetrics(cCtx *cli.Context, command string, actionError error) {
	metrics, mErr := telemetry.MetricsFromContext(cCtx.Context)
	if mErr != nil {
		return
	}

	result := "Success"
	if actionError != nil {
		result = "Failure"
		metrics.Properties["error"] = actionError.Error()
	}

	metrics.AddMetric(FormatMetricName(command, result), 1)
	duration := time.Since(metrics.StartTime).Milliseconds()
	metrics.AddMetric(FormatMetricName(command, "DurationMilliseconds"), float64(duration))

	client, ok := telemetry.ClientFromContext(cCtx.Context)
	if !ok {
		return
	}
	defer client.Close()

	for _, metric := range metrics.Metrics {
		dims := make(map[string]string, len(metrics.Properties)+len(metric.Dimensions))
		for k, v := range metrics.Properties {
			dims[k] = v
		}
		for k, v := range metric.Dimensions {
			dims[k] = v
		}
		metric.Dimensions = dims

		_ = client.AddMetric(cCtx.Context, metric)
	}
}
