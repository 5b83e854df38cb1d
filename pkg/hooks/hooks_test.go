package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fundsplit/pkg/chain"
	"fundsplit/pkg/chain/chaintest"
	"fundsplit/pkg/common"
	devcontext "fundsplit/pkg/context"
	"fundsplit/pkg/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func runCommand(t *testing.T, name string, ac *ActionChain, action cli.ActionFunc, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &cli.App{
		Name:      "fundsplit",
		Version:   "v0.0.0-test",
		Flags:     common.GlobalFlags,
		Writer:    &out,
		ErrWriter: &errOut,
		Commands: []*cli.Command{{
			Name:   name,
			Flags:  common.GlobalFlags,
			Action: action,
		}},
	}
	ApplyMiddleware(app.Commands, ac)
	err := app.Run(append([]string{"fundsplit", name}, args...))
	return out.String(), errOut.String(), err
}

func fakeFactory(p chain.Provider, closed *bool) ProviderFactory {
	return func(context.Context, *common.EnvConfig, *common.Settings) (chain.Provider, func(), error) {
		return p, func() { *closed = true }, nil
	}
}

func withFactory(t *testing.T, f ProviderFactory) {
	t.Helper()
	orig := NewProvider
	NewProvider = f
	t.Cleanup(func() { NewProvider = orig })
}

func TestActionChainOrder(t *testing.T) {
	var calls []string
	mark := func(name string) func(cli.ActionFunc) cli.ActionFunc {
		return func(next cli.ActionFunc) cli.ActionFunc {
			return func(cCtx *cli.Context) error {
				calls = append(calls, name)
				return next(cCtx)
			}
		}
	}

	ac := NewActionChain()
	ac.Use(mark("first"))
	ac.Use(mark("second"))

	_, _, err := runCommand(t, "noop", ac, func(*cli.Context) error {
		calls = append(calls, "action")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "action"}, calls)
}

func TestWithEnvLoader(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("RPC_URL=http://from-dotenv:8545\nMAIN_PRIVATE_KEY=abc\n"), 0o600))

	unsetEnv(t, common.EnvRPCURL)
	t.Setenv(common.EnvPrivateKey, "from-process")

	ac := NewActionChain()
	ac.Use(WithEnvLoader)

	var rpcURL, key string
	var appEnv *devcontext.AppEnvironment
	_, _, err := runCommand(t, "noop", ac, func(cCtx *cli.Context) error {
		rpcURL = os.Getenv(common.EnvRPCURL)
		key = os.Getenv(common.EnvPrivateKey)
		appEnv, _ = devcontext.AppEnvironmentFromContext(cCtx.Context)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "http://from-dotenv:8545", rpcURL)
	assert.Equal(t, "from-process", key, "process environment wins over .env")
	require.NotNil(t, appEnv)
	assert.Equal(t, "v0.0.0-test", appEnv.CLIVersion)
}

func TestWithEnvLoader_NoFile(t *testing.T) {
	chdir(t, t.TempDir())

	ac := NewActionChain()
	ac.Use(WithEnvLoader)

	ran := false
	_, _, err := runCommand(t, "noop", ac, func(*cli.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithLogger(t *testing.T) {
	ac := NewActionChain()
	ac.Use(WithLogger)

	action := func(cCtx *cli.Context) error {
		common.LoggerFromContext(cCtx.Context).Info("hello")
		common.LoggerFromContext(cCtx.Context).Debug("details")
		return nil
	}

	out, errOut, err := runCommand(t, "noop", ac, action, "-v")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
	assert.Contains(t, errOut, "Debug: details")

	out, _, err = runCommand(t, "noop", ac, action, "--log-format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.Contains(t, out, `"msg":"hello"`)

	_, _, err = runCommand(t, "noop", ac, action, "--log-format", "xml")
	require.Error(t, err)
}

func TestWithSettings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("input_file = \"list.txt\"\n"), 0o600))

	ac := NewActionChain()
	ac.Use(WithSettings)

	var settings *common.Settings
	_, _, err := runCommand(t, "noop", ac, func(cCtx *cli.Context) error {
		settings = common.SettingsFromContext(cCtx.Context)
		return nil
	}, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "list.txt", settings.InputFile)
	assert.Equal(t, path, settings.Source)

	_, _, err = runCommand(t, "noop", ac, func(*cli.Context) error { return nil }, "--config", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestWithProcessConfig_MissingEnv(t *testing.T) {
	unsetEnv(t, common.EnvRPCURL)
	t.Setenv(common.EnvPrivateKey, testKey)

	called := false
	withFactory(t, func(context.Context, *common.EnvConfig, *common.Settings) (chain.Provider, func(), error) {
		called = true
		return nil, nil, errors.New("should not dial")
	})

	ac := NewActionChain()
	ac.Use(WithProcessConfig)

	ran := false
	_, _, err := runCommand(t, "drop", ac, func(*cli.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, common.ErrMissingEnv)
	assert.Contains(t, err.Error(), "RPC_URL")
	assert.Contains(t, err.Error(), "The 'drop' command signs transfers")
	assert.False(t, ran)
	assert.False(t, called)
}

func TestWithProcessConfig_DialFailure(t *testing.T) {
	t.Setenv(common.EnvRPCURL, "http://127.0.0.1:1")
	t.Setenv(common.EnvPrivateKey, testKey)
	withFactory(t, func(context.Context, *common.EnvConfig, *common.Settings) (chain.Provider, func(), error) {
		return nil, nil, errors.New("connection refused")
	})

	ac := NewActionChain()
	ac.Use(WithProcessConfig)

	ran := false
	_, _, err := runCommand(t, "balances", ac, func(*cli.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, ran)
}

func TestWithProcessConfig_ProvidesChain(t *testing.T) {
	t.Setenv(common.EnvRPCURL, "http://127.0.0.1:8545")
	t.Setenv(common.EnvPrivateKey, testKey)

	fake := chaintest.NewFakeProvider()
	closed := false
	withFactory(t, fakeFactory(fake, &closed))

	ac := NewActionChain()
	ac.Use(WithProcessConfig)

	var provider chain.Provider
	var env *common.EnvConfig
	_, _, err := runCommand(t, "drop", ac, func(cCtx *cli.Context) error {
		provider, _ = chain.ProviderFromContext(cCtx.Context)
		env, _ = common.EnvConfigFromContext(cCtx.Context)
		assert.False(t, closed, "provider stays open while the action runs")
		return nil
	})
	require.NoError(t, err)

	assert.Same(t, fake, provider, "no rate limit by default")
	require.NotNil(t, env)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", env.Identity.Address().Hex())
	assert.True(t, closed)

	_, _, err = runCommand(t, "drop", ac, func(cCtx *cli.Context) error {
		provider, _ = chain.ProviderFromContext(cCtx.Context)
		return nil
	}, "--rpc-rate", "5")
	require.NoError(t, err)
	assert.IsType(t, &chain.RateLimited{}, provider)

	_, _, err = runCommand(t, "drop", ac, func(*cli.Context) error { return nil }, "--rpc-rate", "-1")
	require.Error(t, err)
}

func TestWithProcessConfig_SkipsUnlistedCommands(t *testing.T) {
	unsetEnv(t, common.EnvRPCURL)
	unsetEnv(t, common.EnvPrivateKey)

	ac := NewActionChain()
	ac.Use(WithProcessConfig)

	ran := false
	_, _, err := runCommand(t, "noop", ac, func(*cli.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithTelemetry(t *testing.T) {
	ac := NewActionChain()
	ac.Use(WithLogger)
	ac.Use(WithEnvLoader)
	ac.Use(WithTelemetry)

	chdir(t, t.TempDir())

	var metrics *telemetry.MetricsContext
	_, errOut, err := runCommand(t, "drop-like", ac, func(cCtx *cli.Context) error {
		var mErr error
		metrics, mErr = telemetry.MetricsFromContext(cCtx.Context)
		require.NoError(t, mErr)
		return errors.New("kaboom")
	}, "-v")
	require.EqualError(t, err, "kaboom")

	require.NotNil(t, metrics)
	assert.Equal(t, float64(1), metrics.Value(FormatMetricName("drop-like", "Count")))
	assert.Equal(t, float64(1), metrics.Value(FormatMetricName("drop-like", "Failure")))
	assert.Zero(t, metrics.Value(FormatMetricName("drop-like", "Success")))
	assert.Equal(t, "kaboom", metrics.Properties["error"])
	assert.Equal(t, "v0.0.0-test", metrics.Properties["cli_version"])

	assert.Contains(t, errOut, "cli.drop-like.Count=1")
	assert.Contains(t, errOut, "cli.drop-like.Failure=1")
}

func TestFormatMetricName(t *testing.T) {
	assert.Equal(t, "cli.drop.Count", FormatMetricName("drop", "Count"))
}
