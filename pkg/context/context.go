package context

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// AppEnvironment describes the running binary. It is attached to every metrics context.
type AppEnvironment struct {
	CLIVersion string
	OS         string
	Arch       string
}

type appEnvironmentKey struct{}

func NewAppEnvironment(version, goos, arch string) *AppEnvironment {
	return &AppEnvironment{CLIVersion: version, OS: goos, Arch: arch}
}

func WithAppEnvironment(ctx context.Context, env *AppEnvironment) context.Context {
	return context.WithValue(ctx, appEnvironmentKey{}, env)
}

func AppEnvironmentFromContext(ctx context.Context) (*AppEnvironment, bool) {
	env, ok := ctx.Value(appEnvironmentKey{}).(*AppEnvironment)
	return env, ok
}

// WithShutdown creates a new context that will be cancelled on SIGTERM/SIGINT.
// A second signal exits immediately.
func WithShutdown(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "caught interrupt, finishing the current step (press again to exit now)")
		cancel()

		<-sigChan
		os.Exit(130)
	}()

	return ctx
}
