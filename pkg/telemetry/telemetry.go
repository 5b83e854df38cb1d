package telemetry

import (
	"context"
	"sort"
	"strings"

	"fundsplit/pkg/common/iface"
)

// Client defines the interface for telemetry operations
type Client interface {
	// AddMetric emits a single metric
	AddMetric(ctx context.Context, metric Metric) error
	// Close cleans up any resources
	Close() error
}

// WithContext returns a new context with the telemetry client
func WithContext(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, contextKey{}, client)
}

// ClientFromContext retrieves the telemetry client from context
func ClientFromContext(ctx context.Context) (Client, bool) {
	client, ok := ctx.Value(contextKey{}).(Client)
	return client, ok
}

type contextKey struct{}

type NoopClient struct{}

func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (*NoopClient) AddMetric(context.Context, Metric) error { return nil }
func (*NoopClient) Close() error                            { return nil }

// LogClient writes each metric as a debug line. Nothing leaves the process.
type LogClient struct {
	logger iface.Logger
}

func NewLogClient(logger iface.Logger) *LogClient {
	return &LogClient{logger: logger}
}

func (c *LogClient) AddMetric(_ context.Context, metric Metric) error {
	c.logger.DebugWithActor(iface.ActorTelemetry, "%s=%v%s", metric.Name, metric.Value, formatDimensions(metric.Dimensions))
	return nil
}

func (c *LogClient) Close() error {
	return nil
}

func formatDimensions(dims map[string]string) string {
	if len(dims) == 0 {
		return ""
	}
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(dims[k])
	}
	return b.String()
}
